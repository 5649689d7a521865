// Package config provides configuration loading, merging, and validation
// facilities for the CSE, the scheduler and the provisioning tool.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win over later ones for every non-zero field):
//  1. Command-line flags
//  2. Environment variables
//  3. INI config file (acme.ini)
//  4. Built-in defaults
//
// The entry points are [GetCSEConfig], [GetSchedulerConfig] and
// [LoadProvisionConfig]. Each returns the merged [StructuredConfig] after
// checking the sections the calling binary depends on.
package config
