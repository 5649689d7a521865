// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// CSE, the scheduler and the provisioning tool. It is populated by merging
// command-line flags, environment variables, the INI file and the built-in
// defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//
// Optional booleans are pointers so that an explicit "false" in a higher
// priority source is not overwritten by a "true" default while merging.
type StructuredConfig struct {
	// CSE holds the identity and behaviour of the Common Services Entity.
	CSE CSE `envPrefix:"CSE_"`

	// HTTP holds the HTTP binding settings of the CSE.
	HTTP HTTP `envPrefix:"HTTP_"`

	// Database selects and configures the resource store.
	Database Database `envPrefix:"DATABASE_"`

	// Logging holds the log level of all binaries.
	Logging Logging `envPrefix:"LOGGING_"`

	// Scheduler holds the settings of the noise cancellation scheduler.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// Provision holds the settings of the provisioning collection runner.
	Provision Provision `envPrefix:"PROVISION_"`

	// ConfigFilePath is the path of the INI file (acme.ini).
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// CSE holds the [cse] section.
type CSE struct {
	// CSEID is the CSE-ID, e.g. "/id-in".
	// Env: CSE_ID
	CSEID string `env:"ID"`

	// ResourceID is the resource identifier of the CSEBase, e.g. "id-in".
	// Env: CSE_RESOURCE_ID
	ResourceID string `env:"RESOURCE_ID"`

	// ResourceName is the resource name of the CSEBase, e.g. "cse-in". It is
	// the first element of every structured resource path.
	// Env: CSE_RESOURCE_NAME
	ResourceName string `env:"RESOURCE_NAME"`

	// Originator is the admin originator of the CSE, e.g. "CAdmin".
	// Env: CSE_ORIGINATOR
	Originator string `env:"ORIGINATOR"`

	// Type is the CSE type: IN, MN or ASN.
	// Env: CSE_TYPE
	Type string `env:"TYPE"`

	// ReleaseVersion is the release version the CSE answers with.
	// Env: CSE_RELEASE_VERSION
	ReleaseVersion string `env:"RELEASE_VERSION"`

	// SupportedReleaseVersions lists the accepted X-M2M-RVI values.
	// Env: CSE_SUPPORTED_RELEASE_VERSIONS (comma separated)
	SupportedReleaseVersions []string `env:"SUPPORTED_RELEASE_VERSIONS" envSeparator:","`

	// PointOfAccess overrides the announced poa. Defaults to http.address.
	// Env: CSE_POA (comma separated)
	PointOfAccess []string `env:"POA" envSeparator:","`

	// EnableSubscriptionVerificationRequests sends a verification request to
	// every notification URI when a subscription is created.
	// Env: CSE_ENABLE_SUBSCRIPTION_VERIFICATION_REQUESTS
	EnableSubscriptionVerificationRequests *bool `env:"ENABLE_SUBSCRIPTION_VERIFICATION_REQUESTS"`

	// AsyncSubscriptionNotifications sends notifications from a worker pool
	// instead of the request goroutine.
	// Env: CSE_ASYNC_SUBSCRIPTION_NOTIFICATIONS
	AsyncSubscriptionNotifications *bool `env:"ASYNC_SUBSCRIPTION_NOTIFICATIONS"`

	// NotificationWorkers is the size of the notification worker pool.
	// Env: CSE_NOTIFICATION_WORKERS
	NotificationWorkers int `env:"NOTIFICATION_WORKERS"`

	// NotificationTimeout bounds a single notification request.
	// Env: CSE_NOTIFICATION_TIMEOUT
	NotificationTimeout time.Duration `env:"NOTIFICATION_TIMEOUT"`

	// CheckExpirationsInterval is the period of the expiration worker.
	// Env: CSE_CHECK_EXPIRATIONS_INTERVAL
	CheckExpirationsInterval time.Duration `env:"CHECK_EXPIRATIONS_INTERVAL"`

	// MaxExpirationDelta is the default and maximum lifetime of a resource.
	// Env: CSE_MAX_EXPIRATION_DELTA
	MaxExpirationDelta time.Duration `env:"MAX_EXPIRATION_DELTA"`

	// Registration holds the [cse.registration] section.
	Registration Registration `envPrefix:"REGISTRATION_"`

	// Security holds the [cse.security] section.
	Security Security `envPrefix:"SECURITY_"`

	// Container holds the [resource.cnt] defaults.
	Container ContainerDefaults `envPrefix:"CNT_"`
}

// Registration holds the [cse.registration] section.
type Registration struct {
	// AllowedAEOriginators lists originator patterns allowed to register an
	// AE. A trailing "*" matches by prefix.
	// Env: CSE_REGISTRATION_ALLOWED_AE_ORIGINATORS (comma separated)
	AllowedAEOriginators []string `env:"ALLOWED_AE_ORIGINATORS" envSeparator:","`
}

// Security holds the [cse.security] section.
type Security struct {
	// EnableACPChecks turns access control policy evaluation on.
	// Env: CSE_SECURITY_ENABLE_ACP_CHECKS
	EnableACPChecks *bool `env:"ENABLE_ACP_CHECKS"`

	// FullAccessAdmin grants the CSE originator access to every resource.
	// Env: CSE_SECURITY_FULL_ACCESS_ADMIN
	FullAccessAdmin *bool `env:"FULL_ACCESS_ADMIN"`
}

// ContainerDefaults holds the [resource.cnt] section.
type ContainerDefaults struct {
	// MaxNrOfInstances is the default mni of new containers.
	// Env: CSE_CNT_MNI
	MaxNrOfInstances int64 `env:"MNI"`

	// MaxByteSize is the default mbs of new containers.
	// Env: CSE_CNT_MBS
	MaxByteSize int64 `env:"MBS"`
}

// HTTP holds the [http] section.
type HTTP struct {
	// Address is the public base URL of the CSE.
	// Env: HTTP_ADDRESS
	Address string `env:"ADDRESS"`

	// ListenIF is the interface the HTTP server binds to.
	// Env: HTTP_LISTEN_IF
	ListenIF string `env:"LISTEN_IF"`

	// Port is the HTTP server port.
	// Env: HTTP_PORT
	Port int `env:"PORT"`

	// Root is the URL path prefix of the oneM2M binding.
	// Env: HTTP_ROOT
	Root string `env:"ROOT"`

	// Timeout is the read and write timeout of the HTTP server.
	// Env: HTTP_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// EnableMetrics exposes Prometheus metrics on /metrics.
	// Env: HTTP_ENABLE_METRICS
	EnableMetrics *bool `env:"ENABLE_METRICS"`

	// Security holds the [http.security] section.
	Security HTTPSecurity `envPrefix:"SECURITY_"`
}

// HTTPSecurity holds the [http.security] section.
type HTTPSecurity struct {
	// EnableBasicAuth requires HTTP basic authentication.
	// Env: HTTP_SECURITY_ENABLE_BASIC_AUTH
	EnableBasicAuth *bool `env:"ENABLE_BASIC_AUTH"`

	// BasicAuthFile is a file of "username:bcrypt-hash" lines.
	// Env: HTTP_SECURITY_BASIC_AUTH_FILE
	BasicAuthFile string `env:"BASIC_AUTH_FILE"`

	// EnableTokenAuth requires a bearer JWT.
	// Env: HTTP_SECURITY_ENABLE_TOKEN_AUTH
	EnableTokenAuth *bool `env:"ENABLE_TOKEN_AUTH"`

	// TokenSignKey is the HMAC key used to verify bearer tokens.
	// Env: HTTP_SECURITY_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: HTTP_SECURITY_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Database holds the [database] section.
type Database struct {
	// Type is one of memory, sqlite or postgresql.
	// Env: DATABASE_TYPE
	Type string `env:"TYPE"`

	// Path is the sqlite database file.
	// Env: DATABASE_PATH
	Path string `env:"PATH"`

	// ResetOnStartup drops all resources when the CSE starts.
	// Env: DATABASE_RESET_ON_STARTUP
	ResetOnStartup *bool `env:"RESET_ON_STARTUP"`

	// PostgresDSN is the [database.postgresql] dsn.
	// Env: DATABASE_POSTGRESQL_DSN
	PostgresDSN string `env:"POSTGRESQL_DSN"`
}

// Logging holds the [logging] section.
type Logging struct {
	// Level is one of trace, debug, info, warn, error or off.
	// Env: LOGGING_LEVEL
	Level string `env:"LEVEL"`
}

// Scheduler holds the [scheduler] section.
type Scheduler struct {
	// CSEURL is the base URL of the CSE the scheduler writes to.
	// Env: SCHEDULER_CSE_URL
	CSEURL string `env:"CSE_URL"`

	// ExecutionStateContainer is the path of the container receiving On/Off.
	// Env: SCHEDULER_EXECUTION_STATE_CONTAINER
	ExecutionStateContainer string `env:"EXECUTION_STATE_CONTAINER"`

	// ScheduleContainer is the path of the container holding the schedule.
	// Env: SCHEDULER_SCHEDULE_CONTAINER
	ScheduleContainer string `env:"SCHEDULE_CONTAINER"`

	// Originator is the X-M2M-Origin used for CSE requests.
	// Env: SCHEDULER_ORIGINATOR
	Originator string `env:"ORIGINATOR"`

	// ReleaseVersion is the X-M2M-RVI used for CSE requests.
	// Env: SCHEDULER_RELEASE_VERSION
	ReleaseVersion string `env:"RELEASE_VERSION"`

	// CallbackAddress is the listen address of the notification callback.
	// Env: SCHEDULER_CALLBACK_ADDRESS
	CallbackAddress string `env:"CALLBACK_ADDRESS"`

	// Timezone is the IANA location of the schedule, or "Local".
	// Env: SCHEDULER_TIMEZONE
	Timezone string `env:"TIMEZONE"`

	// RequestTimeout bounds requests to the CSE.
	// Env: SCHEDULER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RestoreOnStartup applies the latest stored schedule at startup.
	// Env: SCHEDULER_RESTORE_ON_STARTUP
	RestoreOnStartup *bool `env:"RESTORE_ON_STARTUP"`
}

// Provision holds the [provision] section.
type Provision struct {
	// Collection is the default collection file.
	// Env: PROVISION_COLLECTION
	Collection string `env:"COLLECTION"`

	// CSEURL is the base URL requests are sent to.
	// Env: PROVISION_CSE_URL
	CSEURL string `env:"CSE_URL"`

	// Originator is the default X-M2M-Origin of collection requests.
	// Env: PROVISION_ORIGINATOR
	Originator string `env:"ORIGINATOR"`

	// ReleaseVersion is the X-M2M-RVI of collection requests.
	// Env: PROVISION_RELEASE_VERSION
	ReleaseVersion string `env:"RELEASE_VERSION"`

	// Token is an optional bearer token for a CSE with token auth.
	// Env: PROVISION_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds each collection request.
	// Env: PROVISION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

func enabled(b *bool) bool {
	return b != nil && *b
}
