// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Database types accepted by [database] type.
const (
	DatabaseMemory   = "memory"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgresql"
)

func (cfg *StructuredConfig) validateCSE() error {
	c := cfg.CSE
	if !strings.HasPrefix(c.CSEID, "/") || len(c.CSEID) < 2 {
		return fmt.Errorf("%w: cseID %q must start with '/'", ErrInvalidCSEConfigs, c.CSEID)
	}
	if c.ResourceID == "" || c.ResourceName == "" || c.Originator == "" {
		return fmt.Errorf("%w: resourceID, resourceName and originator are required", ErrInvalidCSEConfigs)
	}
	if strings.Contains(c.ResourceName, "/") {
		return fmt.Errorf("%w: resourceName %q must not contain '/'", ErrInvalidCSEConfigs, c.ResourceName)
	}
	switch strings.ToUpper(c.Type) {
	case "IN", "MN", "ASN":
	default:
		return fmt.Errorf("%w: unknown cse type %q", ErrInvalidCSEConfigs, c.Type)
	}
	if c.NotificationWorkers < 1 {
		return fmt.Errorf("%w: notificationWorkers must be positive", ErrInvalidCSEConfigs)
	}
	if c.MaxExpirationDelta <= 0 || c.CheckExpirationsInterval <= 0 {
		return fmt.Errorf("%w: expiration settings must be positive", ErrInvalidCSEConfigs)
	}

	h := cfg.HTTP
	if h.Port < 1 || h.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidHTTPConfigs, h.Port)
	}
	if _, err := url.ParseRequestURI(h.Address); err != nil {
		return fmt.Errorf("%w: address: %v", ErrInvalidHTTPConfigs, err)
	}
	if h.Root != "" && !strings.HasPrefix(h.Root, "/") {
		return fmt.Errorf("%w: root %q must start with '/'", ErrInvalidHTTPConfigs, h.Root)
	}
	if enabled(h.Security.EnableTokenAuth) && h.Security.TokenSignKey == "" {
		return fmt.Errorf("%w: tokenSignKey is required with token auth", ErrInvalidHTTPConfigs)
	}
	if enabled(h.Security.EnableBasicAuth) && h.Security.BasicAuthFile == "" {
		return fmt.Errorf("%w: basicAuthFile is required with basic auth", ErrInvalidHTTPConfigs)
	}

	d := cfg.Database
	switch d.Type {
	case DatabaseMemory:
	case DatabaseSQLite:
		if d.Path == "" {
			return fmt.Errorf("%w: sqlite requires a path", ErrInvalidDatabaseConfigs)
		}
	case DatabasePostgres:
		if d.PostgresDSN == "" {
			return fmt.Errorf("%w: postgresql requires a dsn", ErrInvalidDatabaseConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDatabaseConfigs, d.Type)
	}

	return nil
}

func (cfg *StructuredConfig) validateScheduler() error {
	s := cfg.Scheduler
	if _, err := url.ParseRequestURI(s.CSEURL); err != nil {
		return fmt.Errorf("%w: cseURL: %v", ErrInvalidSchedulerConfigs, err)
	}
	if !strings.HasPrefix(s.ExecutionStateContainer, "/") || !strings.HasPrefix(s.ScheduleContainer, "/") {
		return fmt.Errorf("%w: container paths must start with '/'", ErrInvalidSchedulerConfigs)
	}
	if s.Originator == "" || s.CallbackAddress == "" {
		return fmt.Errorf("%w: originator and callbackAddress are required", ErrInvalidSchedulerConfigs)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%w: requestTimeout must be positive", ErrInvalidSchedulerConfigs)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: timezone: %v", ErrInvalidSchedulerConfigs, err)
	}

	return nil
}

func (cfg *StructuredConfig) validateProvision() error {
	p := cfg.Provision
	if _, err := url.ParseRequestURI(p.CSEURL); err != nil {
		return fmt.Errorf("%w: cseURL: %v", ErrInvalidProvisionConfigs, err)
	}
	if p.Originator == "" || p.ReleaseVersion == "" {
		return fmt.Errorf("%w: originator and releaseVersion are required", ErrInvalidProvisionConfigs)
	}
	if p.RequestTimeout <= 0 {
		return fmt.Errorf("%w: requestTimeout must be positive", ErrInvalidProvisionConfigs)
	}

	return nil
}
