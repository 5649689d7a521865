package config

import "errors"

// Validation errors returned when a binary's configuration view is incomplete
// or inconsistent.
var (
	// ErrInvalidCSEConfigs indicates invalid [cse] settings (for example, a
	// CSE-ID without a leading slash or an unknown CSE type).
	ErrInvalidCSEConfigs = errors.New("invalid cse configuration")
	// ErrInvalidHTTPConfigs indicates invalid [http] settings.
	ErrInvalidHTTPConfigs = errors.New("invalid http configuration")
	// ErrInvalidDatabaseConfigs indicates an unknown database type or a
	// missing path / DSN for the selected type.
	ErrInvalidDatabaseConfigs = errors.New("invalid database configuration")
	// ErrInvalidSchedulerConfigs indicates invalid [scheduler] settings.
	ErrInvalidSchedulerConfigs = errors.New("invalid scheduler configuration")
	// ErrInvalidProvisionConfigs indicates invalid [provision] settings.
	ErrInvalidProvisionConfigs = errors.New("invalid provision configuration")
)
