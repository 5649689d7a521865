package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// iniReader copies keys of an acme.ini file into a [StructuredConfig].
// Missing sections and keys are skipped; malformed values are collected and
// reported together.
type iniReader struct {
	file *ini.File
	err  error
}

// parseINI loads the INI file at path and maps its sections onto a
// [StructuredConfig].
func parseINI(path string) (*StructuredConfig, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("error reading ini file: %w", err)
	}

	r := &iniReader{file: file}
	cfg := &StructuredConfig{ConfigFilePath: path}

	r.str("cse", "cseID", &cfg.CSE.CSEID)
	r.str("cse", "resourceID", &cfg.CSE.ResourceID)
	r.str("cse", "resourceName", &cfg.CSE.ResourceName)
	r.str("cse", "originator", &cfg.CSE.Originator)
	r.str("cse", "type", &cfg.CSE.Type)
	r.str("cse", "releaseVersion", &cfg.CSE.ReleaseVersion)
	r.list("cse", "supportedReleaseVersions", &cfg.CSE.SupportedReleaseVersions)
	r.list("cse", "poa", &cfg.CSE.PointOfAccess)
	r.boolean("cse", "enableSubscriptionVerificationRequests", &cfg.CSE.EnableSubscriptionVerificationRequests)
	r.boolean("cse", "asyncSubscriptionNotifications", &cfg.CSE.AsyncSubscriptionNotifications)
	r.integer("cse", "notificationWorkers", &cfg.CSE.NotificationWorkers)
	r.duration("cse", "notificationTimeout", &cfg.CSE.NotificationTimeout)
	r.duration("cse", "checkExpirationsInterval", &cfg.CSE.CheckExpirationsInterval)
	r.duration("cse", "maxExpirationDelta", &cfg.CSE.MaxExpirationDelta)

	r.list("cse.registration", "allowedAEOriginators", &cfg.CSE.Registration.AllowedAEOriginators)
	r.boolean("cse.security", "enableACPChecks", &cfg.CSE.Security.EnableACPChecks)
	r.boolean("cse.security", "fullAccessAdmin", &cfg.CSE.Security.FullAccessAdmin)

	r.integer64("resource.cnt", "mni", &cfg.CSE.Container.MaxNrOfInstances)
	r.integer64("resource.cnt", "mbs", &cfg.CSE.Container.MaxByteSize)

	r.str("http", "address", &cfg.HTTP.Address)
	r.str("http", "listenIF", &cfg.HTTP.ListenIF)
	r.integer("http", "port", &cfg.HTTP.Port)
	r.str("http", "root", &cfg.HTTP.Root)
	r.duration("http", "timeout", &cfg.HTTP.Timeout)
	r.boolean("http", "enableMetrics", &cfg.HTTP.EnableMetrics)

	r.boolean("http.security", "enableBasicAuth", &cfg.HTTP.Security.EnableBasicAuth)
	r.str("http.security", "basicAuthFile", &cfg.HTTP.Security.BasicAuthFile)
	r.boolean("http.security", "enableTokenAuth", &cfg.HTTP.Security.EnableTokenAuth)
	r.str("http.security", "tokenSignKey", &cfg.HTTP.Security.TokenSignKey)
	r.str("http.security", "tokenIssuer", &cfg.HTTP.Security.TokenIssuer)

	r.str("database", "type", &cfg.Database.Type)
	r.str("database", "path", &cfg.Database.Path)
	r.boolean("database", "resetOnStartup", &cfg.Database.ResetOnStartup)
	r.str("database.postgresql", "dsn", &cfg.Database.PostgresDSN)

	r.str("logging", "level", &cfg.Logging.Level)

	r.str("scheduler", "cseURL", &cfg.Scheduler.CSEURL)
	r.str("scheduler", "executionStateContainer", &cfg.Scheduler.ExecutionStateContainer)
	r.str("scheduler", "scheduleContainer", &cfg.Scheduler.ScheduleContainer)
	r.str("scheduler", "originator", &cfg.Scheduler.Originator)
	r.str("scheduler", "releaseVersion", &cfg.Scheduler.ReleaseVersion)
	r.str("scheduler", "callbackAddress", &cfg.Scheduler.CallbackAddress)
	r.str("scheduler", "timezone", &cfg.Scheduler.Timezone)
	r.duration("scheduler", "requestTimeout", &cfg.Scheduler.RequestTimeout)
	r.boolean("scheduler", "restoreOnStartup", &cfg.Scheduler.RestoreOnStartup)

	r.str("provision", "collection", &cfg.Provision.Collection)
	r.str("provision", "cseURL", &cfg.Provision.CSEURL)
	r.str("provision", "originator", &cfg.Provision.Originator)
	r.str("provision", "releaseVersion", &cfg.Provision.ReleaseVersion)
	r.str("provision", "token", &cfg.Provision.Token)
	r.duration("provision", "requestTimeout", &cfg.Provision.RequestTimeout)

	if r.err != nil {
		return nil, fmt.Errorf("error parsing ini file %s: %w", path, r.err)
	}

	return cfg, nil
}

func (r *iniReader) key(section, name string) (*ini.Key, bool) {
	sec, err := r.file.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return nil, false
	}
	return sec.Key(name), true
}

func (r *iniReader) fail(section, name string, err error) {
	r.err = errors.Join(r.err, fmt.Errorf("[%s] %s: %w", section, name, err))
}

func (r *iniReader) str(section, name string, dst *string) {
	if k, ok := r.key(section, name); ok {
		*dst = strings.TrimSpace(k.String())
	}
}

func (r *iniReader) list(section, name string, dst *[]string) {
	k, ok := r.key(section, name)
	if !ok {
		return
	}
	values := make([]string, 0)
	for _, v := range k.Strings(",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	*dst = values
}

func (r *iniReader) boolean(section, name string, dst **bool) {
	k, ok := r.key(section, name)
	if !ok {
		return
	}
	v, err := k.Bool()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = &v
}

func (r *iniReader) integer(section, name string, dst *int) {
	k, ok := r.key(section, name)
	if !ok {
		return
	}
	v, err := k.Int()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) integer64(section, name string, dst *int64) {
	k, ok := r.key(section, name)
	if !ok {
		return
	}
	v, err := k.Int64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

// duration accepts Go durations ("90s", "5m") as well as plain numbers,
// which are read as seconds.
func (r *iniReader) duration(section, name string, dst *time.Duration) {
	k, ok := r.key(section, name)
	if !ok {
		return
	}
	raw := strings.TrimSpace(k.String())
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		*dst = time.Duration(secs * float64(time.Second))
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}
