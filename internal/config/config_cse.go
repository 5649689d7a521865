package config

import (
	"net"
	"strconv"
)

// GetCSEConfig assembles the configuration of the acmecse binary from args,
// the environment, the INI file and the defaults.
func GetCSEConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags("acmecse", args).
		withEnv().
		withINI().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateCSE()
}

// ListenAddress returns the host:port the CSE HTTP server binds to.
func (h HTTP) ListenAddress() string {
	return net.JoinHostPort(h.ListenIF, strconv.Itoa(h.Port))
}

// PointsOfAccess returns the configured poa, or the public address.
func (cfg *StructuredConfig) PointsOfAccess() []string {
	if len(cfg.CSE.PointOfAccess) > 0 {
		return cfg.CSE.PointOfAccess
	}
	return []string{cfg.HTTP.Address}
}

func (c CSE) VerificationEnabled() bool   { return enabled(c.EnableSubscriptionVerificationRequests) }
func (c CSE) AsyncNotifications() bool    { return enabled(c.AsyncSubscriptionNotifications) }
func (s Security) ACPChecksEnabled() bool { return enabled(s.EnableACPChecks) }
func (s Security) AdminFullAccess() bool  { return enabled(s.FullAccessAdmin) }

func (h HTTP) MetricsEnabled() bool           { return enabled(h.EnableMetrics) }
func (s HTTPSecurity) BasicAuthEnabled() bool { return enabled(s.EnableBasicAuth) }
func (s HTTPSecurity) TokenAuthEnabled() bool { return enabled(s.EnableTokenAuth) }
func (d Database) ResetEnabled() bool         { return enabled(d.ResetOnStartup) }
