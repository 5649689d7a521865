package config

import "time"

// GetSchedulerConfig assembles the configuration of the scheduler binary.
func GetSchedulerConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags("scheduler", args).
		withEnv().
		withINI().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateScheduler()
}

// Location resolves the schedule timezone.
func (s Scheduler) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (s Scheduler) RestoreEnabled() bool { return enabled(s.RestoreOnStartup) }
