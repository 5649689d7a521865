package config

import "time"

func defaultConfig() *StructuredConfig {
	on, off := true, false

	return &StructuredConfig{
		CSE: CSE{
			CSEID:                                  "/id-in",
			ResourceID:                             "id-in",
			ResourceName:                           "cse-in",
			Originator:                             "CAdmin",
			Type:                                   "IN",
			ReleaseVersion:                         "3",
			SupportedReleaseVersions:               []string{"2a", "3", "4"},
			EnableSubscriptionVerificationRequests: &on,
			AsyncSubscriptionNotifications:         &on,
			NotificationWorkers:                    4,
			NotificationTimeout:                    10 * time.Second,
			CheckExpirationsInterval:               60 * time.Second,
			MaxExpirationDelta:                     5 * 365 * 24 * time.Hour,
			Registration: Registration{
				AllowedAEOriginators: []string{"C*", "S*"},
			},
			Security: Security{
				EnableACPChecks: &on,
				FullAccessAdmin: &on,
			},
			Container: ContainerDefaults{
				MaxNrOfInstances: 10,
				MaxByteSize:      10000,
			},
		},
		HTTP: HTTP{
			Address:       "http://127.0.0.1:8080",
			ListenIF:      "0.0.0.0",
			Port:          8080,
			Timeout:       10 * time.Second,
			EnableMetrics: &off,
			Security: HTTPSecurity{
				EnableBasicAuth: &off,
				EnableTokenAuth: &off,
				TokenIssuer:     "acmecse",
			},
		},
		Database: Database{
			Type:           DatabaseMemory,
			Path:           "./data/acme.db",
			ResetOnStartup: &off,
		},
		Logging: Logging{
			Level: "debug",
		},
		Scheduler: Scheduler{
			CSEURL:                  "http://127.0.0.1:8080",
			ExecutionStateContainer: "/cse-in/NoiseCancellationSystem/ExecutionState",
			ScheduleContainer:       "/cse-in/NoiseCancellationSystem/Schedule",
			Originator:              "CAdmin",
			ReleaseVersion:          "3",
			CallbackAddress:         ":3000",
			Timezone:                "Local",
			RequestTimeout:          10 * time.Second,
			RestoreOnStartup:        &on,
		},
		Provision: Provision{
			Collection:     "collections/noise_cancellation.yaml",
			CSEURL:         "http://127.0.0.1:8080",
			Originator:     "CAdmin",
			ReleaseVersion: "3",
			RequestTimeout: 10 * time.Second,
		},
	}
}
