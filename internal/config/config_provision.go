package config

import (
	"errors"
	"os"
)

// LoadProvisionConfig assembles the configuration of the provision tool.
// Its command line is owned by cobra, so only the INI path is taken from the
// caller; an empty path falls back to CONFIG and then acme.ini.
func LoadProvisionConfig(iniPath string) (*StructuredConfig, error) {
	b := newConfigBuilder()
	if iniPath != "" {
		if _, err := os.Stat(iniPath); err != nil {
			return nil, errors.Join(ErrInvalidProvisionConfigs, err)
		}
		b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: iniPath})
	}

	cfg, err := b.withEnv().withINI().withDefaults().build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateProvision()
}
