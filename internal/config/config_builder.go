package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// defaultConfigFile is read when neither -config nor CONFIG names a file.
const defaultConfigFile = "acme.ini"

// configBuilder collects partial configurations in priority order. The first
// source that sets a field wins, so sources must be added from the highest
// priority to the lowest.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withFlags(name string, args []string) *configBuilder {
	flags, err := ParseFlags(name, args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// withINI reads the INI file named by an earlier source. Without an explicit
// path it falls back to acme.ini in the working directory, if present.
func (b *configBuilder) withINI() *configBuilder {
	iniPath := ""
	for _, cfg := range b.configs {
		if cfg.ConfigFilePath != "" {
			iniPath = cfg.ConfigFilePath
			break
		}
	}

	if iniPath == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return b
		}
		iniPath = defaultConfigFile
	}

	iniCfg, err := parseINI(iniPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, iniCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}
