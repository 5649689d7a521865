package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"IP address with port", NetAddress{Host: "127.0.0.1", Port: 9090}, "127.0.0.1:9090"},
		{"all interfaces", NetAddress{Port: 3000}, ":3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{"localhost", "localhost:8080", false, "localhost", 8080},
		{"ipv4", "192.168.1.10:3000", false, "192.168.1.10", 3000},
		{"empty host", ":3000", false, "", 3000},
		{"no port", "localhost", true, "", 0},
		{"non numeric port", "localhost:http", true, "", 0},
		{"port zero", "localhost:0", true, "", 0},
		{"port too large", "localhost:70000", true, "", 0},
		{"hostname", "example.com:80", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
		})
	}
}

func TestNetAddress_ImplementsFlagValue(t *testing.T) {
	var _ flag.Value = &NetAddress{}
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags("test", nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags("test", []string{
		"--config=acme.ini",
		"-listen", "127.0.0.1:8181",
		"-http-address", "http://cse.local:8181",
		"-db-type", "sqlite",
		"-db-path", "/tmp/acme.db",
		"-db-reset",
		"-postgres-dsn", "postgres://x",
		"-log-level", "info",
		"-cse-url", "http://cse.local:8181",
		"-callback-address", ":3001",
		"-timezone", "Europe/Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme.ini", cfg.ConfigFilePath)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.ListenIF)
	assert.Equal(t, 8181, cfg.HTTP.Port)
	assert.Equal(t, "http://cse.local:8181", cfg.HTTP.Address)
	assert.Equal(t, DatabaseSQLite, cfg.Database.Type)
	assert.Equal(t, "/tmp/acme.db", cfg.Database.Path)
	assert.True(t, cfg.Database.ResetEnabled())
	assert.Equal(t, "postgres://x", cfg.Database.PostgresDSN)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "http://cse.local:8181", cfg.Scheduler.CSEURL)
	assert.Equal(t, ":3001", cfg.Scheduler.CallbackAddress)
	assert.Equal(t, "Europe/Berlin", cfg.Scheduler.Timezone)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := ParseFlags("test", []string{"-c", "other.ini"})
	require.NoError(t, err)
	assert.Equal(t, "other.ini", cfg.ConfigFilePath)
}

func TestParseFlags_DBResetUnsetStaysNil(t *testing.T) {
	cfg, err := ParseFlags("test", []string{"-log-level", "debug"})
	require.NoError(t, err)
	assert.Nil(t, cfg.Database.ResetOnStartup)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := ParseFlags("test", []string{"-unknown"})
	assert.Error(t, err)
}
