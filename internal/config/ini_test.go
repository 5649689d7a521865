package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
[cse]
cseID = /id-in
resourceName = cse-in
supportedReleaseVersions = 2a, 3 ,4
notificationTimeout = 15
checkExpirationsInterval = 2m
enableSubscriptionVerificationRequests = false

[cse.registration]
allowedAEOriginators = C*, S*, Cnoise

[cse.security]
enableACPChecks = true

[resource.cnt]
mni = 20
mbs = 2048

[http]
address = http://127.0.0.1:8080
port = 8080
root = /onem2m

[database]
type = sqlite
path = ./data/acme.db ; inline comment

[database.postgresql]
dsn = postgres://acme@localhost/acme

[scheduler]
timezone = UTC
requestTimeout = 1.5
`

func TestParseINI_Sections(t *testing.T) {
	path := writeTempINI(t, sampleINI)

	cfg, err := parseINI(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFilePath)
	assert.Equal(t, "/id-in", cfg.CSE.CSEID)
	assert.Equal(t, []string{"2a", "3", "4"}, cfg.CSE.SupportedReleaseVersions)
	assert.Equal(t, 15*time.Second, cfg.CSE.NotificationTimeout)
	assert.Equal(t, 2*time.Minute, cfg.CSE.CheckExpirationsInterval)
	require.NotNil(t, cfg.CSE.EnableSubscriptionVerificationRequests)
	assert.False(t, *cfg.CSE.EnableSubscriptionVerificationRequests)
	assert.Nil(t, cfg.CSE.AsyncSubscriptionNotifications)
	assert.Equal(t, []string{"C*", "S*", "Cnoise"}, cfg.CSE.Registration.AllowedAEOriginators)
	assert.True(t, cfg.CSE.Security.ACPChecksEnabled())
	assert.Equal(t, int64(20), cfg.CSE.Container.MaxNrOfInstances)
	assert.Equal(t, int64(2048), cfg.CSE.Container.MaxByteSize)
	assert.Equal(t, "/onem2m", cfg.HTTP.Root)
	assert.Equal(t, DatabaseSQLite, cfg.Database.Type)
	assert.Equal(t, "./data/acme.db", cfg.Database.Path)
	assert.Equal(t, "postgres://acme@localhost/acme", cfg.Database.PostgresDSN)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 1500*time.Millisecond, cfg.Scheduler.RequestTimeout)
}

func TestParseINI_MissingSectionsLeaveZeroValues(t *testing.T) {
	path := writeTempINI(t, "[logging]\nlevel = trace\n")

	cfg, err := parseINI(path)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Empty(t, cfg.CSE.CSEID)
	assert.Zero(t, cfg.HTTP.Port)
}

func TestParseINI_InvalidValues(t *testing.T) {
	path := writeTempINI(t, "[http]\nport = eighty\n[cse]\nnotificationTimeout = later\n")

	_, err := parseINI(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[http] port")
	assert.Contains(t, err.Error(), "[cse] notificationTimeout")
}

func TestParseINI_MissingFile(t *testing.T) {
	_, err := parseINI("/does/not/exist.ini")
	assert.Error(t, err)
}
