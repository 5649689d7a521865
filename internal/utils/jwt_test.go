package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("acmecse", "CNoiseCancellationSystem", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "CNoiseCancellationSystem", token.Originator)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "acmecse", claims.Issuer)
	assert.Equal(t, "CNoiseCancellationSystem", claims.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name       string
		issuer     string
		originator string
		duration   time.Duration
		key        string
	}{
		{"empty issuer", "", "CAdmin", time.Hour, "key"},
		{"empty originator", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "CAdmin", 0, "key"},
		{"empty key", "iss", "CAdmin", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.originator, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("acmecse", "CAdmin", time.Hour, "secret-key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "secret-key", "acmecse")
	require.NoError(t, err)
	assert.Equal(t, "CAdmin", parsed.Originator)
	assert.Equal(t, token.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken("acmecse", "CAdmin", time.Hour, "secret-key")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("acmecse", "CAdmin", time.Nanosecond, "secret-key")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other-key", "acmecse"},
		{"wrong issuer", valid.SignedString, "secret-key", "other"},
		{"expired", expired.SignedString, "secret-key", "acmecse"},
		{"garbage", "not.a.token", "secret-key", "acmecse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ParseBearerToken("  bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, bad := range []string{"", "Bearer", "Basic dXNlcjpwYXNz", "Bearer a b"} {
		_, err = ParseBearerToken(bad)
		assert.Error(t, err, bad)
	}
}
