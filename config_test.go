package sso_test

import (
	"testing"
	"time"

	"github.com/pushkind/sso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SSO_SIGNING_KEY", "env-signing-key")

	cfg, err := sso.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 168*time.Hour, cfg.GetSessionDuration())
	assert.Equal(t, 24*time.Hour, cfg.GetRecoveryDuration())
	assert.Equal(t, "sso_session", cfg.GetContextKey())
	assert.Equal(t, "cookie:sso_session", cfg.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SSO_SIGNING_KEY", "env-signing-key")
	t.Setenv("SSO_SESSION_DURATION", "48h")
	t.Setenv("SSO_BASE_URL", "https://sso.example.com")

	cfg, err := sso.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.GetSessionDuration())
	assert.Equal(t, "https://sso.example.com", cfg.GetBaseURL())
}

func TestLoadConfigRequiresSigningKey(t *testing.T) {
	t.Setenv("SSO_SIGNING_KEY", "")

	_, err := sso.LoadConfig()
	assert.Error(t, err)
}
