package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/department-enricher/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENRICH_KEY_NAME", "")
	t.Setenv("ENRICH_ON_ERROR", "")
	t.Setenv("AUTH_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "department_codes", cfg.Enrichment.DefaultKeyName)
	assert.Equal(t, domain.ErrorPolicyAbort, cfg.Enrichment.OnError)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENRICH_KEY_NAME", "dept")
	t.Setenv("ENRICH_ON_ERROR", "SKIP")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dept", cfg.Enrichment.DefaultKeyName)
	assert.Equal(t, domain.ErrorPolicySkip, cfg.Enrichment.OnError)
	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr())
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("ENRICH_ON_ERROR", "retry")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AuthRequiresSecretHash(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_CLIENT_SECRET_HASH", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsInt_Fallback(t *testing.T) {
	t.Setenv("SOME_INT", "nope")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
