package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Tiers.PrimaryTimeout)
	assert.Equal(t, 25*time.Second, cfg.Tiers.SecondaryTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.False(t, cfg.Cache.RedisEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PUMPDRIVE_ADDR", ":9999")
	t.Setenv("PUMPDRIVE_TIER1_TIMEOUT", "12s")
	t.Setenv("PUMPDRIVE_REDIS_ENABLED", "true")
	t.Setenv("PUMPDRIVE_TIER_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 12*time.Second, cfg.Tiers.PrimaryTimeout)
	assert.True(t, cfg.Cache.RedisEnabled)
	assert.Equal(t, 5, cfg.Tiers.RetryAttempts)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PUMPDRIVE_TIER1_TIMEOUT", "soon")
	t.Setenv("PUMPDRIVE_TIER_RETRIES", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Tiers.PrimaryTimeout)
	assert.Equal(t, 2, cfg.Tiers.RetryAttempts)
}

func TestValidate_RejectsBrokenConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Tiers.PrimaryTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg, _ = Load()
	cfg.Sessions.TTL = -time.Minute
	assert.Error(t, cfg.Validate())
}
