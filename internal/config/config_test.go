package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "fallback_config.json", cfg.State.Path)
	assert.True(t, cfg.Audit.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1440, cfg.Redis.TTLMinutes)
	assert.True(t, cfg.Quota.DefaultAvailable)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("STATE_PATH", "/tmp/state.json")
	t.Setenv("QUOTA_DEFAULT_AVAILABLE", "false")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "/tmp/state.json", cfg.State.Path)
	assert.False(t, cfg.Quota.DefaultAvailable)
}
