package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "gpt-4o-mini", cfg.Generator.Model)
	assert.Equal(t, 60*time.Second, cfg.Generator.Timeout)

	assert.Equal(t, "Template.pdf", cfg.Render.TemplatePDF)

	assert.Equal(t, "./session_files", cfg.Storage.SessionDir)
	assert.Equal(t, "./outputs", cfg.Storage.OutputDir)
	assert.Equal(t, "./temp_files", cfg.Storage.TempDir)
	assert.Equal(t, "./flowchart_templates", cfg.Storage.TemplateDir)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GENERATOR_MODEL", "gpt-4o")
	t.Setenv("GENERATOR_TIMEOUT", "30s")
	t.Setenv("SESSION_DIR", "/var/lib/dotpress/sessions")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.Generator.Model)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "/var/lib/dotpress/sessions", cfg.Storage.SessionDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Server.Port)
}
