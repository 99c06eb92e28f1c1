package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model())
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 15*time.Second, cfg.LLM.RepairTimeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxInterval)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.False(t, cfg.Retry.Jitter)
	assert.Equal(t, 10, cfg.RateLimit.PerMinute)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Empty(t, cfg.Admin.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Admin.TokenExpiry)
}

func TestGetDatabaseDSN(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RUN_LOG_ENABLED", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "insights")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=insights sslmode=disable", cfg.GetDatabaseDSN())
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Database.RunLogEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", ProviderGemini)
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("CACHE_BACKEND", CacheRedis)
	t.Setenv("CACHE_TTL_HOURS", "6")
	t.Setenv("MAX_RETRY_ATTEMPTS", "5")
	t.Setenv("RETRY_JITTER", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model())
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.True(t, cfg.Retry.Jitter)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing openai key", map[string]string{}},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "bard", "OPENAI_API_KEY": "x"}},
		{"groq without key", map[string]string{"LLM_PROVIDER": ProviderGroq}},
		{"unknown cache backend", map[string]string{"OPENAI_API_KEY": "x", "CACHE_BACKEND": "disk"}},
		{"zero ttl", map[string]string{"OPENAI_API_KEY": "x", "CACHE_TTL_HOURS": "0"}},
		{"zero attempts", map[string]string{"OPENAI_API_KEY": "x", "MAX_RETRY_ATTEMPTS": "0"}},
		{"inverted intervals", map[string]string{"OPENAI_API_KEY": "x", "RETRY_INITIAL_INTERVAL": "10s", "RETRY_MAX_INTERVAL": "1s"}},
		{"archive without credentials", map[string]string{"OPENAI_API_KEY": "x", "TRANSCRIPT_ARCHIVE_ENABLED": "true"}},
		{"unparsable duration", map[string]string{"OPENAI_API_KEY": "x", "LLM_TIMEOUT": "soon"}},
		{"production without admin secret", map[string]string{"OPENAI_API_KEY": "x", "ENVIRONMENT": "production"}},
		{"staging without admin secret", map[string]string{"OPENAI_API_KEY": "x", "ENVIRONMENT": "staging"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadUnvalidatedSkipsGeneratorChecks(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadUnvalidated()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadAdminSecretByEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ADMIN_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err, "development may run without an admin secret")
	assert.True(t, cfg.IsDevelopment())

	t.Setenv("ENVIRONMENT", "production")
	_, err = Load()
	assert.ErrorContains(t, err, "ADMIN_JWT_SECRET is required")

	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Admin.JWTSecret)
}
