package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "membergate", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.HTTP.CookieDomain)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 15432, cfg.Postgres.Port)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestAuthConfig_SanitizeGuardrails(t *testing.T) {
	a := AuthConfig{SessionTTL: -time.Minute, BcryptCost: 99}
	a.Sanitize()
	assert.Equal(t, time.Hour, a.SessionTTL)
	assert.Equal(t, bcrypt.DefaultCost, a.BcryptCost)

	a = AuthConfig{SessionTTL: 15 * time.Minute, BcryptCost: bcrypt.MinCost}
	a.Sanitize()
	assert.Equal(t, 15*time.Minute, a.SessionTTL)
	assert.Equal(t, bcrypt.MinCost, a.BcryptCost)
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
