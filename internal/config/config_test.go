package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SALT", "test-salt")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/six_cities")
}

func TestLoad(t *testing.T) {
	t.Run("defaults fill everything but the required trio", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "4000", cfg.ServerPort)
		assert.Equal(t, "123456", cfg.DefaultPassword)
		assert.Equal(t, 5, cfg.DBConnectRetry)
		assert.Equal(t, 2*time.Second, cfg.DBConnectDelay)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	})

	t.Run("missing JWT_SECRET fails fast", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing SALT fails fast", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SALT", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing DATABASE_URL fails fast", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("overrides are honored", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("DB_CONNECT_RETRY", "3")
		t.Setenv("DB_CONNECT_DELAY", "500ms")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, 3, cfg.DBConnectRetry)
		assert.Equal(t, 500*time.Millisecond, cfg.DBConnectDelay)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	})

	t.Run("unparseable numbers fall back to defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_CONNECT_RETRY", "lots")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.DBConnectRetry)
	})
}
