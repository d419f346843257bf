package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "stockflow-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, int64(20), cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PingInterval)
}

func TestValidate(t *testing.T) {
	t.Run("development defaults pass", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		require.NoError(t, cfg.validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "short"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10

		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio bounds", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Telemetry.SamplingRatio = 1.5

		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "stockflow",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
