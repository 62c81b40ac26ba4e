package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SLOT_MODEL_PATH", "/etc/diet/slot_model.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "hunter2", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "/etc/diet/slot_model.json", cfg.SlotModelPath)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "diet_recommendation", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.SlotModelPath)
}

func TestValidateConfigRejectsDevSecretsInProduction(t *testing.T) {
	t.Setenv("ENV", "production")

	err := ValidateConfig(&Config{
		DBHost:    "db",
		DBName:    "diet_recommendation",
		DBSSLMode: "disable",
		JWTSecret: "dev-secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
