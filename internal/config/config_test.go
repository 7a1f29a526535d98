package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 16, cfg.PostgresMaxOpenConns)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, NotifierModeOff, cfg.NotifierMode)
	assert.Equal(t, "email:welcome", cfg.EmailQueueKey)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "accounts")
	t.Setenv("NOTIFIER_MODE", NotifierModeQueue)
	t.Setenv("KAFKA_BROKERS", "kafka:9092")

	cfg, err := Load("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 6543, cfg.PostgresPort)
	assert.Equal(t, "accounts", cfg.PostgresDB)
	assert.Equal(t, NotifierModeQueue, cfg.NotifierMode)
	assert.Equal(t, "kafka:9092", cfg.KafkaBrokers)
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := Load("nonexistent.env")
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     5432,
		PostgresUser:     "user",
		PostgresPassword: "pass",
		PostgresDB:       "accounts",
	}

	assert.Equal(t, "postgres://user:pass@db:5432/accounts?sslmode=disable", cfg.PostgresDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: 6380}

	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
