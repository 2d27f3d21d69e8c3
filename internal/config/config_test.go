package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrylnikov/arcana/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.StorageEngine)
	assert.Equal(t, "anthropic", cfg.Interpreter.Provider)
	assert.Equal(t, 60*time.Second, cfg.Interpreter.Timeout)
	assert.Equal(t, 75, cfg.Resolver.Threshold)
	assert.Equal(t, 10, cfg.Resolver.MaxCards)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 1, cfg.Session.TrialReadings)
	assert.Equal(t, 5, cfg.Session.RatePerMinute)
	assert.Empty(t, cfg.Session.AllowedUsers)
}

func TestLoadConfig_CanOverrideEngine(t *testing.T) {
	t.Setenv("ARCANA_STORAGE_ENGINE", "sqlite")
	t.Setenv("ARCANA_DATA_PATH", "/tmp/arcana")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.StorageEngine)
	assert.Equal(t, "/tmp/arcana", cfg.Storage.DataPath)
}

func TestLoadConfig_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("ARCANA_STORAGE_ENGINE", "postgres")

	_, err := config.LoadConfig()
	assert.Error(t, err)

	t.Setenv("ARCANA_POSTGRES_DSN", "postgres://localhost/arcana?sslmode=disable")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.StorageEngine)
}

func TestLoadConfig_UnknownEngineRejected(t *testing.T) {
	t.Setenv("ARCANA_STORAGE_ENGINE", "etcd")
	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_AllowedUsersParsesCSV(t *testing.T) {
	t.Setenv("ARCANA_ALLOWED_USERS", "alice, bob,, carol ")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.Session.AllowedUsers)
}

func TestLoadConfig_ThresholdBounds(t *testing.T) {
	t.Setenv("ARCANA_RESOLVE_THRESHOLD", "150")
	_, err := config.LoadConfig()
	assert.Error(t, err)

	t.Setenv("ARCANA_RESOLVE_THRESHOLD", "0")
	_, err = config.LoadConfig()
	assert.Error(t, err, "a zero threshold would silently be replaced downstream")

	t.Setenv("ARCANA_RESOLVE_THRESHOLD", "not-a-number")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Resolver.Threshold, "unparseable values fall back to the default")
}

func TestLoadConfig_DurationOverride(t *testing.T) {
	t.Setenv("ARCANA_SESSION_TTL", "1h30m")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
}
