package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RepoConfig(t *testing.T) {
	cfg, err := Load("dev", "../../config.toml")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "habitflow", cfg.PostgresDBName)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.HabitsCacheTTL)
	assert.Contains(t, cfg.CorsAllowedOrigins, "http://localhost:5173")

	cfg, err = Load("production", "../../config.toml")
	require.NoError(t, err)
	assert.True(t, cfg.LogFormatJSON)
	assert.Equal(t, "/var/log/habitflow/", cfg.LogsPath)
	assert.Equal(t, 30, cfg.LogMaxBackups)
	assert.Equal(t, int32(20), cfg.PostgresMaxConns)
}

func TestLoad_DefaultsAndErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[development]
port = 8080
postgres_host = "db"
postgres_db_name = "habitflow"
redis_host = "cache"
quotes_csv_path = "q.csv"
`), 0o600))

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 15, cfg.LoginRateLimitAllowedPerMin)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 8*time.Hour, cfg.SessionsCleanupInterval)

	_, err = Load("staging", path)
	assert.ErrorContains(t, err, "unknown env")

	_, err = Load("production", path)
	assert.ErrorContains(t, err, "no config section")

	_, err = Load("dev", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`
[development]
timezone = "Mars/Olympus"
`), 0o600))
	_, err = Load("dev", path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "port must be set")
	assert.ErrorContains(t, err, "redis host must be set")
	assert.ErrorContains(t, err, "timezone")
}
