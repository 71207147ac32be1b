package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "recipe-management-data", cfg.Storage.Key)
	assert.True(t, cfg.Suggestion.Enabled)
	assert.Equal(t, "http://localhost:8000/suggest_recipe", cfg.Suggestion.Endpoint)
	assert.Equal(t, 60*time.Second, cfg.Suggestion.Timeout)
	assert.Equal(t, 200, cfg.Cache.MaxSize)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 180, cfg.Filters.MaxPrepTime)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/recipes.db")
	t.Setenv("SUGGESTION_URL", "http://suggest.internal/recipe")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DEDUP_WINDOW", "0s")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_CACHE_MAX_SIZE", "5")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/recipes.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "http://suggest.internal/recipe", cfg.Suggestion.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, time.Duration(0), cfg.DedupWindow)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Cache.MaxSize)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: memory
suggestion:
  enabled: false
  min_interval: 2s
filters:
  max_prep_time: 0
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.False(t, cfg.Suggestion.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Suggestion.MinInterval)
	assert.Equal(t, 0, cfg.Filters.MaxPrepTime)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "etcd"}},
		{"bad port", map[string]string{"PORT": "70000"}},
		{"blank key", map[string]string{"STORAGE_KEY": " "}},
		{"bad rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
