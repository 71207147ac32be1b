package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-catalog/internal/infrastructure/config"
)

func newBackends(t *testing.T) map[string]KV {
	t.Helper()

	mr := miniredis.RunT(t)
	redisKV, err := NewRedisKV(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)

	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(":memory:")
	require.NoError(t, err)

	backends := map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
		"redis":  redisKV,
		"sqlite": sqliteKV,
	}
	t.Cleanup(func() {
		for _, kv := range backends {
			kv.Close()
		}
	})
	return backends
}

func TestKV_Contract(t *testing.T) {
	for name, kv := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "recipe-management-data", []byte(`{"recipes":[]}`)))
			got, err := kv.Get(ctx, "recipe-management-data")
			require.NoError(t, err)
			assert.JSONEq(t, `{"recipes":[]}`, string(got))

			require.NoError(t, kv.Set(ctx, "recipe-management-data", []byte(`{"recipes":null}`)))
			got, err = kv.Get(ctx, "recipe-management-data")
			require.NoError(t, err)
			assert.Equal(t, `{"recipes":null}`, string(got))

			_, err = kv.Get(ctx, "other")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte("abc")
	require.NoError(t, kv.Set(context.Background(), "k", value))
	value[0] = 'x'

	got, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileKV_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(context.Background(), "../escape/me", []byte("v")))

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	got, err := kv.Get(context.Background(), "../escape/me")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "recipes.db")
	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "k", []byte("v1")))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	got, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestNewRedisKV_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisKV(config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestNewKV(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}
	kv, err := NewKV(cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	cfg.Storage = config.StorageConfig{Backend: config.BackendFile, Dir: t.TempDir()}
	kv, err = NewKV(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	cfg.Storage = config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: ":memory:"}
	kv, err = NewKV(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	kv.Close()

	cfg.Storage = config.StorageConfig{Backend: "tape"}
	_, err = NewKV(cfg)
	assert.Error(t, err)
}
