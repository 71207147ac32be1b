// Package storage persists the recipe collection as one JSON blob under a
// single key of a pluggable key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"recipe-catalog/internal/infrastructure/config"
)

// ErrNotFound is returned by KV.Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the minimal key-value contract the persistence adapter needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// NewKV opens the backend selected by cfg.Storage.Backend.
func NewKV(cfg *config.Config) (KV, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), nil
	case config.BackendFile:
		return NewFileKV(cfg.Storage.Dir)
	case config.BackendRedis:
		return NewRedisKV(cfg.Redis)
	case config.BackendSQLite:
		return NewSQLiteKV(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
