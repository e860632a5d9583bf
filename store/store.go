// Package store provides the key-value persistence backends behind the
// submission and invoice service. Values are opaque JSON documents; callers
// own key naming and must not rely on the order GetByPrefix returns.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dibbotcf/Legacyscript/config"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Store is a key to JSON-value store with prefix scan.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns the values of every key starting with prefix, in no particular order.
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Close() error
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverBadger:
		return OpenBadger(BadgerOptions{Path: cfg.Path, InMemory: cfg.InMemory})
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case config.DriverMinio:
		return OpenMinio(ctx, &cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
