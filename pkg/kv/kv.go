// Package kv provides the durable string-keyed slots the simulator persists
// state into. Every backend stores opaque byte values under a key.
package kv

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrUnknownDriver = errors.New("kv: unknown driver")
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Options struct {
	Driver    string
	Dir       string
	DSN       string
	RedisAddr string
}

// Open builds the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", "file":
		return NewFileStore(opts.Dir)
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		dsn := opts.DSN
		if dsn == "" {
			dsn = "cartsim.db"
		}
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(opts.DSN)
	case "redis":
		return OpenRedis(ctx, opts.RedisAddr)
	default:
		return nil, ErrUnknownDriver
	}
}
