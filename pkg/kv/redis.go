package kv

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *goredis.Client
}

func OpenRedis(ctx context.Context, addr string) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis store requires an address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return NewRedisStore(rdb), nil
}

func NewRedisStore(rdb *goredis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", key)
	}
	return b, nil
}

// Set stores without expiry: the slot must survive restarts.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrapf(r.rdb.Set(ctx, key, value, 0).Err(), "redis set %s", key)
}

func (r *RedisStore) Close() error { return r.rdb.Close() }
