package cache

import (
	"context"
	"errors"
	"time"

	perr "engagegov/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Redis stores values under prefix+key with native expiry
type Redis struct {
	c      redis.Cmdable
	prefix string
}

// NewRedis wraps any go-redis client; prefix namespaces the keys, e.g. "engagegov:"
func NewRedis(c redis.Cmdable, prefix string) *Redis {
	return &Redis{c: c, prefix: prefix}
}

// Get maps redis.Nil to a miss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.c.Get(ctx, r.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "cache get")
	}
	return b, true, nil
}

// Set writes with ttl; ttl <= 0 means no expiry
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.c.Set(ctx, r.prefix+key, val, ttl).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "cache set")
	}
	return nil
}
