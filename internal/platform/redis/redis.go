// Package redis wraps go-redis with env driven options and a health probe
package redis

import (
	"context"
	"time"

	"engagegov/internal/platform/config"
	perr "engagegov/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Options are connection overrides applied on top of the URL
type Options struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv reads REDIS_URL, REDIS_POOL_SIZE and friends
func FromEnv(cfg config.Conf) Options {
	c := cfg.Prefix("REDIS_")
	return Options{
		URL:          c.MayString("URL", ""),
		PoolSize:     c.MayInt("POOL_SIZE", 10),
		MinIdleConns: c.MayInt("MIN_IDLE_CONNS", 0),
		DialTimeout:  c.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  c.MayDuration("READ_TIMEOUT", 3*time.Second),
		WriteTimeout: c.MayDuration("WRITE_TIMEOUT", 3*time.Second),
	}
}

// Client is a go-redis client that knows how to report health
type Client struct {
	*redis.Client
}

// New dials and pings; an empty URL returns nil, nil so callers can treat redis as optional
func New(ctx context.Context, o Options) (*Client, error) {
	if o.URL == "" {
		return nil, nil
	}
	ro, err := redis.ParseURL(o.URL)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse redis url")
	}
	if o.PoolSize > 0 {
		ro.PoolSize = o.PoolSize
	}
	ro.MinIdleConns = o.MinIdleConns
	if o.DialTimeout > 0 {
		ro.DialTimeout = o.DialTimeout
	}
	if o.ReadTimeout > 0 {
		ro.ReadTimeout = o.ReadTimeout
	}
	if o.WriteTimeout > 0 {
		ro.WriteTimeout = o.WriteTimeout
	}

	c := redis.NewClient(ro)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis ping")
	}
	return &Client{Client: c}, nil
}

// Health pings the server
func (c *Client) Health(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return perr.Unavailablef("redis not configured")
	}
	return c.Ping(ctx).Err()
}
