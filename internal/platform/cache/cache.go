// Package cache is a byte oriented TTL cache with memory and redis backends
package cache

import (
	"context"
	"time"
)

// Cache is what the read-through layer needs; a miss is (nil, false, nil)
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Backend names accepted by GOV_CACHE_BACKEND
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Nop never stores anything
type Nop struct{}

// Get always misses
func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
