package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val []byte
	exp time.Time
}

// Memory is an in process cache; expired entries are dropped on read or by Sweep
type Memory struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

// MemoryOption configures a Memory cache
type MemoryOption func(*Memory)

// WithClock swaps the clock, for tests
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory builds an empty cache
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{m: map[string]entry{}, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Get returns a copy of the stored value
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.m[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && !m.now().Before(e.exp) {
		m.mu.Lock()
		if cur, ok := m.m[key]; ok && cur.exp.Equal(e.exp) {
			delete(m.m, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), e.val...), true, nil
}

// Set stores a copy of val; ttl <= 0 keeps it until overwritten
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.exp = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.m[key] = e
	m.mu.Unlock()
	return nil
}

// Len counts entries, expired ones included until swept
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.m)
}

// Sweep drops expired entries and returns how many went
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.m {
		if !e.exp.IsZero() && !now.Before(e.exp) {
			delete(m.m, k)
			n++
		}
	}
	return n
}

// JanitorFloor is the interval used when Janitor is given a non positive one
const JanitorFloor = time.Minute

// Janitor sweeps every interval until ctx is done
func (m *Memory) Janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = JanitorFloor
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
