package cache

import (
	"context"
	"sync"
	"time"
	"trainhub-api/core/constants"
)

// MemoryCache is an in-process Cache used by tests and by local runs
// without redis. Expiry is not tracked.
type MemoryCache struct {
	mu        sync.Mutex
	blacklist map[string]bool
	attempts  map[string]int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{blacklist: map[string]bool{}, attempts: map[string]int{}}
}

func (m *MemoryCache) AddToTokenBlacklist(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[token] = true
	return nil
}

func (m *MemoryCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blacklist[token], nil
}

func (m *MemoryCache) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts[key] >= constants.MaxLoginAttempts, nil
}

func (m *MemoryCache) IncrementLoginAttempt(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[key]++
	return nil
}

func (m *MemoryCache) Expire(context.Context, string, time.Duration) error { return nil }

func (m *MemoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, key)
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }
func (m *MemoryCache) Close() error               { return nil }
