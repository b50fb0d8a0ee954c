package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// MemoryCache is an in-process ResultCache with per-entry TTL. It backs
// single-instance deployments and tests; clustered deployments use the
// redis implementation so cache hits survive across instances.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type memoryEntry struct {
	result    domain.RecommendationResult
	expiresAt time.Time
}

// NewMemoryCache creates an in-process cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for key if present and unexpired. Expired
// entries are dropped lazily on access.
func (m *MemoryCache) Get(_ context.Context, key string) (*domain.RecommendationResult, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().After(entry.expiresAt) {
		if ok {
			m.mu.Lock()
			delete(m.entries, key)
			m.mu.Unlock()
		}
		m.misses.Add(1)
		return nil, false, nil
	}

	m.hits.Add(1)
	result := entry.result
	return &result, true, nil
}

// Set stores a copy of the result under key.
func (m *MemoryCache) Set(_ context.Context, key string, result *domain.RecommendationResult) error {
	if result == nil {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{result: *result, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// Stats returns the hit and miss counters.
func (m *MemoryCache) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}
