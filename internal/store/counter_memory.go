package store

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/workhive/workhive-api/internal/ratelimit"
)

const (
	// counterCacheSize bounds the number of tracked keys.
	counterCacheSize = 10_000
	// counterMaxTTL caps how long an abandoned entry may live, independent
	// of any policy window.
	counterMaxTTL = time.Hour
)

// MemoryCounterStore is an in-memory implementation of ratelimit.CounterStore
// backed by a bounded LRU cache with per-entry expiry. It is always available
// and serves as the fallback when the distributed store is down. Counters are
// lost on restart and not shared across instances.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *counterEntry]
}

type counterEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryCounterStore creates a new in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: expirable.NewLRU[string, *counterEntry](counterCacheSize, nil, counterMaxTTL),
	}
}

func (s *MemoryCounterStore) Increment(_ context.Context, key string, window time.Duration) (ratelimit.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, ok := s.entries.Get(key)
	if !ok || !now.Before(entry.resetAt) {
		// No live entry: start a fresh window.
		entry = &counterEntry{count: 1, resetAt: now.Add(window)}
		s.entries.Add(key, entry)
	} else {
		entry.count++
	}

	return ratelimit.Counter{Count: entry.count, ResetAt: entry.resetAt}, nil
}

func (s *MemoryCounterStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries.Peek(key); ok {
		entry.count = 0
	}

	return nil
}

func (s *MemoryCounterStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Purge()

	return nil
}

// Len reports how many keys are currently tracked.
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries.Len()
}

// Compile-time check.
var _ ratelimit.CounterStore = (*MemoryCounterStore)(nil)
