package cache

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/events"
)

// DefaultTTL is how long a result stays valid when no TTL is configured
const DefaultTTL = 24 * time.Hour

// MemoryStore is an in-process result cache with lazy TTL eviction
type MemoryStore struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	ttl     time.Duration
	clock   clock.Clock
	emitter events.Emitter
}

type memoryItem struct {
	value   entities.Result
	savedAt time.Time
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock replaces the wall clock, mainly for tests
func WithClock(c clock.Clock) MemoryOption {
	return func(ms *MemoryStore) { ms.clock = c }
}

// WithEmitter sets where cache events are sent
func WithEmitter(em events.Emitter) MemoryOption {
	return func(ms *MemoryStore) { ms.emitter = em }
}

// NewMemoryStore creates a new in-memory store. A non-positive ttl falls back
// to DefaultTTL.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &MemoryStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Set stores a copy of result under key, replacing any previous entry
func (ms *MemoryStore) Set(ctx context.Context, key string, result entities.Result) error {
	ms.mu.Lock()
	ms.items[key] = memoryItem{
		value:   result.Clone(),
		savedAt: ms.clock.Now(),
	}
	ms.mu.Unlock()

	events.Emit(ms.emitter, entities.Event{Type: entities.EventCacheSave, Key: key})
	return nil
}

// Get returns a copy of the result under key. Entries at or past their TTL
// are removed and reported as missing.
func (ms *MemoryStore) Get(ctx context.Context, key string) (entities.Result, bool, error) {
	ms.mu.Lock()
	item, exists := ms.items[key]
	var age time.Duration
	expired := false
	if exists {
		age = ms.clock.Since(item.savedAt)
		if age >= ms.ttl {
			delete(ms.items, key)
			expired = true
		}
	}
	ms.mu.Unlock()

	switch {
	case !exists:
		events.Emit(ms.emitter, entities.Event{Type: entities.EventCacheMiss, Key: key})
		return entities.Result{}, false, nil
	case expired:
		events.Emit(ms.emitter, entities.Event{Type: entities.EventCacheExpire, Key: key, Age: age})
		return entities.Result{}, false, nil
	}

	events.Emit(ms.emitter, entities.Event{Type: entities.EventCacheHit, Key: key, Age: age})
	return item.value.Clone(), true, nil
}

// Clear removes all entries
func (ms *MemoryStore) Clear(ctx context.Context) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	n := len(ms.items)
	ms.items = make(map[string]memoryItem)
	return n, nil
}

// Len returns the number of stored entries, expired ones included
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.items)
}
