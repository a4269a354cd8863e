package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type queryEntry struct {
	value     any
	fetchedAt time.Time
}

// QueryCache caches arbitrary query results under string keys with a
// stale-time policy. Fresh entries are served from memory; concurrent misses
// for the same key collapse into one fetch.
type QueryCache struct {
	staleTime time.Duration

	mu      sync.RWMutex
	entries map[string]queryEntry

	flight singleflight.Group
}

const DefaultQueryStaleTime = 30 * time.Second

func NewQueryCache(staleTime time.Duration) *QueryCache {
	if staleTime <= 0 {
		staleTime = DefaultQueryStaleTime
	}
	return &QueryCache{
		staleTime: staleTime,
		entries:   make(map[string]queryEntry),
	}
}

// QueryKey builds a cache key from an operation name and its parameters.
func QueryKey(op string, params ...string) string {
	if len(params) == 0 {
		return op
	}
	return op + "|" + strings.Join(params, "|")
}

// Get returns the cached value when fresh, otherwise runs fetch and caches
// the result. A fetch error leaves any existing entry untouched.
func (qc *QueryCache) Get(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	qc.mu.RLock()
	e, ok := qc.entries[key]
	qc.mu.RUnlock()
	if ok && time.Since(e.fetchedAt) <= qc.staleTime {
		return e.value, nil
	}

	v, err, _ := qc.flight.Do(key, func() (any, error) {
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		qc.Set(key, val)
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set writes a value directly, used for optimistic updates.
func (qc *QueryCache) Set(key string, value any) {
	qc.mu.Lock()
	qc.entries[key] = queryEntry{value: value, fetchedAt: time.Now()}
	qc.mu.Unlock()
}

// Peek returns the entry regardless of freshness.
func (qc *QueryCache) Peek(key string) (any, bool) {
	qc.mu.RLock()
	defer qc.mu.RUnlock()
	e, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops exact keys.
func (qc *QueryCache) Invalidate(keys ...string) {
	qc.mu.Lock()
	for _, k := range keys {
		delete(qc.entries, k)
	}
	qc.mu.Unlock()
}

// InvalidatePrefix drops every key for the given operation.
func (qc *QueryCache) InvalidatePrefix(prefix string) {
	qc.mu.Lock()
	for k := range qc.entries {
		if k == prefix || strings.HasPrefix(k, prefix+"|") {
			delete(qc.entries, k)
		}
	}
	qc.mu.Unlock()
}
