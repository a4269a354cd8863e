package client

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"forum404/internal/model"
)

// userFetcher is the slice of Client the cache needs.
type userFetcher interface {
	GetUsers(ctx context.Context, ids []string) ([]model.User, error)
}

type userEntry struct {
	user      model.User
	fetchedAt time.Time
}

// UserCache memoizes profiles by id. Concurrent lookups for the same set of
// uncached ids collapse into a single batch request.
type UserCache struct {
	fetcher   userFetcher
	staleTime time.Duration

	mu      sync.RWMutex
	entries map[string]userEntry

	flight singleflight.Group
}

const DefaultUserStaleTime = 5 * time.Minute

func NewUserCache(fetcher userFetcher, staleTime time.Duration) *UserCache {
	if staleTime <= 0 {
		staleTime = DefaultUserStaleTime
	}
	return &UserCache{
		fetcher:   fetcher,
		staleTime: staleTime,
		entries:   make(map[string]userEntry),
	}
}

// GetUserFromCache answers synchronously from memory without fetching.
func (uc *UserCache) GetUserFromCache(id string) (model.User, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	e, ok := uc.entries[id]
	if !ok || time.Since(e.fetchedAt) > uc.staleTime {
		return model.User{}, false
	}
	return e.user, true
}

// FetchAndCacheUser resolves one profile, hitting the network only on miss.
func (uc *UserCache) FetchAndCacheUser(ctx context.Context, id string) (model.User, error) {
	if u, ok := uc.GetUserFromCache(id); ok {
		return u, nil
	}
	users, err := uc.GetUsers(ctx, []string{id})
	if err != nil {
		return model.User{}, err
	}
	if len(users) == 0 {
		return model.User{}, &APIError{Status: 404, Message: "user not found"}
	}
	return users[0], nil
}

// GetUsers resolves a set of profiles, fetching only the uncached ids. The
// in-flight key is the sorted uncached-id list, so overlapping concurrent
// calls share one request.
func (uc *UserCache) GetUsers(ctx context.Context, ids []string) ([]model.User, error) {
	var uncached []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := uc.GetUserFromCache(id); !ok {
			uncached = append(uncached, id)
		}
	}

	if len(uncached) > 0 {
		sort.Strings(uncached)
		key := strings.Join(uncached, ",")
		_, err, _ := uc.flight.Do(key, func() (any, error) {
			users, err := uc.fetcher.GetUsers(ctx, uncached)
			if err != nil {
				return nil, err
			}
			now := time.Now()
			uc.mu.Lock()
			for _, u := range users {
				uc.entries[u.ID] = userEntry{user: u, fetchedAt: now}
			}
			uc.mu.Unlock()
			return nil, nil
		})
		if err != nil {
			return nil, err
		}
	}

	out := make([]model.User, 0, len(ids))
	emitted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := emitted[id]; dup {
			continue
		}
		emitted[id] = struct{}{}
		uc.mu.RLock()
		e, ok := uc.entries[id]
		uc.mu.RUnlock()
		if ok {
			out = append(out, e.user)
		}
	}
	return out, nil
}

// Invalidate drops one profile, forcing a refetch on next lookup. Call it
// after mutating that profile.
func (uc *UserCache) Invalidate(id string) {
	uc.mu.Lock()
	delete(uc.entries, id)
	uc.mu.Unlock()
}

// Clear drops everything cached.
func (uc *UserCache) Clear() {
	uc.mu.Lock()
	uc.entries = make(map[string]userEntry)
	uc.mu.Unlock()
}
