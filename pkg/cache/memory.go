package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache backed by go-cache
type Memory struct {
	store *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	ttl = expiration(ttl)
	if ttl == 0 {
		return &Memory{store: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Memory{store: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, found := m.store.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.store.Set(key, value, gocache.DefaultExpiration)
	return nil
}

// Len returns the number of cached entries, expired ones included until the janitor runs
func (m *Memory) Len() int {
	return m.store.ItemCount()
}

func (m *Memory) Close() error {
	m.store.Flush()
	return nil
}
