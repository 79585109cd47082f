// Package cache holds rendered pages for a short time so repeated requests
// skip the database.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores byte values under string keys with a per-entry lifetime.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type entry struct {
	value   []byte
	expires time.Time
}

// DefaultMaxEntries caps a Memory cache created by NewMemory.
const DefaultMaxEntries = 300

// Memory is a process-local Cache. Once it holds maxEntries, Set first drops
// expired entries and then, if still full, a third of the remaining ones.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

func NewMemory() *Memory {
	return NewMemoryWithLimit(DefaultMaxEntries)
}

// NewMemoryWithLimit returns a Memory holding at most limit entries; limit <= 0
// means DefaultMaxEntries.
func NewMemoryWithLimit(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &Memory{entries: make(map[string]entry), maxEntries: limit, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ttl <= 0 {
		delete(m.entries, key)
		return nil
	}
	now := m.now()
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.maxEntries {
		m.cull(now)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	m.entries[key] = entry{value: buf, expires: now.Add(ttl)}
	return nil
}

// cull frees room for a new entry. Callers hold mu.
func (m *Memory) cull(now time.Time) {
	for key, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, key)
		}
	}
	if len(m.entries) < m.maxEntries {
		return
	}
	drop := len(m.entries)/3 + 1
	for key := range m.entries {
		if drop == 0 {
			break
		}
		delete(m.entries, key)
		drop--
	}
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
