package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxEntries bounds the in-memory cache when no size is configured.
const DefaultMaxEntries = 256

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a bounded in-memory Store. Eviction is LRU; expiry is checked on
// read, so an expired entry occupies its slot until evicted or re-read.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemory creates an in-memory store holding at most maxEntries values.
// maxEntries <= 0 falls back to DefaultMaxEntries.
func NewMemory(maxEntries int) (*Memory, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	entries, err := lru.New[string, memoryEntry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("cache: create lru: %w", err)
	}
	return &Memory{entries: entries, now: time.Now}, nil
}

// Connect is a no-op for the in-memory store.
func (m *Memory) Connect() error { return nil }

// Disconnect purges all entries.
func (m *Memory) Disconnect() error {
	m.entries.Purge()
	return nil
}

// Get returns the value for key, treating expired entries as misses.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if m.now().After(entry.expiresAt) {
		m.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// SetEx stores value under key with the given TTL, replacing any previous
// entry (last writer wins).
func (m *Memory) SetEx(key string, ttl time.Duration, value []byte) error {
	m.entries.Add(key, memoryEntry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	})
	return nil
}

// Len returns the number of resident entries, including not-yet-evicted
// expired ones.
func (m *Memory) Len() int {
	return m.entries.Len()
}
