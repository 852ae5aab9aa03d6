// Package cache provides the key/value store used to persist serialized
// extraction results with a TTL. Two backends are available: a bounded
// in-memory LRU and a SQLite-backed store.
//
// Reads and writes are independent key-addressed operations with no locking
// across callers: concurrent writers race last-writer-wins, and staleness is
// bounded only by the TTL.
package cache

import "time"

// Store is the cache contract consumed by the orchestrator. Get reports a
// miss (false) for absent or expired keys; SetEx stores a value that expires
// after the given TTL.
type Store interface {
	Connect() error
	Disconnect() error
	Get(key string) (value []byte, ok bool, err error)
	SetEx(key string, ttl time.Duration, value []byte) error
}
