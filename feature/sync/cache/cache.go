// Package cache holds the short-TTL store of the most recent raw fetch
// result, used to avoid redundant partner API calls.
package cache

import (
	"sync"
	"time"

	"delivery-sync/feature/sync/tabular"
)

// DefaultTTL is the snapshot time-to-live when the caller passes zero.
const DefaultTTL = 5 * time.Minute

// Snapshot is one cached fetch result. The dataset mapping is stored as a
// whole and never mutated after Put, so concurrent readers can share it.
type Snapshot struct {
	// Datasets is the raw dataset mapping exactly as fetched.
	Datasets map[string]*tabular.Dataset

	// StoredAt is when the snapshot was written.
	StoredAt time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// Expired reports whether the snapshot has outlived its TTL.
func (s *Snapshot) Expired() bool {
	return time.Since(s.StoredAt) > s.TTL
}

// Age returns how long ago the snapshot was stored.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.StoredAt)
}

// Store keeps the most recent snapshot per partner key. Expiry is evaluated
// on read; an expired entry behaves as absent and stays in place until
// overwritten or explicitly invalidated.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Snapshot
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Snapshot),
	}
}

// Get returns the unexpired snapshot for the key, if any.
func (s *Store) Get(key string) (*Snapshot, bool) {
	s.mu.RLock()
	snap, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists || snap.Expired() {
		return nil, false
	}
	return snap, true
}

// Put replaces the snapshot for the key atomically (whole-mapping swap).
func (s *Store) Put(key string, datasets map[string]*tabular.Dataset, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	snap := &Snapshot{
		Datasets: datasets,
		StoredAt: time.Now(),
		TTL:      ttl,
	}

	s.mu.Lock()
	s.entries[key] = snap
	s.mu.Unlock()
}

// Invalidate removes the snapshot for the key.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
