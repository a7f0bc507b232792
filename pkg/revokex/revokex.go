// Package revokex tracks invalidated tokens until their natural expiry.
//
// An entry never needs to outlive the token it revokes: expired tokens are
// already rejected by expiry checking, so every entry carries the token's
// own expiry as its notAfter bound and becomes prunable past it. That keeps
// the store bounded by revocation rate times token lifetime, independent of
// total user count.
package revokex

import (
	"hash/fnv"
	"sync"
	"time"
)

// shardCount trades lock contention against footprint. Power of two so the
// shard index is a cheap mask.
const shardCount = 32

type shard struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token identity -> notAfter
}

// Store is an in-memory revocation list safe for unbounded concurrent
// readers and writers. Callers never coordinate access; each operation is
// atomic within its shard, so no reader observes a partial entry and a
// completed Revoke is visible to every subsequent IsRevoked.
type Store struct {
	shards [shardCount]*shard
	now    func() time.Time
}

// New returns an empty Store.
func New() *Store {
	s := &Store{now: time.Now}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]time.Time)}
	}
	return s
}

func (s *Store) shardFor(tokenID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tokenID))
	return s.shards[h.Sum32()&(shardCount-1)]
}

// Revoke records the token as invalidated until notAfter. It is a single
// atomic insert and idempotent: revoking an already-revoked token keeps the
// later notAfter so an entry is never shortened.
func (s *Store) Revoke(tokenID string, notAfter time.Time) {
	sh := s.shardFor(tokenID)
	sh.mu.Lock()
	if existing, ok := sh.entries[tokenID]; !ok || notAfter.After(existing) {
		sh.entries[tokenID] = notAfter
	}
	sh.mu.Unlock()
}

// IsRevoked reports whether the token is currently revoked. Entries past
// their notAfter count as not revoked even before a prune pass removes
// them; the token is already dead by expiry at that point.
func (s *Store) IsRevoked(tokenID string) bool {
	sh := s.shardFor(tokenID)
	sh.mu.RLock()
	notAfter, ok := sh.entries[tokenID]
	sh.mu.RUnlock()
	return ok && s.now().Before(notAfter)
}

// Prune removes every entry whose notAfter is at or before now and returns
// the number removed. It locks one shard at a time, never the whole store,
// so concurrent lookups are not starved. Prune is conservative: an entry
// whose token could still pass an expiry check is left in place.
func (s *Store) Prune(now time.Time) int {
	var removed int
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, notAfter := range sh.entries {
			if !notAfter.After(now) {
				delete(sh.entries, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the current number of entries across all shards.
func (s *Store) Len() int {
	var n int
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
