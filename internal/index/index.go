// Package index implements the cache's authoritative in-memory map from
// user keys to (Entry, content path) pairs. The on-disk layout is never
// scanned at query time — every presence check and path lookup goes
// through this package.
package index

import (
	"sync"

	"github.com/objectfs/streamcache/entry"
)

// Record pairs an Entry with the content-addressed path its bytes live at.
type Record[K comparable] struct {
	Entry *entry.Entry[K]
	Path  string
}

// Equal is an optional equivalence relation over keys, overriding Go's
// built-in comparison. When nil (the default), Index uses K's natural
// equality and a plain map for O(1) operations. When set, Index falls back
// to a linear scan using Equal so that, e.g., two distinct key values an
// application considers interchangeable resolve to the same cache entry.
type Equal[K comparable] func(a, b K) bool

// Index is the concurrent key -> (Entry, path) map. Both facets of a key
// are mutated as a single logical unit: an external observer via
// Contains/Get never sees an Entry without its path or vice versa.
type Index[K comparable] struct {
	mu    sync.RWMutex
	byKey map[K]Record[K]
	equal Equal[K]
}

// New constructs an empty Index. A nil equal uses natural key equality.
func New[K comparable](equal Equal[K]) *Index[K] {
	return &Index[K]{
		byKey: make(map[K]Record[K]),
		equal: equal,
	}
}

// Contains reports whether key is currently indexed.
func (ix *Index[K]) Contains(key K) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.find(key)
	return ok
}

// Get returns the Record for key, if present.
func (ix *Index[K]) Get(key K) (Record[K], bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.find(key)
}

// Put upserts key -> rec and returns the prior record, if any, so the
// caller can tell an add from an update and clean up a superseded file.
func (ix *Index[K]) Put(key K, rec Record[K]) (prior Record[K], existed bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	existingKey, prior, existed := ix.findKey(key)
	if existed {
		delete(ix.byKey, existingKey)
	}
	ix.byKey[key] = rec
	return prior, existed
}

// Remove deletes key from the index and returns its prior record, if any.
func (ix *Index[K]) Remove(key K) (Record[K], bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	existingKey, rec, existed := ix.findKey(key)
	if existed {
		delete(ix.byKey, existingKey)
	}
	return rec, existed
}

// Snapshot returns a copy of all currently-indexed entries, suitable as
// Policy input.
func (ix *Index[K]) Snapshot() []*entry.Entry[K] {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]*entry.Entry[K], 0, len(ix.byKey))
	for _, rec := range ix.byKey {
		out = append(out, rec.Entry)
	}
	return out
}

// CountByPath reports how many indexed records point at path. Content paths
// are content-addressed, so two keys with identical bytes share one: the
// engine uses this to tell whether deleting a content file would strand a
// still-live key.
func (ix *Index[K]) CountByPath(path string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n := 0
	for _, rec := range ix.byKey {
		if rec.Path == path {
			n++
		}
	}
	return n
}

// Clear empties the index.
func (ix *Index[K]) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.byKey = make(map[K]Record[K])
}

// find looks up key under the read lock; callers must hold ix.mu.
func (ix *Index[K]) find(key K) (Record[K], bool) {
	if ix.equal == nil {
		rec, ok := ix.byKey[key]
		return rec, ok
	}
	for k, rec := range ix.byKey {
		if ix.equal(k, key) {
			return rec, true
		}
	}
	return Record[K]{}, false
}

// findKey is like find but also returns the exact stored key, so mutating
// callers know what to delete under a custom Equal.
func (ix *Index[K]) findKey(key K) (K, Record[K], bool) {
	if ix.equal == nil {
		rec, ok := ix.byKey[key]
		return key, rec, ok
	}
	for k, rec := range ix.byKey {
		if ix.equal(k, key) {
			return k, rec, true
		}
	}
	var zero K
	return zero, Record[K]{}, false
}
