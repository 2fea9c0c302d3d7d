package policy

import "github.com/objectfs/streamcache/entry"

// lru evicts the least-recently-accessed entries first: newest
// last_accessed is most desirable to keep.
type lru[K comparable] struct{}

// LRU returns a least-recently-used eviction policy.
func LRU[K comparable]() Policy[K] { return lru[K]{} }

func (lru[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.LastAccessed().After(b.LastAccessed())
	}, nil)
}
