package policy

import "github.com/objectfs/streamcache/entry"

// mru evicts the most-recently-accessed entries first: oldest
// last_accessed is most desirable to keep.
type mru[K comparable] struct{}

// MRU returns a most-recently-used eviction policy.
func MRU[K comparable]() Policy[K] { return mru[K]{} }

func (mru[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.LastAccessed().Before(b.LastAccessed())
	}, nil)
}
