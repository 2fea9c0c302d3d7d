package policy

import "github.com/objectfs/streamcache/entry"

// lifo evicts the newest-created entries first: oldest creation_time is
// most desirable to keep.
type lifo[K comparable] struct{}

// LIFO returns a last-in-first-out eviction policy.
func LIFO[K comparable]() Policy[K] { return lifo[K]{} }

func (lifo[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.CreationTime.Before(b.CreationTime)
	}, nil)
}
