package policy

import "github.com/objectfs/streamcache/entry"

// fifo evicts the oldest-created entries first: newest creation_time is
// most desirable to keep.
type fifo[K comparable] struct{}

// FIFO returns a first-in-first-out eviction policy.
func FIFO[K comparable]() Policy[K] { return fifo[K]{} }

func (fifo[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.CreationTime.After(b.CreationTime)
	}, nil)
}
