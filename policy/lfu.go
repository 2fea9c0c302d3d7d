package policy

import "github.com/objectfs/streamcache/entry"

// lfu evicts the least-frequently-accessed entries first: the highest
// access_count is most desirable to keep.
type lfu[K comparable] struct{}

// LFU returns a least-frequently-used eviction policy.
func LFU[K comparable]() Policy[K] { return lfu[K]{} }

func (lfu[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.AccessCount() > b.AccessCount()
	}, nil)
}
