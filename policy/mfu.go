package policy

import "github.com/objectfs/streamcache/entry"

// mfu evicts the most-frequently-accessed entries first: the lowest
// access_count is most desirable to keep.
type mfu[K comparable] struct{}

// MFU returns a most-frequently-used eviction policy.
func MFU[K comparable]() Policy[K] { return mfu[K]{} }

func (mfu[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	return selectVictims(entries, capacity, func(a, b *entry.Entry[K]) bool {
		return a.AccessCount() < b.AccessCount()
	}, nil)
}
