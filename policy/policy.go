// Package policy implements the cache's pluggable eviction policies.
//
// A Policy is a pure function from (the current entry set, a capacity) to
// the subset of entries that should be evicted. Policies never mutate
// entries, never touch the filesystem, and know nothing about the engine
// that calls them — they are given a snapshot and return a verdict.
//
// All eight variants (LRU, MRU, LFU, MFU, FIFO, LIFO, SlidingTTL, FixedTTL)
// share the same shape: sort entries by a policy-specific key, walk in
// descending desirability order accumulating size, and mark everything
// past the point where the running total would exceed capacity as a
// victim. selectVictims implements that shape once; each variant supplies
// only its sort order and (for the TTL variants) an unconditional
// expiry predicate.
package policy

import (
	"sort"

	"github.com/objectfs/streamcache/entry"
	"github.com/objectfs/streamcache/errors"
)

// Policy selects which entries to evict so that the remaining entries fit
// within capacity. Implementations must be safe for concurrent use; the
// engine may invoke Evict from the background eviction loop and from the
// synchronous post-write pass at the same time.
type Policy[K comparable] interface {
	Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error)
}

// more reports whether a is strictly more desirable to keep resident than
// b, i.e. a sorts before b in the "keep" order.
type more[K comparable] func(a, b *entry.Entry[K]) bool

// forced reports whether an entry must be evicted unconditionally,
// regardless of capacity (used by the TTL policies).
type forced[K comparable] func(e *entry.Entry[K]) bool

// selectVictims sorts entries by desirability (most desirable first, per
// keep), then walks the list accumulating size. Once the running total
// would exceed capacity, that entry and everything after it is a victim.
// An entry for which force reports true is always a victim, regardless of
// where it falls in the sort order or how much headroom remains. A single
// entry whose size exceeds capacity is always a victim.
func selectVictims[K comparable](entries []*entry.Entry[K], capacity int64, keep more[K], force forced[K]) ([]*entry.Entry[K], error) {
	if capacity <= 0 {
		return nil, errors.InvalidArgument("policy", "capacity must be > 0")
	}

	ordered := make([]*entry.Entry[K], len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return keep(ordered[i], ordered[j])
	})

	var victims []*entry.Entry[K]
	var resident int64
	overflowed := false
	for _, e := range ordered {
		switch {
		case force != nil && force(e):
			victims = append(victims, e)
		case e.Size > capacity:
			victims = append(victims, e)
		case overflowed || resident+e.Size > capacity:
			overflowed = true
			victims = append(victims, e)
		default:
			resident += e.Size
		}
	}
	return victims, nil
}
