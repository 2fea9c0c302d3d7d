package policy

import (
	"time"

	"github.com/objectfs/streamcache/entry"
	"github.com/objectfs/streamcache/errors"
)

// slidingTTL keeps the newest-last_accessed entries, as LRU does, but any
// entry inactive for longer than τ is evicted unconditionally, regardless
// of whether capacity is exceeded.
type slidingTTL[K comparable] struct {
	ttl time.Duration
	now func() time.Time
}

// SlidingTTL returns a policy that evicts entries that have not been
// accessed within ttl, falling back to LRU ordering among the rest. ttl
// must be strictly positive.
func SlidingTTL[K comparable](ttl time.Duration) (Policy[K], error) {
	if ttl <= 0 {
		return nil, errors.InvalidArgument("policy", "ttl must be > 0")
	}
	return &slidingTTL[K]{ttl: ttl, now: time.Now}, nil
}

func (p *slidingTTL[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	now := p.now()
	return selectVictims(entries, capacity,
		func(a, b *entry.Entry[K]) bool { return a.LastAccessed().After(b.LastAccessed()) },
		func(e *entry.Entry[K]) bool { return now.Sub(e.LastAccessed()) > p.ttl },
	)
}

// fixedTTL keeps the newest-created entries, as FIFO does, but any entry
// that has resided longer than τ is evicted unconditionally, regardless of
// whether capacity is exceeded.
type fixedTTL[K comparable] struct {
	ttl time.Duration
	now func() time.Time
}

// FixedTTL returns a policy that evicts entries older than ttl, falling
// back to FIFO ordering among the rest. ttl must be strictly positive.
func FixedTTL[K comparable](ttl time.Duration) (Policy[K], error) {
	if ttl <= 0 {
		return nil, errors.InvalidArgument("policy", "ttl must be > 0")
	}
	return &fixedTTL[K]{ttl: ttl, now: time.Now}, nil
}

func (p *fixedTTL[K]) Evict(entries []*entry.Entry[K], capacity int64) ([]*entry.Entry[K], error) {
	now := p.now()
	return selectVictims(entries, capacity,
		func(a, b *entry.Entry[K]) bool { return a.CreationTime.After(b.CreationTime) },
		func(e *entry.Entry[K]) bool { return now.Sub(e.CreationTime) > p.ttl },
	)
}
