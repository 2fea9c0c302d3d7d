package streamcache

import "sync/atomic"

// CacheStats is a read-only snapshot of cache-wide counters. It never
// changes cache semantics; Stats() is purely additive over spec.md.
type CacheStats struct {
	Entries   int64
	Resident  int64
	Capacity  int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// statCounters holds the atomics backing CacheStats. Kept separate from
// CacheStats so the latter stays a plain value type safe to hand to
// callers.
type statCounters struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}
