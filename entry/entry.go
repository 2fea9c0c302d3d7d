// Package entry holds the metadata record kept for every cached value:
// its key, size, creation time, and the mutable last-access bookkeeping
// that eviction policies read from.
package entry

import (
	"sync/atomic"
	"time"

	"github.com/objectfs/streamcache/errors"
)

// Entry is the metadata for one cached value, keyed by the caller's own
// key type K. Size, CreationTime and Key are immutable after construction;
// LastAccessed and AccessCount are mutated by Refresh.
type Entry[K comparable] struct {
	// Key is the opaque identifier the caller associated with the value.
	Key K

	// Size is the byte length of the stored content. Strictly positive and
	// never mutated after construction.
	Size int64

	// CreationTime is the wall-clock instant the entry was created.
	CreationTime time.Time

	lastAccessed atomic.Int64 // UnixNano, mutated by Refresh
	accessCount  atomic.Uint64
}

// New constructs an Entry for key/size. CreationTime and the initial
// LastAccessed are both set to the current instant.
func New[K comparable](key K, size int64) (*Entry[K], error) {
	if size <= 0 {
		return nil, errors.InvalidArgument("entry", "size must be > 0")
	}
	now := time.Now()
	e := &Entry[K]{
		Key:          key,
		Size:         size,
		CreationTime: now,
	}
	e.lastAccessed.Store(now.UnixNano())
	return e, nil
}

// LastAccessed returns the instant of the most recent Refresh, or the
// creation instant if the entry has never been refreshed.
func (e *Entry[K]) LastAccessed() time.Time {
	return time.Unix(0, e.lastAccessed.Load())
}

// AccessCount returns the number of times Refresh has been called.
func (e *Entry[K]) AccessCount() uint64 {
	return e.accessCount.Load()
}

// Refresh atomically increments the access count and advances
// LastAccessed to now. Safe for concurrent callers — reads turn into
// writes against the entry precisely so that LRU/LFU/MRU/MFU policies can
// observe them.
func (e *Entry[K]) Refresh() {
	e.accessCount.Add(1)
	e.lastAccessed.Store(time.Now().UnixNano())
}
