package streamcache

import (
	"time"

	"github.com/objectfs/streamcache/entry"
)

// EntrySnapshot is the stable, immutable view of an Entry delivered to
// observers at the moment of an event. It is a copy: mutating it has no
// effect on the cache, and the key it names may no longer be present by
// the time an observer examines it.
type EntrySnapshot[K comparable] struct {
	Key          K
	Size         int64
	CreationTime time.Time
	LastAccessed time.Time
	AccessCount  uint64
}

func snapshotOf[K comparable](e *entry.Entry[K]) EntrySnapshot[K] {
	return EntrySnapshot[K]{
		Key:          e.Key,
		Size:         e.Size,
		CreationTime: e.CreationTime,
		LastAccessed: e.LastAccessed(),
		AccessCount:  e.AccessCount(),
	}
}

// Observer receives change notifications from a Cache. What an observer
// does with them — logging, metrics, a message bus — is outside this
// module's scope; the cache only guarantees delivery order (see the
// package doc for the ordering guarantee) and a stable snapshot per event.
type Observer[K comparable] interface {
	// EntryAdded fires when a key is stored for the first time.
	EntryAdded(EntrySnapshot[K])
	// EntryUpdated fires when a set overwrites an already-present key.
	EntryUpdated(EntrySnapshot[K])
	// EntryRemoved fires when a key is evicted, cleared, or disposed.
	EntryRemoved(EntrySnapshot[K])
}

// NoopObserver discards every event. It is the default when no Observer is
// configured.
type NoopObserver[K comparable] struct{}

func (NoopObserver[K]) EntryAdded(EntrySnapshot[K])   {}
func (NoopObserver[K]) EntryUpdated(EntrySnapshot[K]) {}
func (NoopObserver[K]) EntryRemoved(EntrySnapshot[K]) {}

// multiObserver fans a single event out to several observers, in order.
type multiObserver[K comparable] struct {
	observers []Observer[K]
}

// Multi composes several observers into one, so a cache can be wired to,
// say, a metrics collector and a logging sink at the same time without
// either one knowing about the other.
func Multi[K comparable](observers ...Observer[K]) Observer[K] {
	return &multiObserver[K]{observers: observers}
}

func (m *multiObserver[K]) EntryAdded(e EntrySnapshot[K]) {
	for _, o := range m.observers {
		o.EntryAdded(e)
	}
}

func (m *multiObserver[K]) EntryUpdated(e EntrySnapshot[K]) {
	for _, o := range m.observers {
		o.EntryUpdated(e)
	}
}

func (m *multiObserver[K]) EntryRemoved(e EntrySnapshot[K]) {
	for _, o := range m.observers {
		o.EntryRemoved(e)
	}
}
