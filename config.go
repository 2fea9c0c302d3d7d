package streamcache

import (
	"time"

	"github.com/objectfs/streamcache/errors"
	"github.com/objectfs/streamcache/internal/index"
	"github.com/objectfs/streamcache/internal/metrics"
	"github.com/objectfs/streamcache/policy"
)

// defaultPollInterval is the background eviction loop's period when Config
// does not set one.
const defaultPollInterval = time.Minute

// Config configures a Cache at construction. RootDir, Policy, and Capacity
// are required; PollInterval and KeyEqual have defaults.
type Config[K comparable] struct {
	// RootDir is an existing, writable directory the cache treats as
	// disposable: construction purges it of all subdirectories and files.
	// Directory creation is the caller's responsibility.
	RootDir string

	// Policy selects which entries to evict when over capacity. Required.
	Policy policy.Policy[K]

	// Capacity is the maximum total size, in bytes, of all cached content.
	// Must be strictly positive.
	Capacity int64

	// PollInterval is the period of the background eviction loop. Must be
	// strictly positive if set; defaults to one minute.
	PollInterval time.Duration

	// KeyEqual overrides the natural equality used to compare keys.
	// Optional; nil uses K's built-in equality.
	KeyEqual index.Equal[K]

	// Observer receives EntryAdded/EntryUpdated/EntryRemoved notifications.
	// Optional; defaults to NoopObserver.
	Observer Observer[K]

	// Metrics, if set, receives hit/miss counts and eviction-pass counts
	// directly from the engine, in addition to whatever Observer reports.
	Metrics *metrics.Collector
}

func (c Config[K]) validate() error {
	if c.Policy == nil {
		return errors.InvalidArgument("cache", "Policy is required")
	}
	if c.Capacity <= 0 {
		return errors.InvalidArgument("cache", "Capacity must be > 0")
	}
	if c.PollInterval < 0 {
		return errors.InvalidArgument("cache", "PollInterval must be > 0")
	}
	return nil
}

func (c Config[K]) pollInterval() time.Duration {
	if c.PollInterval == 0 {
		return defaultPollInterval
	}
	return c.PollInterval
}

func (c Config[K]) observer() Observer[K] {
	if c.Observer == nil {
		return NoopObserver[K]{}
	}
	return c.Observer
}
