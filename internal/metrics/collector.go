// Package metrics exposes cache activity as Prometheus metrics. Collector
// registers itself against a caller-supplied registry rather than the
// global DefaultRegisterer, so a process embedding more than one cache
// instance does not collide on metric names.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config names the registry and the metric namespace/subsystem.
type Config struct {
	Registry  *prometheus.Registry
	Namespace string
	Subsystem string
}

// Collector tracks entry counts, resident bytes, and hit/miss/eviction
// counters for one cache instance.
type Collector struct {
	mu sync.Mutex

	entries   prometheus.Gauge
	resident  prometheus.Gauge
	hits      prometheus.Counter
	misses    prometheus.Counter
	added     prometheus.Counter
	updated   prometheus.Counter
	removed   prometheus.Counter
	evictions prometheus.Counter

	entryCount  int64
	residentSum int64
}

// New builds a Collector and registers its metrics against cfg.Registry.
// cfg.Registry must not be nil.
func New(cfg Config) (*Collector, error) {
	c := &Collector{
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "entries", Help: "Number of entries currently cached.",
		}),
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "resident_bytes", Help: "Total bytes of cached content currently resident.",
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "hits_total", Help: "Total Get calls that found their key.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "misses_total", Help: "Total Get calls that did not find their key.",
		}),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "entries_added_total", Help: "Total new keys stored.",
		}),
		updated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "entries_updated_total", Help: "Total existing keys overwritten.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "entries_removed_total", Help: "Total keys removed by eviction or Clear.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "eviction_passes_total", Help: "Total eviction passes that removed at least one entry.",
		}),
	}

	collectors := []prometheus.Collector{
		c.entries, c.resident, c.hits, c.misses, c.added, c.updated, c.removed, c.evictions,
	}
	for _, col := range collectors {
		if err := cfg.Registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordHit increments the hit counter.
func (c *Collector) RecordHit() { c.hits.Inc() }

// RecordMiss increments the miss counter.
func (c *Collector) RecordMiss() { c.misses.Inc() }

// RecordAdded accounts for a newly stored entry of the given size.
func (c *Collector) RecordAdded(size int64) {
	c.added.Inc()
	c.adjust(1, size)
}

// RecordUpdated accounts for an overwrite. The entry count is unchanged;
// the resident-bytes gauge is left alone too, since the observer callback
// this feeds from only carries the new size, not the old one — exact
// gauge tracking across updates would need both.
func (c *Collector) RecordUpdated(newSize int64) {
	c.updated.Inc()
}

// RecordRemoved accounts for a removed entry of the given size, whether by
// eviction or Clear.
func (c *Collector) RecordRemoved(size int64) {
	c.removed.Inc()
	c.adjust(-1, -size)
}

// RecordEvictionPass marks an eviction pass that removed at least one entry.
func (c *Collector) RecordEvictionPass() { c.evictions.Inc() }

func (c *Collector) adjust(entryDelta int, sizeDelta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entryCount += int64(entryDelta)
	c.residentSum += sizeDelta
	c.entries.Set(float64(c.entryCount))
	c.resident.Set(float64(c.residentSum))
}
