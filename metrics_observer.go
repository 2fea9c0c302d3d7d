package streamcache

import "github.com/objectfs/streamcache/internal/metrics"

// MetricsObserver mirrors cache events into a *metrics.Collector. It is
// typically composed with other observers via Multi.
type MetricsObserver[K comparable] struct {
	collector *metrics.Collector
}

// NewMetricsObserver wraps collector as an Observer.
func NewMetricsObserver[K comparable](collector *metrics.Collector) *MetricsObserver[K] {
	return &MetricsObserver[K]{collector: collector}
}

func (o *MetricsObserver[K]) EntryAdded(e EntrySnapshot[K]) {
	o.collector.RecordAdded(e.Size)
}

func (o *MetricsObserver[K]) EntryUpdated(e EntrySnapshot[K]) {
	o.collector.RecordUpdated(e.Size)
}

func (o *MetricsObserver[K]) EntryRemoved(e EntrySnapshot[K]) {
	o.collector.RecordRemoved(e.Size)
}
