package streamcache

import "github.com/objectfs/streamcache/internal/logging"

// LoggingObserver logs every cache event at DEBUG level through a
// *logging.Logger. It is typically composed with other observers via
// Multi.
type LoggingObserver[K comparable] struct {
	log *logging.Logger
}

// NewLoggingObserver wraps log as an Observer.
func NewLoggingObserver[K comparable](log *logging.Logger) *LoggingObserver[K] {
	return &LoggingObserver[K]{log: log}
}

func (o *LoggingObserver[K]) EntryAdded(e EntrySnapshot[K]) {
	o.log.Debug("entry added", map[string]interface{}{"key": e.Key, "size": e.Size})
}

func (o *LoggingObserver[K]) EntryUpdated(e EntrySnapshot[K]) {
	o.log.Debug("entry updated", map[string]interface{}{"key": e.Key, "size": e.Size})
}

func (o *LoggingObserver[K]) EntryRemoved(e EntrySnapshot[K]) {
	o.log.Debug("entry removed", map[string]interface{}{"key": e.Key, "size": e.Size})
}
