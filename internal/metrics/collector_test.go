package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorTracksAddAndRemove(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(Config{Registry: reg, Namespace: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.RecordAdded(10)
	c.RecordAdded(20)

	if got := testutil.ToFloat64(c.entries); got != 2 {
		t.Errorf("entries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.resident); got != 30 {
		t.Errorf("resident = %v, want 30", got)
	}

	c.RecordRemoved(10)

	if got := testutil.ToFloat64(c.entries); got != 1 {
		t.Errorf("entries after remove = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.resident); got != 20 {
		t.Errorf("resident after remove = %v, want 20", got)
	}
}

func TestCollectorHitsAndMisses(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(Config{Registry: reg, Namespace: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.RecordHit()
	c.RecordHit()
	c.RecordMiss()

	if got := testutil.ToFloat64(c.hits); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.misses); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestCollectorRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(Config{Registry: reg, Namespace: "dup"}); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(Config{Registry: reg, Namespace: "dup"}); err == nil {
		t.Fatal("expected error registering the same metric names twice")
	}
}
