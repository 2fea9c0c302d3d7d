package policy

import (
	"testing"
	"time"

	"github.com/objectfs/streamcache/entry"
)

func TestTTLConstructorsRejectNonPositive(t *testing.T) {
	if _, err := SlidingTTL[string](0); err == nil {
		t.Fatal("expected error for zero sliding ttl")
	}
	if _, err := SlidingTTL[string](-time.Second); err == nil {
		t.Fatal("expected error for negative sliding ttl")
	}
	if _, err := FixedTTL[string](0); err == nil {
		t.Fatal("expected error for zero fixed ttl")
	}
}

func TestSlidingTTLExpiresRegardlessOfCapacity(t *testing.T) {
	e := mustEntry(t, "asd", 4)

	p, err := SlidingTTL[string](time.Millisecond)
	if err != nil {
		t.Fatalf("SlidingTTL: %v", err)
	}
	internal := p.(*slidingTTL[string])
	internal.now = func() time.Time { return e.LastAccessed().Add(100 * time.Millisecond) }

	victims, err := p.Evict([]*entry.Entry[string]{e}, 1<<20)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e {
		t.Fatalf("expected the stale entry to be expired, got %v", victims)
	}
}

func TestFixedTTLExpiresRegardlessOfCapacity(t *testing.T) {
	e := mustEntry(t, "asd", 4)

	p, err := FixedTTL[string](time.Millisecond)
	if err != nil {
		t.Fatalf("FixedTTL: %v", err)
	}
	internal := p.(*fixedTTL[string])
	internal.now = func() time.Time { return e.CreationTime.Add(100 * time.Millisecond) }

	victims, err := p.Evict([]*entry.Entry[string]{e}, 1<<20)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e {
		t.Fatalf("expected the aged entry to be expired, got %v", victims)
	}
}

func TestFixedTTLKeepsFreshEntries(t *testing.T) {
	e := mustEntry(t, "asd", 4)

	p, err := FixedTTL[string](time.Hour)
	if err != nil {
		t.Fatalf("FixedTTL: %v", err)
	}

	victims, err := p.Evict([]*entry.Entry[string]{e}, 1<<20)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 0 {
		t.Fatalf("expected no victims, got %v", victims)
	}
}
