package policy

import (
	"testing"
	"time"

	"github.com/objectfs/streamcache/entry"
)

func mustEntry(t *testing.T, key string, size int64) *entry.Entry[string] {
	t.Helper()
	e, err := entry.New(key, size)
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}
	return e
}

func TestLFUVictimSelection(t *testing.T) {
	// Three entries, sizes 5 each, access counts 1, 5, 3; capacity 12 keeps
	// two of the three (10 bytes) and evicts the least-used one.
	e1 := mustEntry(t, "a", 5)
	e2 := mustEntry(t, "b", 5)
	e3 := mustEntry(t, "c", 5)
	e1.Refresh()
	for i := 0; i < 5; i++ {
		e2.Refresh()
	}
	for i := 0; i < 3; i++ {
		e3.Refresh()
	}

	victims, err := LFU[string]().Evict([]*entry.Entry[string]{e1, e2, e3}, 12)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e1 {
		t.Fatalf("expected e1 (count 1) as sole victim, got %v", victims)
	}
}

func TestFIFOVictimSelection(t *testing.T) {
	base := time.Now()
	e1 := mustEntry(t, "a", 5)
	e1.CreationTime = base
	e2 := mustEntry(t, "b", 5)
	e2.CreationTime = base.Add(24 * time.Hour)
	e3 := mustEntry(t, "c", 5)
	e3.CreationTime = base.Add(48 * time.Hour)

	victims, err := FIFO[string]().Evict([]*entry.Entry[string]{e1, e2, e3}, 12)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e1 {
		t.Fatalf("expected oldest entry as sole victim, got %v", victims)
	}
}

func TestLIFOVictimSelection(t *testing.T) {
	base := time.Now()
	e1 := mustEntry(t, "a", 5)
	e1.CreationTime = base
	e2 := mustEntry(t, "b", 5)
	e2.CreationTime = base.Add(24 * time.Hour)
	e3 := mustEntry(t, "c", 5)
	e3.CreationTime = base.Add(48 * time.Hour)

	victims, err := LIFO[string]().Evict([]*entry.Entry[string]{e1, e2, e3}, 12)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e3 {
		t.Fatalf("expected newest entry as sole victim, got %v", victims)
	}
}

func TestMFUVictimSelection(t *testing.T) {
	e1 := mustEntry(t, "a", 5)
	e2 := mustEntry(t, "b", 5)
	e3 := mustEntry(t, "c", 5)
	e1.Refresh()
	for i := 0; i < 5; i++ {
		e2.Refresh()
	}
	for i := 0; i < 3; i++ {
		e3.Refresh()
	}

	victims, err := MFU[string]().Evict([]*entry.Entry[string]{e1, e2, e3}, 12)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if len(victims) != 1 || victims[0] != e2 {
		t.Fatalf("expected the most-used entry (count 5) as sole victim, got %v", victims)
	}
}

func TestOversizedEntryAlwaysVictim(t *testing.T) {
	big := mustEntry(t, "big", 100)
	small := mustEntry(t, "small", 5)

	victims, err := LRU[string]().Evict([]*entry.Entry[string]{big, small}, 20)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	found := false
	for _, v := range victims {
		if v == big {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the oversized entry to always be a victim")
	}
}

func TestNonPositiveCapacityRejected(t *testing.T) {
	e := mustEntry(t, "a", 5)
	if _, err := LRU[string]().Evict([]*entry.Entry[string]{e}, 0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := LRU[string]().Evict([]*entry.Entry[string]{e}, -1); err == nil {
		t.Fatal("expected error for negative capacity")
	}
}
