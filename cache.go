// Package streamcache implements a disk-backed, content-addressed,
// streaming key/value cache with pluggable eviction. Values are opaque
// byte streams; the cache hashes and persists them under a bounded-size
// on-disk store and evicts entries according to a Policy chosen at
// construction.
//
// The cache treats its root directory as disposable: construction purges
// it, and the in-memory Index is the sole source of truth thereafter.
// There is no crash-consistent durability and no cross-process sharing.
package streamcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/objectfs/streamcache/entry"
	"github.com/objectfs/streamcache/errors"
	"github.com/objectfs/streamcache/internal/index"
	"github.com/objectfs/streamcache/internal/metrics"
	"github.com/objectfs/streamcache/internal/store"
	"github.com/objectfs/streamcache/policy"
)

// ingestBufSize is the streaming read/hash/write chunk size.
const ingestBufSize = 4096

// clearRetryDelay is how long Clear waits before retrying files that are
// still locked by a concurrent reader.
const clearRetryDelay = 100 * time.Millisecond

// Cache is a disk-backed, content-addressed cache keyed by K. All methods
// are safe for concurrent use by multiple goroutines.
type Cache[K comparable] struct {
	store    *store.Store
	index    *index.Index[K]
	evictor  policy.Policy[K]
	capacity int64
	observer Observer[K]
	metrics  *metrics.Collector

	stats statCounters

	clearMu sync.RWMutex // serializes Clear's delete-then-purge against ingest/eviction

	cancel context.CancelFunc
	group  *errgroup.Group
	closed sync.Once
}

// New constructs a Cache rooted at cfg.RootDir. The root is purged of all
// contents — construction treats it as reset-on-startup — and a background
// eviction loop starts immediately at cfg.PollInterval.
func New[K comparable](cfg Config[K]) (*Cache[K], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	st, err := store.New(cfg.RootDir)
	if err != nil {
		return nil, err
	}
	if err := store.PurgeAll(cfg.RootDir); err != nil {
		return nil, errors.RootMissing("cache", "failed to reset root directory: "+err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	c := &Cache[K]{
		store:    st,
		index:    index.New[K](cfg.KeyEqual),
		evictor:  cfg.Policy,
		capacity: cfg.Capacity,
		observer: cfg.observer(),
		metrics:  cfg.Metrics,
		cancel:   cancel,
		group:    group,
	}

	interval := cfg.pollInterval()
	group.Go(func() error {
		c.evictionLoop(gctx, interval)
		return nil
	})

	return c, nil
}

// Contains reports whether key is currently cached. It does not affect
// recency/frequency bookkeeping and does not count as a hit or miss.
func (c *Cache[K]) Contains(key K) bool {
	return c.index.Contains(key)
}

// Get returns a readable stream of the value stored for key. The caller
// must Close the returned stream. Get returns a NotFound error if key is
// not indexed, and a Corrupted error if the indexed content file is
// missing or no longer matches its recorded size.
func (c *Cache[K]) Get(key K) (io.ReadCloser, error) {
	return c.GetContext(context.Background(), key)
}

// GetContext is Get with cancellation; ctx is only checked before opening
// the content file, since the open itself is not a long-running operation.
func (c *Cache[K]) GetContext(ctx context.Context, key K) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec, ok := c.index.Get(key)
	if !ok {
		c.recordMiss()
		return nil, errors.NotFound("cache", "key is not present")
	}
	if !store.Exists(rec.Path, rec.Entry.Size) {
		c.recordMiss()
		return nil, errors.Corrupted("cache", "content file missing or size mismatch", nil)
	}
	f, err := os.Open(rec.Path)
	if err != nil {
		c.recordMiss()
		return nil, errors.Corrupted("cache", "content file could not be opened", err)
	}

	rec.Entry.Refresh()
	c.stats.hits.Add(1)
	if c.metrics != nil {
		c.metrics.RecordHit()
	}
	return f, nil
}

func (c *Cache[K]) recordMiss() {
	c.stats.misses.Add(1)
	if c.metrics != nil {
		c.metrics.RecordMiss()
	}
}

// TryGet is Get without an error for the ordinary miss case: it reports
// found=false instead of a NotFound error. It still returns an error for a
// Corrupted entry.
func (c *Cache[K]) TryGet(key K) (r io.ReadCloser, found bool, err error) {
	return c.TryGetContext(context.Background(), key)
}

// TryGetContext is TryGet with cancellation.
func (c *Cache[K]) TryGetContext(ctx context.Context, key K) (io.ReadCloser, bool, error) {
	r, err := c.GetContext(ctx, key)
	if err == nil {
		return r, true, nil
	}
	if code, ok := errors.CodeOf(err); ok && code == errors.CodeNotFound {
		return nil, false, nil
	}
	return nil, false, err
}

// Set reads r to completion, storing it under key. It returns an
// InvalidArgument error if the stream exceeds the cache's configured
// capacity; no partial content is left behind in that case.
func (c *Cache[K]) Set(key K, r io.Reader) error {
	return c.SetContext(context.Background(), key, r)
}

// SetContext is Set with cancellation: a canceled ctx aborts the ingest
// mid-stream, discarding the scratch file and leaving the index untouched.
func (c *Cache[K]) SetContext(ctx context.Context, key K, r io.Reader) error {
	out, err := c.ingest(ctx, key, r)
	if err != nil {
		return err
	}
	if out.overflow {
		return errors.InvalidArgument("cache", "stream exceeds configured capacity")
	}
	return nil
}

// TrySet is Set without an error for the overflow case: it reports
// accepted=false instead of an InvalidArgument error when the stream is
// larger than the cache can ever hold.
func (c *Cache[K]) TrySet(key K, r io.Reader) (accepted bool, err error) {
	return c.TrySetContext(context.Background(), key, r)
}

// TrySetContext is TrySet with cancellation.
func (c *Cache[K]) TrySetContext(ctx context.Context, key K, r io.Reader) (bool, error) {
	out, err := c.ingest(ctx, key, r)
	if err != nil {
		return false, err
	}
	return !out.overflow, nil
}

// ingestOutcome reports the result of a completed ingest attempt.
type ingestOutcome struct {
	overflow bool
	size     int64
}

// ingest streams r to a scratch file while incrementally hashing it,
// aborting if the running size ever exceeds capacity. On success it places
// the scratch file at its content-addressed path, upserts the index, emits
// the appropriate Added/Updated event, best-effort deletes any superseded
// file, and runs a synchronous eviction pass.
func (c *Cache[K]) ingest(ctx context.Context, key K, r io.Reader) (ingestOutcome, error) {
	c.clearMu.RLock()
	defer c.clearMu.RUnlock()

	scratch, scratchPath, err := c.store.NewScratch()
	if err != nil {
		return ingestOutcome{}, errors.InvalidArgument("cache", "failed to create scratch file: "+err.Error())
	}

	hasher := sha256.New()
	buf := make([]byte, ingestBufSize)
	var written int64

	abort := func(cause error) (ingestOutcome, error) {
		scratch.Close()
		c.store.DiscardScratch(scratchPath)
		return ingestOutcome{}, cause
	}

	for {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
			if _, werr := scratch.Write(buf[:n]); werr != nil {
				return abort(errors.InvalidArgument("cache", "failed writing scratch file: "+werr.Error()))
			}
			written += int64(n)
			if written > c.capacity {
				scratch.Close()
				c.store.DiscardScratch(scratchPath)
				return ingestOutcome{overflow: true, size: written}, nil
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return abort(errors.InvalidArgument("cache", "failed reading source stream: "+readErr.Error()))
		}
	}

	if err := scratch.Close(); err != nil {
		c.store.DiscardScratch(scratchPath)
		return ingestOutcome{}, errors.InvalidArgument("cache", "failed closing scratch file: "+err.Error())
	}

	digest := hex.EncodeToString(hasher.Sum(nil))
	path, err := c.store.Place(scratchPath, digest)
	if err != nil {
		c.store.DiscardScratch(scratchPath)
		return ingestOutcome{}, errors.InvalidArgument("cache", "failed placing content file: "+err.Error())
	}

	e, err := entry.New(key, written)
	if err != nil {
		return ingestOutcome{}, err
	}

	prior, existed := c.index.Put(key, index.Record[K]{Entry: e, Path: path})
	if existed {
		// Content is addressed by digest: re-Setting a key with identical
		// bytes yields prior.Path == path, and two distinct keys may share
		// a path (see index.Record). Only delete the superseded file when
		// it differs from the new one and no other key still references it.
		if prior.Path != path && c.index.CountByPath(prior.Path) == 0 {
			c.store.Delete(prior.Path)
		}
		c.observer.EntryUpdated(snapshotOf(e))
	} else {
		c.observer.EntryAdded(snapshotOf(e))
	}

	c.evictOnce()

	return ingestOutcome{size: written}, nil
}

// runEvictionPass is evictOnce for callers that do not already hold clearMu
// (the background eviction loop). ingest calls evictOnce directly since it
// already holds a read lock.
func (c *Cache[K]) runEvictionPass() {
	c.clearMu.RLock()
	defer c.clearMu.RUnlock()
	c.evictOnce()
}

// evictOnce asks the configured Policy which entries should go given the
// current snapshot and capacity, then removes each victim's file and index
// record, emitting EntryRemoved for each one actually removed. A victim
// whose file is still locked by a reader is left in the index for the next
// pass. Callers must hold clearMu for reading.
func (c *Cache[K]) evictOnce() {
	snapshot := c.index.Snapshot()
	victims, err := c.evictor.Evict(snapshot, c.capacity)
	if err != nil {
		return
	}

	removedAny := false
	for _, v := range victims {
		rec, ok := c.index.Get(v.Key)
		if !ok {
			continue
		}
		// A path shared with another still-live key must survive this
		// key's removal; only unlink it once this was the last reference.
		if c.index.CountByPath(rec.Path) <= 1 {
			if err := c.store.Delete(rec.Path); err != nil {
				continue
			}
		}
		if _, existed := c.index.Remove(v.Key); existed {
			c.stats.evictions.Add(1)
			c.observer.EntryRemoved(snapshotOf(v))
			removedAny = true
		}
	}
	if removedAny && c.metrics != nil {
		c.metrics.RecordEvictionPass()
	}
}

// evictionLoop runs runEvictionPass every interval until ctx is canceled.
func (c *Cache[K]) evictionLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runEvictionPass()
		}
	}
}

// Clear removes every entry from the cache. Entries whose files are still
// locked by a concurrent reader are retried until they free up, then the
// root directory is purged of any remaining debris.
func (c *Cache[K]) Clear() error {
	c.clearMu.Lock()
	defer c.clearMu.Unlock()

	for {
		snapshot := c.index.Snapshot()
		if len(snapshot) == 0 {
			break
		}

		anyLocked := false
		for _, e := range snapshot {
			rec, ok := c.index.Get(e.Key)
			if !ok {
				continue
			}
			if c.index.CountByPath(rec.Path) <= 1 {
				if err := c.store.Delete(rec.Path); err != nil {
					anyLocked = true
					continue
				}
			}
			if _, existed := c.index.Remove(e.Key); existed {
				c.observer.EntryRemoved(snapshotOf(e))
			}
		}
		if anyLocked {
			time.Sleep(clearRetryDelay)
		}
	}

	return store.PurgeAll(c.store.Root)
}

// Stats returns a snapshot of cache-wide counters.
func (c *Cache[K]) Stats() CacheStats {
	snapshot := c.index.Snapshot()
	var resident int64
	for _, e := range snapshot {
		resident += e.Size
	}
	return CacheStats{
		Entries:   int64(len(snapshot)),
		Resident:  resident,
		Capacity:  c.capacity,
		Hits:      c.stats.hits.Load(),
		Misses:    c.stats.misses.Load(),
		Evictions: c.stats.evictions.Load(),
	}
}

// Close stops the background eviction loop and clears the cache, deleting
// all content files and purging the root directory. It is safe to call
// more than once; only the first call has effect.
func (c *Cache[K]) Close() error {
	var err error
	c.closed.Do(func() {
		c.cancel()
		c.group.Wait()
		err = c.Clear()
	})
	return err
}
