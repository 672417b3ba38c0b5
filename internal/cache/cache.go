// Package cache provides an in-memory TTL cache for computed reports.
//
// Concurrent requests for the same key are coalesced with singleflight so a
// cold key triggers exactly one computation; contention is per key, never
// cache-wide. Entries are immutable once stored; a stale entry is replaced,
// not edited.
package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Info describes how a value was obtained.
type Info struct {
	Cached     bool
	ComputedAt time.Time
}

// Options configures a Cache.
type Options struct {
	// TTL is how long an entry stays valid. Zero means no expiry.
	TTL time.Duration
	// MaxEntries bounds the cache size; least recently used entries are
	// evicted beyond it.
	MaxEntries int
	// ComputeTimeout bounds a single computation.
	ComputeTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		TTL:            5 * time.Minute,
		MaxEntries:     1024,
		ComputeTimeout: 10 * time.Second,
	}
}

type entry[V any] struct {
	key        string
	owner      string
	value      V
	computedAt time.Time
	lruElement *list.Element
}

type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	lru     *list.List
	// gens tracks an invalidation generation per owner. A computation
	// captures the generation before it starts; its result is stored only
	// if the generation has not advanced, so an invalidation signal that
	// arrives mid-computation is never lost.
	gens   map[string]uint64
	flight singleflight.Group
	opts   Options

	hits      int64
	misses    int64
	evictions int64
	computes  int64
}

func New[V any](opts Options) *Cache[V] {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultOptions().MaxEntries
	}

	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = DefaultOptions().ComputeTimeout
	}

	return &Cache[V]{
		entries: make(map[string]*entry[V]),
		lru:     list.New(),
		gens:    make(map[string]uint64),
		opts:    opts,
	}
}

// Key derives a deterministic cache key from the parts that affect a
// report's content. Two requests with identical parts always share a key.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:16])
}

// Get returns the cached value for key if present and fresh.
func (c *Cache[V]) Get(key string) (V, Info, bool) {
	v, info, ok := c.lookup(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}

	return v, info, ok
}

// lookup is Get without the stat counters, for internal re-checks.
func (c *Cache[V]) lookup(key string) (V, Info, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]

	if !ok || c.expired(e) {
		var staleAt time.Time
		if ok {
			staleAt = e.computedAt
		}

		c.mu.RUnlock()

		if ok {
			c.removeStale(key, staleAt)
		}

		return zero, Info{}, false
	}

	value, computedAt := e.value, e.computedAt
	c.mu.RUnlock()

	c.touch(e)

	return value, Info{Cached: true, ComputedAt: computedAt}, true
}

type flightResult[V any] struct {
	value V
	info  Info
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Concurrent callers for the same key share one computation and
// observe the same result. The computation is detached from the caller's
// cancellation (other waiters may depend on it) but bounded by
// ComputeTimeout. A result computed from data read before an invalidation
// signal for its owner is returned to the waiting callers but never stored.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key, owner string, compute func(ctx context.Context) (V, error)) (V, Info, error) {
	if v, info, ok := c.Get(key); ok {
		return v, info, nil
	}

	res, err, _ := c.flight.Do(key, func() (any, error) {
		// Another coalesced caller may have stored the value already.
		if v, info, ok := c.lookup(key); ok {
			return flightResult[V]{value: v, info: info}, nil
		}

		gen := c.generation(owner)

		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.ComputeTimeout)
		defer cancel()

		v, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}

		computedAt := time.Now().UTC()
		c.put(key, owner, gen, v, computedAt)
		atomic.AddInt64(&c.computes, 1)

		return flightResult[V]{value: v, info: Info{ComputedAt: computedAt}}, nil
	})
	if err != nil {
		var zero V
		return zero, Info{}, err
	}

	fr := res.(flightResult[V])

	return fr.value, fr.info, nil
}

// InvalidateOwner drops every entry stored for owner and advances the
// owner's generation so that in-flight computations started before the
// signal discard their result instead of storing it.
func (c *Cache[V]) InvalidateOwner(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[owner]++

	for key, e := range c.entries {
		if e.owner != owner {
			continue
		}

		if e.lruElement != nil {
			c.lru.Remove(e.lruElement)
		}

		delete(c.entries, key)
	}
}

// Clear drops all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[V])
	c.lru.Init()
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats reports cache counters since creation.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
	Computes  int64
}

func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Entries:   len(c.entries),
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Computes:  atomic.LoadInt64(&c.computes),
	}
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	if c.opts.TTL == 0 {
		return false
	}

	return time.Since(e.computedAt) > c.opts.TTL
}

// generation returns the owner's current invalidation generation.
func (c *Cache[V]) generation(owner string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gens[owner]
}

// put stores the value unless the owner was invalidated after gen was
// captured, in which case the stale result is dropped.
func (c *Cache[V]) put(key, owner string, gen uint64, value V, computedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[owner] != gen {
		return
	}

	if old, ok := c.entries[key]; ok {
		if old.lruElement != nil {
			c.lru.Remove(old.lruElement)
		}

		delete(c.entries, key)
	}

	for len(c.entries) >= c.opts.MaxEntries {
		back := c.lru.Back()
		if back == nil {
			break
		}

		evicted := back.Value.(string)
		c.lru.Remove(back)
		delete(c.entries, evicted)
		atomic.AddInt64(&c.evictions, 1)
	}

	e := &entry[V]{
		key:        key,
		owner:      owner,
		value:      value,
		computedAt: computedAt,
	}
	e.lruElement = c.lru.PushFront(key)
	c.entries[key] = e
}

func (c *Cache[V]) touch(e *entry[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.lruElement != nil {
		c.lru.MoveToFront(e.lruElement)
	}
}

// removeStale drops the entry for key only if it still holds the value
// observed at computedAt. A fresh entry stored concurrently by another
// caller is left alone.
func (c *Cache[V]) removeStale(key string, computedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.computedAt.Equal(computedAt) {
		return
	}

	if e.lruElement != nil {
		c.lru.Remove(e.lruElement)
	}

	delete(c.entries, key)
}
