// Package cache provides a bounded in-memory LRU used by the classify pipeline.
//
// The cache is recency-only: entries never expire by time, and overflow evicts
// exactly the least-recently-used entry. A capacity <= 0 disables storage
// entirely, so every Get misses and Set is a no-op. This keeps the
// "cache off" configuration on the same code path as the normal one.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langid_cache_hits_total",
		Help: "Lookups served from the LRU cache.",
	}, []string{"cache"})
	missesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langid_cache_misses_total",
		Help: "Lookups that fell through to the detector.",
	}, []string{"cache"})
	evictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langid_cache_evictions_total",
		Help: "Entries dropped to keep the cache within capacity.",
	}, []string{"cache"})
)

// Stats is a point-in-time counter snapshot, used by tests and the service info endpoint
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// LRU is a mutex-guarded LRU map. The zero value is unusable; construct with New.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List // front = most recent
	index    map[K]*list.Element

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	promHits      prometheus.Counter
	promMisses    prometheus.Counter
	promEvictions prometheus.Counter
}

// New builds an LRU holding at most capacity entries.
// capacity <= 0 returns a disabled cache (no storage, all lookups miss).
// name labels the prometheus counters so multiple caches stay distinguishable.
func New[K comparable, V any](name string, capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity:      capacity,
		ll:            list.New(),
		index:         make(map[K]*list.Element),
		promHits:      hitsTotal.WithLabelValues(name),
		promMisses:    missesTotal.WithLabelValues(name),
		promEvictions: evictionsTotal.WithLabelValues(name),
	}
}

// Enabled reports whether the cache stores anything at all
func (c *LRU[K, V]) Enabled() bool { return c.capacity > 0 }

// Get returns the value for key and promotes it to most-recently-used.
// A miss has no side effects.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	var zero V
	if c.capacity <= 0 {
		c.misses.Add(1)
		c.promMisses.Inc()
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.misses.Add(1)
		c.promMisses.Inc()
		return zero, false
	}
	c.ll.MoveToFront(el)
	c.hits.Add(1)
	c.promHits.Inc()
	return el.Value.(*entry[K, V]).val, true
}

// Set stores value under key as the most-recently-used entry.
// An existing entry for key is replaced (and counts as freshly used).
// When the insert overflows capacity, the least-recently-used entry is evicted.
func (c *LRU[K, V]) Set(key K, value V) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.ll.Remove(el)
		delete(c.index, key)
	}
	c.index[key] = c.ll.PushFront(&entry[K, V]{key: key, val: value})

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(*entry[K, V]).key)
			c.evictions.Add(1)
			c.promEvictions.Inc()
		}
	}
}

// Len returns the current number of stored entries
func (c *LRU[K, V]) Len() int {
	if c.capacity <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Stats snapshots the cache counters
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.Len(),
		Capacity:  c.capacity,
	}
}
