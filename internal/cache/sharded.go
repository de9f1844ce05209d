// Package cache holds compiled shader artifacts keyed by source hash.
package cache

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is a power of two so a key picks its shard with a mask.
	ShardCount = 16

	// DefaultCapacity is the per-shard entry limit used when none is given.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Key hashes a shader source together with the target it was compiled for.
func Key(target, source string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(target))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(source))
	return h.Sum64()
}

// Sharded is a concurrent LRU split into ShardCount independently locked
// shards.
type Sharded[V any] struct {
	shards   [ShardCount]shard[V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[uint64]*list.Element
	order   *list.List
}

type entry[V any] struct {
	key   uint64
	value V
}

// NewSharded returns an empty cache holding up to capacity entries per
// shard. A capacity of 0 or less selects DefaultCapacity.
func NewSharded[V any](capacity int) *Sharded[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[V]{capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[uint64]*list.Element)
		c.shards[i].order = list.New()
	}
	return c
}

func (c *Sharded[V]) shard(key uint64) *shard[V] {
	return &c.shards[key&shardMask]
}

// Get returns the value stored under key and marks it recently used.
func (c *Sharded[V]) Get(key uint64) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.order.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry[V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (c *Sharded[V]) Set(key uint64, value V) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.insert(s, key, value)
}

func (c *Sharded[V]) insert(s *shard[V], key uint64, value V) {
	if el, ok := s.entries[key]; ok {
		el.Value.(*entry[V]).value = value
		s.order.MoveToFront(el)
		return
	}
	for s.order.Len() >= c.capacity {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry[V]).key)
		c.evictions.Add(1)
	}
	s.entries[key] = s.order.PushFront(&entry[V]{key: key, value: value})
}

// GetOrCreate returns the cached value for key or builds it with create.
// A failed create is not cached. create runs under the shard lock, so two
// callers never compile the same source twice.
func (c *Sharded[V]) GetOrCreate(key uint64, create func() (V, error)) (V, error) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.order.MoveToFront(el)
		c.hits.Add(1)
		return el.Value.(*entry[V]).value, nil
	}
	c.misses.Add(1)
	v, err := create()
	if err != nil {
		return v, err
	}
	c.insert(s, key, v)
	return v, nil
}

// Len returns the number of entries across all shards.
func (c *Sharded[V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Clear drops every entry. Statistics are kept.
func (c *Sharded[V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[uint64]*list.Element)
		s.order.Init()
		s.mu.Unlock()
	}
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns the current counters.
func (c *Sharded[V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
