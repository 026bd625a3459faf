package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe LRU cache holding at most capacity entries.
// A capacity <= 0 disables caching: Add is a no-op and Get always misses.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache with the given capacity.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	node, ok := c.entries[key]
	var value V
	if ok {
		c.order.moveToFront(node)
		value = node.value
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Add stores value under key, evicting the least recently used entry if the
// cache is full.
func (c *Cache[K, V]) Add(key K, value V) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.moveToFront(node)
		return
	}

	for c.order.len >= c.capacity {
		oldest := c.order.back()
		c.order.unlink(oldest)
		delete(c.entries, oldest.key)
		c.evictions.Add(1)
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = node
	c.order.pushFront(node)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.len
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*lruNode[K, V])
	c.order = lruList[K, V]{}
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
