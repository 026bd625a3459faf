// Package cache provides a small generic LRU cache.
//
// The text engine uses it to memoize shaping results per face, size and
// text, so repeated lines are shaped once:
//
//	c := cache.New[string, int](128)
//	c.Add("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
