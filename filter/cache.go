package filter

import (
	"container/list"
	"sync"
)

// filterCache is a thread-safe LRU of compiled filters keyed by expression
type filterCache struct {
	capacity int
	order    *list.List
	entries  map[string]*list.Element
	mu       sync.Mutex
}

type cacheEntry struct {
	expression string
	filter     CompiledFilter
}

func newFilterCache(capacity int) *filterCache {
	return &filterCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached filter and marks it most recently used
func (c *filterCache) Get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).filter, true
}

// Put stores a filter, evicting the least recently used one when full
func (c *filterCache) Put(expression string, filter CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[expression]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).filter = filter
		return
	}

	c.entries[expression] = c.order.PushFront(&cacheEntry{expression: expression, filter: filter})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).expression)
	}
}

// Clear removes all entries
func (c *filterCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of cached filters
func (c *filterCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}
