package cache

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time. Injected so freshness behavior is
// testable without sleeping.
type Clock func() time.Time

// Memory is an in-process TTL cache. It is constructed once per process and
// passed to its users explicitly; freshness is governed by the per-entry TTL
// and the injected clock, not by hidden module state.
type Memory struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	clock Clock
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// New creates a cache using the wall clock
func New() *Memory {
	return NewWithClock(time.Now)
}

// NewWithClock creates a cache with an injected clock
func NewWithClock(clock Clock) *Memory {
	return &Memory{
		items: make(map[string]cacheItem),
		clock: clock,
	}
}

// Get retrieves a value from cache
func (c *Memory) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}

	if c.clock().After(item.expiresAt) {
		return nil, false
	}

	return item.value, true
}

// Set stores a value in cache with TTL in seconds
func (c *Memory) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: c.clock().Add(time.Duration(ttl) * time.Second),
	}

	return nil
}

// Delete removes a value from cache
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Clear removes all values from cache
func (c *Memory) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
	return nil
}

// Purge drops expired entries. Callers decide when; there is no background
// goroutine.
func (c *Memory) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
