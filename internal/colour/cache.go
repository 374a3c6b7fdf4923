package colour

import (
	"context"
	"sync"
)

// CachingResolver memoises another resolver. Every answer is kept, Unknown
// included, for the lifetime of the CachingResolver; build one per run.
type CachingResolver struct {
	base Resolver

	mu      sync.Mutex
	entries map[RGB]string
}

// NewCachingResolver wraps base.
func NewCachingResolver(base Resolver) *CachingResolver {
	return &CachingResolver{
		base:    base,
		entries: make(map[RGB]string),
	}
}

// Resolve implements Resolver.
func (c *CachingResolver) Resolve(ctx context.Context, rgb RGB) string {
	c.mu.Lock()
	name, ok := c.entries[rgb]
	c.mu.Unlock()
	if ok {
		return name
	}

	name = c.base.Resolve(ctx, rgb)

	c.mu.Lock()
	c.entries[rgb] = name
	c.mu.Unlock()
	return name
}

// Len returns the number of cached colours.
func (c *CachingResolver) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
