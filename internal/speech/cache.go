package speech

import (
	"context"
	"sync"
)

// Cache is a Synthesizer that remembers audio by text, so replaying the
// current sentence does not synthesize it again. It holds at most max
// entries and forgets everything when full.
type Cache struct {
	inner Synthesizer
	max   int

	mu      sync.Mutex
	entries map[string]*Audio
}

// NewCache wraps inner. max <= 0 means 16.
func NewCache(inner Synthesizer, max int) *Cache {
	if max <= 0 {
		max = 16
	}
	return &Cache{inner: inner, max: max, entries: make(map[string]*Audio)}
}

func (c *Cache) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if a, ok := c.Get(text); ok {
		return a, nil
	}
	a, err := c.inner.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	c.put(text, a)
	return a, nil
}

// Get returns cached audio for text.
func (c *Cache) Get(text string) (*Audio, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[text]
	return a, ok
}

// Forget drops text from the cache.
func (c *Cache) Forget(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, text)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) put(text string, a *Audio) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.max {
		clear(c.entries)
	}
	c.entries[text] = a
}
