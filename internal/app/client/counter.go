package client

import "sync"

// IDCounter tracks the largest book id seen. It never decreases.
type IDCounter struct {
	mu  sync.RWMutex
	max int
}

func (c *IDCounter) Current() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.max
}

func (c *IDCounter) Observe(id int) {
	c.mu.Lock()
	if id > c.max {
		c.max = id
	}
	c.mu.Unlock()
}
