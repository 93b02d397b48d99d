package depth

import (
	"context"
	"sync"
)

// LocalCounter is a process-local ports.DepthCounter.
// Every read-modify-write happens under one mutex.
type LocalCounter struct {
	mu sync.Mutex
	n  int
}

// NewLocalCounter returns a counter starting at zero.
func NewLocalCounter() *LocalCounter {
	return &LocalCounter{}
}

// Incr adds one and returns the new value.
func (c *LocalCounter) Incr(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n, nil
}

// Decr subtracts one and returns the new value.
func (c *LocalCounter) Decr(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n--
	return c.n, nil
}

// Current returns the value.
func (c *LocalCounter) Current(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n, nil
}
