// Package progress provides lightweight progress reporting for long-running
// index operations: an atomic counter updated by the worker and a
// countdown timer used to throttle how often a reporting goroutine prints.
package progress

import "sync/atomic"

// Counter is an atomically updated progress counter. It is safe for
// concurrent use: a single goroutine performing work updates it via Set,
// while any number of goroutines may read it via Value.
type Counter struct {
	value int64
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Set stores count as the counter's current value.
func (c *Counter) Set(count int) {
	atomic.StoreInt64(&c.value, int64(count))
}

// Add increments the counter by delta and returns the new value.
func (c *Counter) Add(delta int) int {
	return int(atomic.AddInt64(&c.value, int64(delta)))
}

// Value returns the counter's current value.
func (c *Counter) Value() int {
	return int(atomic.LoadInt64(&c.value))
}
