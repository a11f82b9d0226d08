// Package clock issues the server timestamps that order all writes. Every
// sync request is stamped with one strictly increasing value, so two
// requests can never tie and last-write-wins resolution is deterministic.
package clock

import (
	"sync"
	"time"
)

// Clock hands out strictly increasing Unix-millisecond timestamps. If two
// calls land within the same wall-clock millisecond, the later call is
// bumped past the earlier one.
type Clock struct {
	mu   sync.Mutex
	last int64
}

// New returns a Clock seeded from the current wall clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the next timestamp. Successive calls always return strictly
// increasing values, even across wall-clock adjustments.
func (c *Clock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.Now().UnixMilli()
	if t <= c.last {
		t = c.last + 1
	}
	c.last = t
	return t
}
