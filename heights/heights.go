package heights

import (
	"go.uber.org/atomic"
)

// Static is a HeightSource that always reports the same height.
type Static uint64

// Height returns the constant height.
func (s Static) Height() uint64 {
	return uint64(s)
}

// Counter is a HeightSource that hands out consecutive heights starting at a
// given value. It is safe for concurrent use.
type Counter struct {
	next atomic.Uint64
}

// NewCounter creates a counter whose first Height call returns start.
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.next.Store(start)
	return c
}

// Height returns the next height in the sequence.
func (c *Counter) Height() uint64 {
	return c.next.Inc() - 1
}
