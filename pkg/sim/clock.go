package sim

import (
	"time"
)

// Clock is a wall clock based millisecond counter. Offset shifts the
// reading, so wraparound can be reached soon after start.
type Clock struct {
	Offset uint32

	start time.Time
}

// NewClock creates a Clock starting at offset.
func NewClock(offset uint32) *Clock {
	return &Clock{Offset: offset, start: time.Now()}
}

// Millis implements framework.Clock.
func (c *Clock) Millis() uint32 {
	return c.Offset + uint32(time.Since(c.start)/time.Millisecond)
}

// Sleep implements framework.Sleeper.
func (c *Clock) Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
