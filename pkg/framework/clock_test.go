package framework

// fakeClock advances only when slept on.
type fakeClock struct {
	now uint32
}

func (c *fakeClock) Millis() uint32 {
	return c.now
}

func (c *fakeClock) Sleep(ms uint32) {
	c.now += ms
}

// spinClock advances by step on every reading, like a free running
// hardware timer observed from a busy loop.
type spinClock struct {
	now  uint32
	step uint32
}

func (c *spinClock) Millis() uint32 {
	now := c.now
	c.now += c.step
	return now
}
