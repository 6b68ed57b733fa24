package framework

import (
	"context"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Clock provides a monotonic millisecond counter.
// The counter wraps around at 2^32.
type Clock interface {
	Millis() uint32
}

// Sleeper is optionally implemented by a Clock to yield the
// processor while waiting for a deadline.
type Sleeper interface {
	Sleep(ms uint32)
}

// Controller defines the abstract controlling logic
// invoked once per loop iteration.
type Controller interface {
	Control(ControlContext) error
}

// Ticker is invoked on every spin while the loop waits
// for the next iteration deadline.
type Ticker interface {
	Tick(now uint32)
}

// ControlContext provides the context of current control
// iteration.
type ControlContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Millis is the clock reading when the iteration started.
	Millis() uint32
	// Deadline is the absolute time the iteration must finish by.
	Deadline() uint32
	// PriorityLevel gets the current priority level.
	PriorityLevel() int
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefine priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvSense is the alias of priority level for sensors.
	PrLvSense = PrLvHigh
	// PrLvControl is the alias of priority level for controllers.
	PrLvControl = PrLvNormal
	// PrLvAcuate is the alias of priority level for acuators.
	PrLvAcuate = PrLvLow
	// PrLvPostProc is the alias of priority level for post-processing.
	PrLvPostProc = PrLvIdle - 1
)

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// TickFunc is the func form of Ticker.
type TickFunc func(now uint32)

// Tick implements Ticker.
func (f TickFunc) Tick(now uint32) {
	f(now)
}
