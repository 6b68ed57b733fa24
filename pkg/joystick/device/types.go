package device

import "io"

// Event is a raw joystick event. Only axis events carry stick
// positions, other events (buttons) are decoded as plain Events.
type Event interface {
	// IsInit is true for the synthetic events reporting the initial
	// state right after the device is opened.
	IsInit() bool
	// Index is the axis number of an axis event.
	Index() int
}

// AxisEvent is a position change of an axis, -32767 to 32767.
type AxisEvent interface {
	Event
	Value() int
}

// Device is an opened joystick.
type Device interface {
	io.Closer
	Index() int
	Name() string
	AxisCount() int
	// ReadEvent blocks until the next event.
	ReadEvent() (Event, error)
}
