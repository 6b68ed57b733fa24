// Package hal defines the hardware collaborators of the transmitter core.
//
// Implementations are expected to be non-blocking. Interrupt-style
// producers behind these interfaces only update counters and snapshots,
// they never call back into the core.
package hal

import (
	fx "github.com/robotalks/txtest/pkg/framework"
)

// Channel identifies an analog input.
type Channel uint8

// NumChannels is the number of stick channels sampled for diagnostics.
const NumChannels = 4

// ADC samples analog inputs.
type ADC interface {
	// Sample returns the latest conversion of the channel.
	Sample(ch Channel) uint16
}

// RadioStats exposes the link counters of the radio driver.
type RadioStats interface {
	// ReceptionCount is the number of telemetry packets received.
	ReceptionCount() uint8
	// TransmitPPS is the transmitted packets per second.
	TransmitPPS() uint16
	// ReceptionPPS is the telemetry packets per second reported by the receiver.
	ReceptionPPS() uint16
	// RSSI is the local received signal strength.
	RSSI() uint8
	// RemoteRSSI is the signal strength measured by the receiver.
	RemoteRSSI() uint8
}

// Radio is the radio chip protocol driver.
type Radio interface {
	RadioStats
	// Telemetry returns a copy of the latest telemetry status.
	Telemetry() TelemetryStatus
	// BeginBind starts the bind handshake and then sends.
	BeginBind(dsm2 bool)
	// BeginSession starts sending with a previously bound receiver.
	BeginSession(dsm2 bool)
}

// Storage is byte-addressed nonvolatile storage.
type Storage interface {
	LoadByte(offset uint16) byte
	StoreByte(offset uint16, value byte)
}

// LED identifies a status LED.
type LED uint8

// LEDs
const (
	// LEDYellow has the mode role.
	LEDYellow LED = iota
	// LEDGreen has the gps role.
	LEDGreen
)

// NumLEDs is the number of status LEDs.
const NumLEDs = 2

func (l LED) String() string {
	switch l {
	case LEDYellow:
		return "yellow"
	case LEDGreen:
		return "green"
	}
	return "led?"
}

// LEDs controls LED pins directly.
type LEDs interface {
	SetLED(id LED, on bool)
	ToggleLED(id LED)
}

// Tune identifies a buzzer tune.
type Tune uint8

// Tunes
const (
	TuneStartup Tune = iota
	TuneSearching
	TuneLinkAcquired
	TuneAltHold
	TuneLoiter
)

var tuneNames = []string{
	TuneStartup:      "startup",
	TuneSearching:    "searching",
	TuneLinkAcquired: "link-acquired",
	TuneAltHold:      "alt-hold",
	TuneLoiter:       "loiter",
}

func (t Tune) String() string {
	if int(t) < len(tuneNames) {
		return tuneNames[t]
	}
	return "tune?"
}

// Buzzer plays tunes asynchronously.
type Buzzer interface {
	// PlayTone requests a tune, it never waits for playback.
	PlayTone(t Tune)
}

// Board aggregates all collaborators.
type Board interface {
	fx.Clock
	ADC
	Radio
	Storage
	LEDs
	Buzzer
}
