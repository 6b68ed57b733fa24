package sim

import (
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/txtest/pkg/hal"
)

// LEDs implements hal.LEDs, logging every change.
type LEDs struct {
	lock  sync.RWMutex
	state [hal.NumLEDs]bool
	// Changes counts the state changes of each LED.
	changes [hal.NumLEDs]uint64
}

// SetLED implements hal.LEDs.
func (l *LEDs) SetLED(led hal.LED, on bool) {
	if int(led) >= hal.NumLEDs {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.state[led] != on {
		l.change(led, on)
	}
}

// ToggleLED implements hal.LEDs.
func (l *LEDs) ToggleLED(led hal.LED) {
	if int(led) >= hal.NumLEDs {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.change(led, !l.state[led])
}

func (l *LEDs) change(led hal.LED, on bool) {
	l.state[led] = on
	l.changes[led]++
	glog.V(3).Infof("LED %s %v", led, on)
}

// State returns whether the LED is lit.
func (l *LEDs) State(led hal.LED) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.state[led]
}

// Changes returns the number of state changes of the LED.
func (l *LEDs) Changes(led hal.LED) uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.changes[led]
}
