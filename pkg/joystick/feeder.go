// Package joystick drives the stick inputs from a joystick on the host.
package joystick

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/joystick/device"
)

// StickSetter receives stick positions.
type StickSetter interface {
	Set(ch hal.Channel, value uint16) error
}

// AxisMax is the absolute maximum of an axis reading.
const AxisMax = 32767

// StickMax is the maximum stick position.
const StickMax = 1023

// AxisToStick scales an axis reading to a stick position.
func AxisToStick(v int, invert bool) uint16 {
	if v > AxisMax {
		v = AxisMax
	} else if v < -AxisMax {
		v = -AxisMax
	}
	if invert {
		v = -v
	}
	return uint16((v + AxisMax) * StickMax / (2 * AxisMax))
}

// Feeder opens a joystick and moves the sticks from its axes. The
// joystick is reopened after it is unplugged.
type Feeder struct {
	Sticks      StickSetter
	DeviceIndex int
	Axes        [hal.NumChannels]int
	Invert      [hal.NumChannels]bool
	Verbose     bool
	// RetryInterval is the delay before (re)opening the joystick.
	RetryInterval time.Duration

	open func(index int) (device.Device, error)
}

// NewFeeder creates a Feeder.
func NewFeeder(sticks StickSetter) *Feeder {
	f := &Feeder{
		Sticks:        sticks,
		DeviceIndex:   -1,
		RetryInterval: time.Second,
		open:          openDevice,
	}
	for ch := range f.Axes {
		f.Axes[ch] = ch
	}
	return f
}

func openDevice(index int) (device.Device, error) {
	if index >= 0 {
		return device.Open(index)
	}
	return device.DetectAndOpen(0)
}

// Apply moves the stick mapped to an axis event.
func (f *Feeder) Apply(ev device.Event) bool {
	axisEv, ok := ev.(device.AxisEvent)
	if !ok {
		return false
	}
	for ch, axis := range f.Axes {
		if axis == axisEv.Index() {
			v := AxisToStick(axisEv.Value(), f.Invert[ch])
			if f.Verbose {
				glog.Infof("axis %d=%d stick %d=%d", axis, axisEv.Value(), ch, v)
			}
			f.Sticks.Set(hal.Channel(ch), v)
			return true
		}
	}
	return false
}

// Run implements Runnable.
func (f *Feeder) Run(ctx context.Context) error {
	timer := time.After(0)
	var eventCh chan device.Event
	var js device.Device
	defer func() {
		if js != nil {
			js.Close()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer:
			timer = nil
			dev, err := f.open(f.DeviceIndex)
			if err != nil || dev == nil {
				if err != nil {
					glog.V(1).Infof("open joystick error: %v", err)
				}
				timer = time.After(f.RetryInterval)
				continue
			}
			glog.Infof("joystick %d %q opened, %d axes", dev.Index(), dev.Name(), dev.AxisCount())
			js, eventCh = dev, make(chan device.Event, 1)
			go poll(ctx, dev, eventCh)
		case ev, ok := <-eventCh:
			if ok {
				f.Apply(ev)
				continue
			}
			glog.Warningf("joystick %d closed", js.Index())
			js.Close()
			js, eventCh = nil, nil
			timer = time.After(f.RetryInterval)
		}
	}
}

func poll(ctx context.Context, dev device.Device, ch chan device.Event) {
	defer close(ch)
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			return
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}
