package joystick

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/joystick/device"
)

type stickRecorder struct {
	lock   sync.Mutex
	values map[hal.Channel]uint16
	setCh  chan struct{}
}

func newStickRecorder() *stickRecorder {
	return &stickRecorder{values: make(map[hal.Channel]uint16), setCh: make(chan struct{}, 16)}
}

func (r *stickRecorder) Set(ch hal.Channel, v uint16) error {
	r.lock.Lock()
	r.values[ch] = v
	r.lock.Unlock()
	r.setCh <- struct{}{}
	return nil
}

func (r *stickRecorder) get(ch hal.Channel) uint16 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.values[ch]
}

type fakeDevice struct {
	events [][]byte
	closed chan struct{}
	once   sync.Once
}

func (d *fakeDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}
func (d *fakeDevice) Index() int     { return 0 }
func (d *fakeDevice) Name() string   { return "fake" }
func (d *fakeDevice) AxisCount() int { return 4 }

func (d *fakeDevice) ReadEvent() (device.Event, error) {
	if len(d.events) == 0 {
		return nil, io.EOF
	}
	raw := d.events[0]
	d.events = d.events[1:]
	return device.DecodeEvent(raw)
}

func axisRaw(axis uint8, v int16) []byte {
	return []byte{0, 0, 0, 0, byte(uint16(v)), byte(uint16(v) >> 8), 0x02, axis}
}

func TestAxisToStick(t *testing.T) {
	tests := []struct {
		v      int
		invert bool
		stick  uint16
	}{
		{-32767, false, 0},
		{-40000, false, 0},
		{0, false, 511},
		{32767, false, 1023},
		{32767, true, 0},
		{-32767, true, 1023},
	}
	for _, test := range tests {
		require.Equal(t, test.stick, AxisToStick(test.v, test.invert), "%d invert=%v", test.v, test.invert)
	}
}

func TestConfigNewFeeder(t *testing.T) {
	c := NewConfig()
	c.Axes = "3,2,1,0"
	f, err := c.NewFeeder(newStickRecorder())
	require.NoError(t, err)
	require.Equal(t, [hal.NumChannels]int{3, 2, 1, 0}, f.Axes)
	require.Equal(t, [hal.NumChannels]bool{false, true, true, false}, f.Invert)

	c.Axes = "0,1"
	_, err = c.NewFeeder(nil)
	require.Error(t, err)
	c.Axes, c.Invert = "0,1,2,3", "7"
	_, err = c.NewFeeder(nil)
	require.Error(t, err)
	c.Invert = "x"
	_, err = c.NewFeeder(nil)
	require.Error(t, err)
}

func TestFeederApply(t *testing.T) {
	sticks := newStickRecorder()
	f := NewFeeder(sticks)
	f.Invert[2] = true

	ev, err := device.DecodeEvent(axisRaw(2, 32767))
	require.NoError(t, err)
	require.True(t, f.Apply(ev))
	require.Equal(t, uint16(0), sticks.get(2))

	ev, err = device.DecodeEvent(axisRaw(9, 0))
	require.NoError(t, err)
	require.False(t, f.Apply(ev))
	ev, err = device.DecodeEvent([]byte{0, 0, 0, 0, 1, 0, 0x01, 2})
	require.NoError(t, err)
	require.False(t, f.Apply(ev))
}

func TestFeederRun(t *testing.T) {
	sticks := newStickRecorder()
	f := NewFeeder(sticks)
	f.RetryInterval = time.Millisecond
	dev := &fakeDevice{
		events: [][]byte{axisRaw(0, 32767), axisRaw(3, -32767)},
		closed: make(chan struct{}),
	}
	var opens int
	f.open = func(int) (device.Device, error) {
		opens++
		if opens == 1 {
			return nil, errors.New("no device")
		}
		if opens == 2 {
			return dev, nil
		}
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()
	<-sticks.setCh
	<-sticks.setCh
	<-dev.closed
	cancel()
	require.Equal(t, context.Canceled, <-done)
	require.Equal(t, uint16(1023), sticks.get(0))
	require.Equal(t, uint16(0), sticks.get(3))
	require.True(t, opens >= 2)
}
