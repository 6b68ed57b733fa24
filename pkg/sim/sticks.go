package sim

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/robotalks/txtest/pkg/hal"
)

// Stick positions, in raw ADC units.
const (
	StickLow    uint16 = 0
	StickCenter uint16 = 512
	StickHigh   uint16 = 1023
)

// Sticks implements hal.ADC with positions set by the bench.
type Sticks struct {
	values [hal.NumChannels]uint32
}

// NewSticks creates Sticks centered.
func NewSticks() *Sticks {
	s := &Sticks{}
	for ch := range s.values {
		s.values[ch] = uint32(StickCenter)
	}
	return s
}

// Sample implements hal.ADC.
func (s *Sticks) Sample(ch hal.Channel) uint16 {
	if int(ch) >= len(s.values) {
		return 0
	}
	return uint16(atomic.LoadUint32(&s.values[ch]))
}

// Set moves one stick.
func (s *Sticks) Set(ch hal.Channel, value uint16) error {
	if int(ch) >= len(s.values) {
		return fmt.Errorf("invalid channel %d", ch)
	}
	if value > StickHigh {
		return fmt.Errorf("value %d out of range", value)
	}
	atomic.StoreUint32(&s.values[ch], uint32(value))
	return nil
}

// Positions returns all stick positions.
func (s *Sticks) Positions() (values [hal.NumChannels]uint16) {
	for ch := range values {
		values[ch] = s.Sample(hal.Channel(ch))
	}
	return
}

// ParseStick parses a stick position: low, center, high or a number.
func ParseStick(str string) (uint16, error) {
	switch strings.ToLower(str) {
	case "low", "l":
		return StickLow, nil
	case "center", "mid", "c":
		return StickCenter, nil
	case "high", "h":
		return StickHigh, nil
	}
	v, err := strconv.ParseUint(str, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid stick position %q", str)
	}
	if uint16(v) > StickHigh {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return uint16(v), nil
}

// ParseSticks parses comma separated positions of all channels.
func ParseSticks(str string) (values [hal.NumChannels]uint16, err error) {
	tokens := strings.Split(str, ",")
	if len(tokens) != len(values) {
		return values, fmt.Errorf("expect %d stick positions, got %d", len(values), len(tokens))
	}
	for i, token := range tokens {
		if values[i], err = ParseStick(strings.TrimSpace(token)); err != nil {
			return
		}
	}
	return
}
