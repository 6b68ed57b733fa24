package tx

import (
	"fmt"

	"github.com/robotalks/txtest/pkg/hal"
)

// LEDPattern is a 16-bit mask sampled cyclically over 16 phases,
// bit i set lights the LED during phase i.
type LEDPattern uint16

// LED patterns
const (
	PatternOff       LEDPattern = 0x0000
	PatternSolid     LEDPattern = 0xFFFF
	PatternBlinkSlow LEDPattern = 0xFF00
	PatternBlinkMed  LEDPattern = 0xFFF0
	PatternBlinkFast LEDPattern = 0xF0F0
)

// Pattern phases. A phase lasts 1<<PhaseShift ms, a full cycle of
// NumPhases takes 1024 ms.
const (
	PhaseShift = 6
	NumPhases  = 16
)

// Phase derives the pattern phase from a clock reading.
func Phase(ms uint32) uint {
	return uint(ms>>PhaseShift) & (NumPhases - 1)
}

// Lit reports whether the LED is on during phase.
func (p LEDPattern) Lit(phase uint) bool {
	return p&(1<<(phase&(NumPhases-1))) != 0
}

func (p LEDPattern) String() string {
	switch p {
	case PatternOff:
		return "OFF"
	case PatternSolid:
		return "SOLID"
	case PatternBlinkSlow:
		return "BLINK_SLOW"
	case PatternBlinkMed:
		return "BLINK_MED"
	case PatternBlinkFast:
		return "BLINK_FAST"
	}
	return fmt.Sprintf("PATTERN(0x%04x)", uint16(p))
}

// Tick implements Ticker. It drives the LEDs from the active patterns.
// While searching, the green LED is toggled once per period by the
// feedback pass instead and is left alone here.
func (c *Controller) Tick(now uint32) {
	phase := Phase(now)
	c.Board.SetLED(hal.LEDYellow, c.yellow.Lit(phase))
	if c.link.Linked() {
		c.Board.SetLED(hal.LEDGreen, c.green.Lit(phase))
	}
}
