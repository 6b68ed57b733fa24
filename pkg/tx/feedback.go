package tx

import (
	"github.com/robotalks/txtest/pkg/hal"
)

// ToneSet is a set of tunes requested in one period.
type ToneSet uint8

// Add adds a tune.
func (s *ToneSet) Add(t hal.Tune) {
	*s |= 1 << t
}

// Has tests a tune.
func (s ToneSet) Has(t hal.Tune) bool {
	return s&(1<<t) != 0
}

// Tunes lists the tunes in play order.
func (s ToneSet) Tunes() []hal.Tune {
	var tunes []hal.Tune
	for t := hal.TuneStartup; t <= hal.TuneLoiter; t++ {
		if s.Has(t) {
			tunes = append(tunes, t)
		}
	}
	return tunes
}

// Feedback is the operator feedback of one period.
type Feedback struct {
	State  LinkState
	Yellow LEDPattern
	Green  LEDPattern
	Tones  ToneSet
}

// Encode maps the link state and the telemetry snapshot to LED
// patterns and tones. prev is the snapshot of the previous period and
// only serves to detect flight mode transitions.
func Encode(linked, acquired bool, cur, prev hal.TelemetryStatus) (fb Feedback) {
	if !linked {
		fb.State = LinkSearching
		fb.Tones.Add(hal.TuneSearching)
		return
	}

	fb.State = LinkLinked
	if acquired {
		fb.Tones.Add(hal.TuneLinkAcquired)
	}

	if cur.Flags.Has(hal.FlagGPSOK) {
		fb.Yellow = PatternSolid
	} else {
		fb.Yellow = PatternBlinkSlow
	}

	switch {
	case !cur.Flags.Has(hal.FlagArmOK):
		fb.Green = PatternBlinkSlow
	case cur.FlightMode == hal.ModeLoiter:
		fb.Green = PatternSolid
	default:
		fb.Green = PatternBlinkFast
	}

	if cur.FlightMode != prev.FlightMode {
		switch cur.FlightMode {
		case hal.ModeAltHold:
			fb.Tones.Add(hal.TuneAltHold)
		case hal.ModeLoiter:
			fb.Tones.Add(hal.TuneLoiter)
		}
	}
	return
}

// applyFeedback runs the link monitor and the encoder for the period
// and drives the outputs. The previous snapshot is always overwritten.
func (c *Controller) applyFeedback(received uint8, cur hal.TelemetryStatus) Feedback {
	acquired := c.link.Update(received)
	fb := Encode(c.link.Linked(), acquired, cur, c.prev)
	for t := hal.TuneStartup; t <= hal.TuneLoiter; t++ {
		if fb.Tones.Has(t) {
			c.Board.PlayTone(t)
		}
	}
	if fb.State == LinkSearching {
		c.Board.ToggleLED(hal.LEDGreen)
		c.Board.SetLED(hal.LEDYellow, false)
	}
	c.yellow, c.green = fb.Yellow, fb.Green
	c.prev = cur
	return fb
}
