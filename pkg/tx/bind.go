package tx

import (
	"github.com/golang/glog"

	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/hal"
)

// BindMode is the start mode decided from the sticks at boot.
type BindMode int

// Bind modes
const (
	BindNormal BindMode = iota
	BindDSM2
	BindDSMX
)

func (m BindMode) String() string {
	switch m {
	case BindDSM2:
		return "DSM2"
	case BindDSMX:
		return "DSMX"
	}
	return "NORMAL"
}

// Protocol is the persisted protocol selector.
type Protocol byte

// Protocols
const (
	ProtocolDSMX Protocol = 0
	ProtocolDSM2 Protocol = 1
)

// ProtocolFromByte decodes a stored selector, any non-zero value is DSM2.
// An erased EEPROM reads 0, so DSMX is the default.
func ProtocolFromByte(b byte) Protocol {
	if b != 0 {
		return ProtocolDSM2
	}
	return ProtocolDSMX
}

// IsDSM2 indicates DSM2.
func (p Protocol) IsDSM2() bool {
	return p == ProtocolDSM2
}

func (p Protocol) String() string {
	if p.IsDSM2() {
		return "DSM2"
	}
	return "DSMX"
}

// DetectBindMode applies the stick rule, first match wins:
// throttle low and yaw high requests DSM2, throttle low and yaw low
// requests DSMX.
func DetectBindMode(throttle, yaw uint16, low, high uint16) BindMode {
	switch {
	case throttle < low && yaw > high:
		return BindDSM2
	case throttle < low && yaw < low:
		return BindDSMX
	}
	return BindNormal
}

// Boot makes the bind decision and starts the radio. The decision is
// made once, subsequent calls return the recorded mode.
func (c *Controller) Boot() BindMode {
	if c.booted {
		return c.bindMode
	}
	fx.WaitUntil(c.Board, c.Board.Millis()+uint32(c.Config.SettleDelay), 0, nil)

	throttle := c.Board.Sample(hal.Channel(c.Config.ThrottleChannel))
	yaw := c.Board.Sample(hal.Channel(c.Config.YawChannel))
	mode := DetectBindMode(throttle, yaw, uint16(c.Config.LowThreshold), uint16(c.Config.HighThreshold))
	offset := uint16(c.Config.ProtocolOffset)

	var proto Protocol
	switch mode {
	case BindDSM2, BindDSMX:
		if mode == BindDSM2 {
			proto = ProtocolDSM2
		}
		glog.Infof("%s bind (throttle=%d yaw=%d)", mode, throttle, yaw)
		c.Board.StoreByte(offset, byte(proto))
		c.Board.BeginBind(proto.IsDSM2())
	default:
		proto = ProtocolFromByte(c.Board.LoadByte(offset))
		glog.Infof("normal session using %s", proto)
		c.Board.BeginSession(proto.IsDSM2())
	}
	c.Board.PlayTone(hal.TuneStartup)

	c.booted, c.bindMode, c.protocol = true, mode, proto
	return mode
}

// Protocol returns the protocol in use, valid after Boot.
func (c *Controller) Protocol() Protocol {
	return c.protocol
}
