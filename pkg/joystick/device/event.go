package device

import (
	"encoding/binary"
	"fmt"
)

// EventSize is the size of a raw joystick event.
const EventSize = 8

const (
	evINIT uint8 = 0x80
	evBTN  uint8 = 0x01
	evAXIS uint8 = 0x02
)

type event struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

func (e *event) IsInit() bool {
	return e.Type&evINIT != 0
}

func (e *event) Index() int {
	return int(e.Number)
}

type axisEvent struct {
	event
}

func (e *axisEvent) Value() int {
	return int(e.event.Value)
}

// DecodeEvent decodes a raw event: time (u32), value (s16), type (u8)
// and number (u8), little-endian.
func DecodeEvent(buf []byte) (Event, error) {
	if len(buf) < EventSize {
		return nil, fmt.Errorf("short event: %d bytes", len(buf))
	}
	ev := event{
		Time:   binary.LittleEndian.Uint32(buf),
		Value:  int16(binary.LittleEndian.Uint16(buf[4:])),
		Type:   buf[6],
		Number: buf[7],
	}
	if ev.Type&^evINIT == evAXIS {
		return &axisEvent{event: ev}, nil
	}
	return &ev, nil
}
