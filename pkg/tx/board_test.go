package tx

import (
	"fmt"

	"github.com/robotalks/txtest/pkg/hal"
)

type fakeBoard struct {
	now      uint32
	sampleAt []uint32

	adc    [hal.NumChannels]uint16
	count  uint8
	txPPS  uint16
	rxPPS  uint16
	rssi   uint8
	rrssi  uint8
	status hal.TelemetryStatus

	eeprom   map[uint16]byte
	writes   int
	binds    []bool
	sessions []bool
	// calls logs storage and radio start calls in order.
	calls []string

	leds    [hal.NumLEDs]bool
	toggles [hal.NumLEDs]int
	tones   []hal.Tune
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{eeprom: make(map[uint16]byte)}
}

func (b *fakeBoard) Millis() uint32       { return b.now }
func (b *fakeBoard) Sleep(ms uint32)      { b.now += ms }
func (b *fakeBoard) TransmitPPS() uint16  { return b.txPPS }
func (b *fakeBoard) ReceptionPPS() uint16 { return b.rxPPS }
func (b *fakeBoard) RSSI() uint8          { return b.rssi }
func (b *fakeBoard) RemoteRSSI() uint8    { return b.rrssi }
func (b *fakeBoard) ReceptionCount() uint8 {
	return b.count
}

func (b *fakeBoard) Sample(ch hal.Channel) uint16 {
	b.sampleAt = append(b.sampleAt, b.now)
	return b.adc[ch]
}

func (b *fakeBoard) Telemetry() hal.TelemetryStatus { return b.status }

func (b *fakeBoard) BeginBind(dsm2 bool) {
	b.binds = append(b.binds, dsm2)
	b.calls = append(b.calls, fmt.Sprintf("bind(%v)", dsm2))
}

func (b *fakeBoard) BeginSession(dsm2 bool) {
	b.sessions = append(b.sessions, dsm2)
	b.calls = append(b.calls, fmt.Sprintf("session(%v)", dsm2))
}

func (b *fakeBoard) LoadByte(offset uint16) byte {
	return b.eeprom[offset]
}

func (b *fakeBoard) StoreByte(offset uint16, value byte) {
	b.eeprom[offset] = value
	b.writes++
	b.calls = append(b.calls, fmt.Sprintf("store(%d,%d)", offset, value))
}

func (b *fakeBoard) SetLED(id hal.LED, on bool) { b.leds[id] = on }
func (b *fakeBoard) ToggleLED(id hal.LED) {
	b.leds[id] = !b.leds[id]
	b.toggles[id]++
}

func (b *fakeBoard) PlayTone(t hal.Tune) { b.tones = append(b.tones, t) }

// takeTones returns and clears the tones played so far.
func (b *fakeBoard) takeTones() []hal.Tune {
	tones := b.tones
	b.tones = nil
	return tones
}
