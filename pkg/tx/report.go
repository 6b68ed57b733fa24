package tx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/robotalks/txtest/pkg/hal"
)

// Report holds the diagnostic values of one period and the feedback
// computed from them.
type Report struct {
	Counter    uint16
	ADC        [hal.NumChannels]uint16
	TxPPS      uint16
	Received   uint8
	RSSI       uint8
	RemoteRSSI uint8
	RxPPS      uint16
	Status     hal.TelemetryStatus

	BindMode BindMode
	Protocol Protocol
	Feedback Feedback
}

// Line formats the diagnostic line, without the trailing newline.
func (r *Report) Line() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d: ADC=[%d %d %d %d] TX:%d",
		r.Counter, r.ADC[0], r.ADC[1], r.ADC[2], r.ADC[3], r.TxPPS)
	if r.Received == 0 {
		buf.WriteString(" NOSIGNAL")
	} else {
		fmt.Fprintf(&buf, " TR:%d RSSI:%d RRSSI:%d RPPS:%d F:0x%x M:%d",
			r.Received, r.RSSI, r.RemoteRSSI, r.RxPPS,
			uint8(r.Status.Flags), uint8(r.Status.FlightMode))
	}
	return buf.String()
}

// WriteTo implements io.WriterTo, writing the line and a newline.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Line()+"\n")
	return int64(n), err
}

// sample reads the diagnostic counters. The reception counter is read
// first, it may be reset by the read.
func (c *Controller) sample(r *Report) {
	r.Received = c.link.Received(c.Board.ReceptionCount())
	for i := range r.ADC {
		r.ADC[i] = c.Board.Sample(hal.Channel(i))
	}
	r.TxPPS = c.Board.TransmitPPS()
	r.RSSI = c.Board.RSSI()
	r.RemoteRSSI = c.Board.RemoteRSSI()
	r.RxPPS = c.Board.ReceptionPPS()
	r.Status = c.Board.Telemetry()
	r.BindMode, r.Protocol = c.bindMode, c.protocol
}
