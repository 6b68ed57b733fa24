package sh

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/sim"
	"github.com/robotalks/txtest/pkg/tx"
)

type fixedSource struct {
	report *tx.Report
}

func (s *fixedSource) LastReport() (tx.Report, bool) {
	if s.report == nil {
		return tx.Report{}, false
	}
	return *s.report, true
}

func TestStatusCmd(t *testing.T) {
	src := &fixedSource{}
	s := New("bench", &sim.Board{LEDs: &sim.LEDs{}}, src)
	_, err := s.Exec("status")
	require.Error(t, err)
	_, err = s.Exec("nope")
	require.Error(t, err)

	src.report = &tx.Report{
		Counter:  4,
		TxPPS:    91,
		Received: 5,
		Status:   hal.TelemetryStatus{Flags: hal.FlagGPSOK, FlightMode: hal.ModeAltHold},
		BindMode: tx.BindNormal,
		Protocol: tx.ProtocolDSM2,
		Feedback: tx.Feedback{State: tx.LinkLinked, Yellow: tx.PatternBlinkFast, Green: tx.PatternSolid},
	}
	out, err := s.Exec("st")
	require.NoError(t, err)
	require.Equal(t, "4: ADC=[0 0 0 0] TX:91 TR:5 RSSI:0 RRSSI:0 RPPS:0 F:0x1 M:2\n"+
		"bind=NORMAL protocol=DSM2 link=LINKED\n"+
		"flags=GPS_OK mode=ALT_HOLD", out)

	s.OutputJSON = true
	out, err = s.Exec("status")
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, "bench", m["device"])
	require.Equal(t, "DSM2", m["protocol"])
}

func TestLEDsCmd(t *testing.T) {
	src := &fixedSource{report: &tx.Report{
		Feedback: tx.Feedback{Yellow: tx.PatternBlinkFast, Green: tx.PatternSolid},
	}}
	s := New("bench", &sim.Board{LEDs: &sim.LEDs{}}, src)
	s.Board.LEDs.SetLED(hal.LEDGreen, true)
	out, err := s.Exec("leds")
	require.NoError(t, err)
	require.Equal(t, "yellow BLINK_FAST off\ngreen  SOLID      on", out)

	s.OutputJSON = true
	out, err = s.Exec("leds")
	require.NoError(t, err)
	var m map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, "SOLID", m["green"]["pattern"])
	require.Equal(t, true, m["green"]["on"])
}

func TestCommandNames(t *testing.T) {
	require.Contains(t, CommandNames(), "status")
	require.NotNil(t, Lookup("st"))
}
