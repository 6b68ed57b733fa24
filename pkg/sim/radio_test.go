package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/tx"
)

func TestRadioFrames(t *testing.T) {
	r := NewRadio()
	for i := 0; i < 10; i++ {
		r.frame()
	}
	r.second()
	require.Equal(t, uint16(10), r.TransmitPPS())
	require.Equal(t, uint16(10), r.ReceptionPPS())
	require.Equal(t, uint8(2), r.ReceptionCount())
	require.Equal(t, uint8(0), r.ReceptionCount())

	r.SetLinked(false)
	for i := 0; i < 8; i++ {
		r.frame()
	}
	r.second()
	require.Equal(t, uint16(8), r.TransmitPPS())
	require.Equal(t, uint16(0), r.ReceptionPPS())
	require.Equal(t, uint8(0), r.ReceptionCount())
}

func TestRadioCumulativeCounter(t *testing.T) {
	r := NewRadio()
	r.Counter = tx.CounterCumulative
	r.TelemetryEvery = 1
	for i := 0; i < 300; i++ {
		r.frame()
	}
	require.Equal(t, uint8(300-256), r.ReceptionCount())
	require.Equal(t, uint8(300-256), r.ReceptionCount())
}

func TestRadioTelemetry(t *testing.T) {
	r := NewRadio()
	r.SetFlightMode(hal.ModeLoiter)
	require.Equal(t, hal.FlagGPSOK|hal.FlagArmOK, r.UpdateFlags(hal.FlagGPSOK|hal.FlagArmOK, 0))
	require.Equal(t, hal.FlagArmOK, r.UpdateFlags(0, hal.FlagGPSOK))
	r.SetRSSI(90, 80)
	require.Equal(t, hal.TelemetryStatus{Flags: hal.FlagArmOK, FlightMode: hal.ModeLoiter}, r.Telemetry())
	require.Equal(t, uint8(90), r.RSSI())
	require.Equal(t, uint8(80), r.RemoteRSSI())
}

func TestRadioRun(t *testing.T) {
	r := NewRadio()
	r.TelemetryEvery = 1
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	require.False(t, r.State().Started)
	require.Equal(t, uint8(0), r.ReceptionCount())

	r.BeginSession(true)
	r.BeginBind(false)
	state := r.State()
	require.True(t, state.Started)
	require.False(t, state.Binding)
	require.True(t, state.DSM2)
	require.Equal(t, FrameDSM2, r.FrameInterval())

	time.Sleep(100 * time.Millisecond)
	cancel()
	require.Equal(t, context.Canceled, <-done)
	require.True(t, r.ReceptionCount() > 0)
}
