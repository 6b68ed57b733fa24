package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/txtest/pkg/cli/sh"
	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/sim"
)

func newShell() *sh.Shell {
	board := &sim.Board{
		Sticks: sim.NewSticks(),
		Radio:  sim.NewRadio(),
		LEDs:   &sim.LEDs{},
		Buzzer: sim.NewBuzzer(),
	}
	return sh.New("bench", board, nil)
}

func TestSticksCmd(t *testing.T) {
	s := newShell()
	tests := []struct {
		args []string
		out  string
		fail bool
	}{
		{args: nil, out: "aileron=512 elevator=512 throttle=512 rudder=512"},
		{args: []string{"t", "low"}, out: "aileron=512 elevator=512 throttle=0 rudder=512"},
		{args: []string{"yaw", "high"}, out: "aileron=512 elevator=512 throttle=0 rudder=1023"},
		{args: []string{"1", "10", "20", "30"}, out: "aileron=1 elevator=10 throttle=20 rudder=30"},
		{args: []string{"x", "low"}, fail: true},
		{args: []string{"4", "low"}, fail: true},
		{args: []string{"t"}, fail: true},
		{args: []string{"t", "2000"}, fail: true},
		{args: []string{"1", "2", "3", "2000"}, fail: true},
		{args: nil, out: "aileron=1 elevator=10 throttle=20 rudder=30"},
	}
	for _, test := range tests {
		out, err := s.Exec("sticks", test.args...)
		if test.fail {
			require.Error(t, err, "%v", test.args)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.out, out)
	}
}

func TestLinkCmd(t *testing.T) {
	s := newShell()
	out, err := s.Exec("link", "off")
	require.NoError(t, err)
	require.Equal(t, "receiver out of range", out)
	require.False(t, s.Board.Radio.State().Linked)
	out, err = s.Exec("l", "on")
	require.NoError(t, err)
	require.Equal(t, "receiver linked", out)
	_, err = s.Exec("link", "maybe")
	require.Error(t, err)
}

func TestTelemetryCmds(t *testing.T) {
	s := newShell()
	out, err := s.Exec("mode", "loiter")
	require.NoError(t, err)
	require.Equal(t, "LOITER (5)", out)
	out, err = s.Exec("mode", "42")
	require.NoError(t, err)
	require.Equal(t, "MODE(42) (42)", out)
	_, err = s.Exec("mode", "hover")
	require.Error(t, err)

	out, err = s.Exec("flags", "+GPS_OK", "arm_ok")
	require.NoError(t, err)
	require.Equal(t, "0x03 GPS_OK|ARM_OK", out)
	out, err = s.Exec("flags", "-gps_ok")
	require.NoError(t, err)
	require.Equal(t, "0x02 ARM_OK", out)
	_, err = s.Exec("flags", "+WARP")
	require.Error(t, err)
	require.Equal(t, hal.FlagArmOK, s.Board.Radio.Telemetry().Flags)

	out, err = s.Exec("rssi", "100", "0x40")
	require.NoError(t, err)
	require.Equal(t, "rssi=100 remote=64", out)
	_, err = s.Exec("rssi", "300", "1")
	require.Error(t, err)
	_, err = s.Exec("rssi", "1")
	require.Error(t, err)
}

func TestTonesCmd(t *testing.T) {
	s := newShell()
	s.Board.Buzzer.Tempo = 0
	played := make(chan hal.Tune, 2)
	s.Board.Buzzer.OnPlay = func(t hal.Tune) { played <- t }
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Board.Buzzer.Run(ctx)
	s.Board.Buzzer.PlayTone(hal.TuneStartup)
	s.Board.Buzzer.PlayTone(hal.TuneSearching)
	<-played
	<-played

	out, err := s.Exec("tones")
	require.NoError(t, err)
	require.Equal(t, "startup searching", out)
}
