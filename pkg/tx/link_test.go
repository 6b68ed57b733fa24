package tx

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkMonitorUpdate(t *testing.T) {
	var m LinkMonitor
	require.Equal(t, LinkSearching, m.State())

	steps := []struct {
		received uint8
		acquired bool
		state    LinkState
	}{
		{0, false, LinkSearching},
		{0, false, LinkSearching},
		{12, true, LinkLinked},
		{30, false, LinkLinked},
		{1, false, LinkLinked},
		{0, false, LinkSearching},
		{0, false, LinkSearching},
		{5, true, LinkLinked},
	}
	for i, step := range steps {
		require.Equal(t, step.acquired, m.Update(step.received), "step %d", i)
		require.Equal(t, step.state, m.State(), "step %d", i)
		require.Equal(t, step.state == LinkLinked, m.Linked(), "step %d", i)
	}
}

func TestLinkMonitorReceived(t *testing.T) {
	t.Run("period", func(t *testing.T) {
		var m LinkMonitor
		require.Equal(t, uint8(7), m.Received(7))
		require.Equal(t, uint8(7), m.Received(7))
		require.Equal(t, uint8(0), m.Received(0))
	})
	t.Run("cumulative", func(t *testing.T) {
		m := LinkMonitor{Mode: CounterCumulative}
		reads := []struct {
			count, expect uint8
		}{
			{0, 0},
			{0, 0},
			{40, 40},
			{240, 200},
			{240, 0},
			{10, 26},
		}
		for i, r := range reads {
			require.Equal(t, r.expect, m.Received(r.count), "read %d", i)
		}
	})
	t.Run("cumulative full wrap aliases to zero", func(t *testing.T) {
		m := LinkMonitor{Mode: CounterCumulative}
		m.Received(10)
		received := m.Received(10)
		require.Equal(t, uint8(0), received)
		require.False(t, m.Update(received))
		require.Equal(t, LinkSearching, m.State())
	})
	t.Run("cumulative first read", func(t *testing.T) {
		m := LinkMonitor{Mode: CounterCumulative}
		require.Equal(t, uint8(9), m.Received(9))
	})
}

func TestCounterModeFlag(t *testing.T) {
	var mode CounterMode
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&mode, "reception-counter", "")
	require.NoError(t, fs.Parse([]string{"-reception-counter", "cumulative"}))
	require.Equal(t, CounterCumulative, mode)
	require.Equal(t, "cumulative", mode.String())
	require.Error(t, mode.Set("sometimes"))
	require.NoError(t, mode.Set("period"))
	require.Equal(t, CounterPeriod, mode)
}
