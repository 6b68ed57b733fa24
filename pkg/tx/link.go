package tx

import (
	"fmt"
)

// LinkState is the latched telemetry link state.
type LinkState int

// Link states
const (
	LinkSearching LinkState = iota
	LinkLinked
)

func (s LinkState) String() string {
	if s == LinkLinked {
		return "LINKED"
	}
	return "SEARCHING"
}

// CounterMode defines how the radio reception counter behaves.
type CounterMode int

// Counter modes
const (
	// CounterPeriod means the radio resets the counter on every read.
	CounterPeriod CounterMode = iota
	// CounterCumulative means the counter only grows (wrapping at 256).
	// Readings are differenced modulo 256, so a period with 256 or more
	// packets aliases to a smaller count, and exactly 256 reads as 0,
	// dropping the link. At the radio's frame rates a period carries far
	// fewer packets than that.
	CounterCumulative
)

func (m CounterMode) String() string {
	if m == CounterCumulative {
		return "cumulative"
	}
	return "period"
}

// Set implements flag.Value.
func (m *CounterMode) Set(s string) error {
	switch s {
	case "period":
		*m = CounterPeriod
	case "cumulative":
		*m = CounterCumulative
	default:
		return fmt.Errorf("invalid counter mode %q", s)
	}
	return nil
}

// LinkMonitor classifies telemetry reception once per period.
type LinkMonitor struct {
	Mode CounterMode

	haveLink  bool
	lastCount uint8
	primed    bool
}

// Received converts a counter reading into the number of packets
// received during the elapsed period.
func (m *LinkMonitor) Received(count uint8) uint8 {
	if m.Mode != CounterCumulative {
		return count
	}
	received := count - m.lastCount
	if !m.primed {
		received, m.primed = count, true
	}
	m.lastCount = count
	return received
}

// Update latches the link from the packets received in the elapsed
// period and reports the false to true edge. Losing the link clears
// the latch without any notification.
func (m *LinkMonitor) Update(received uint8) (acquired bool) {
	if received == 0 {
		m.haveLink = false
		return false
	}
	acquired = !m.haveLink
	m.haveLink = true
	return
}

// Linked returns the latch.
func (m *LinkMonitor) Linked() bool {
	return m.haveLink
}

// State returns the latch as LinkState.
func (m *LinkMonitor) State() LinkState {
	if m.haveLink {
		return LinkLinked
	}
	return LinkSearching
}
