package sim

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/tx"
)

// Frame intervals of the protocols.
const (
	FrameDSM2 = 22 * time.Millisecond
	FrameDSMX = 11 * time.Millisecond
)

// DefaultTelemetryEvery is the number of frames per telemetry packet.
const DefaultTelemetryEvery = 4

// Radio implements hal.Radio. Run produces frames in the background
// once a session is started, the way the radio interrupt does.
type Radio struct {
	// Counter is the contract of ReceptionCount.
	Counter tx.CounterMode
	// TelemetryEvery is the number of frames per telemetry packet.
	TelemetryEvery int

	lock       sync.Mutex
	started    chan struct{}
	startOnce  sync.Once
	binding    bool
	dsm2       bool
	linked     bool
	status     hal.TelemetryStatus
	rssi       uint8
	remoteRSSI uint8

	frames    uint32
	txPackets uint16
	rxPackets uint16
	txPPS     uint16
	rxPPS     uint16
	received  uint8
}

// RadioState is a snapshot of the radio.
type RadioState struct {
	Started    bool
	Binding    bool
	DSM2       bool
	Linked     bool
	Status     hal.TelemetryStatus
	RSSI       uint8
	RemoteRSSI uint8
	TxPPS      uint16
	RxPPS      uint16
}

// NewRadio creates a Radio with a linked receiver.
func NewRadio() *Radio {
	return &Radio{
		TelemetryEvery: DefaultTelemetryEvery,
		started:        make(chan struct{}),
		linked:         true,
		rssi:           200,
		remoteRSSI:     180,
	}
}

// BeginBind implements hal.Radio.
func (r *Radio) BeginBind(dsm2 bool) {
	r.begin(true, dsm2)
}

// BeginSession implements hal.Radio.
func (r *Radio) BeginSession(dsm2 bool) {
	r.begin(false, dsm2)
}

func (r *Radio) begin(bind, dsm2 bool) {
	r.startOnce.Do(func() {
		r.lock.Lock()
		r.binding, r.dsm2 = bind, dsm2
		r.lock.Unlock()
		glog.Infof("radio started: bind=%v dsm2=%v", bind, dsm2)
		close(r.started)
	})
}

// FrameInterval returns the interval between frames.
func (r *Radio) FrameInterval() time.Duration {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.dsm2 {
		return FrameDSM2
	}
	return FrameDSMX
}

// Run implements Runnable.
func (r *Radio) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.started:
	}
	frameTicker := time.NewTicker(r.FrameInterval())
	defer frameTicker.Stop()
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frameTicker.C:
			r.frame()
		case <-secTicker.C:
			r.second()
		}
	}
}

// frame transmits one frame. When the receiver is linked, it gets the
// frame and replies a telemetry packet every TelemetryEvery frames.
func (r *Radio) frame() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.frames++
	r.txPackets++
	if !r.linked {
		return
	}
	r.rxPackets++
	if every := r.TelemetryEvery; every <= 1 || r.frames%uint32(every) == 0 {
		r.received++
	}
}

// second publishes the packet rates of the elapsed second.
func (r *Radio) second() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.txPPS, r.rxPPS = r.txPackets, r.rxPackets
	r.txPackets, r.rxPackets = 0, 0
}

// ReceptionCount implements hal.RadioStats.
func (r *Radio) ReceptionCount() uint8 {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := r.received
	if r.Counter == tx.CounterPeriod {
		r.received = 0
	}
	return count
}

// TransmitPPS implements hal.RadioStats.
func (r *Radio) TransmitPPS() uint16 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.txPPS
}

// ReceptionPPS implements hal.RadioStats.
func (r *Radio) ReceptionPPS() uint16 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rxPPS
}

// RSSI implements hal.RadioStats.
func (r *Radio) RSSI() uint8 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rssi
}

// RemoteRSSI implements hal.RadioStats.
func (r *Radio) RemoteRSSI() uint8 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.remoteRSSI
}

// Telemetry implements hal.Radio.
func (r *Radio) Telemetry() hal.TelemetryStatus {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.status
}

// SetLinked connects or disconnects the receiver.
func (r *Radio) SetLinked(linked bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.linked = linked
}

// SetRSSI sets the local and remote signal strength.
func (r *Radio) SetRSSI(local, remote uint8) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.rssi, r.remoteRSSI = local, remote
}

// SetFlightMode sets the flight mode reported in telemetry.
func (r *Radio) SetFlightMode(mode hal.FlightMode) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.status.FlightMode = mode
}

// UpdateFlags sets and clears telemetry flags.
func (r *Radio) UpdateFlags(set, clear hal.TelemetryFlags) hal.TelemetryFlags {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.status.Flags = (r.status.Flags &^ clear) | set
	return r.status.Flags
}

// State returns a snapshot.
func (r *Radio) State() RadioState {
	var started bool
	select {
	case <-r.started:
		started = true
	default:
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return RadioState{
		Started:    started,
		Binding:    r.binding,
		DSM2:       r.dsm2,
		Linked:     r.linked,
		Status:     r.status,
		RSSI:       r.rssi,
		RemoteRSSI: r.remoteRSSI,
		TxPPS:      r.txPPS,
		RxPPS:      r.rxPPS,
	}
}
