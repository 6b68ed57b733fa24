package comm

import (
	"context"
	"io"
	"sync"

	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/msgs"
	"github.com/robotalks/txtest/pkg/tx"
)

// Publisher fans out event messages to multiple PacketWriters.
// A failing writer doesn't prevent the others from receiving the packet.
type Publisher struct {
	Device  string
	Writers []PacketWriter

	sendLock sync.Mutex
	seq      uint32
}

// NewPublisher creates a Publisher.
func NewPublisher(device string, writers ...PacketWriter) *Publisher {
	return &Publisher{Device: device, Writers: writers}
}

// Add adds more writers.
func (p *Publisher) Add(writers ...PacketWriter) *Publisher {
	p.Writers = append(p.Writers, writers...)
	return p
}

// SendEvent sends a message which must be an event.
func (p *Publisher) SendEvent(msg msgs.SerializableMessage) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !typed.IsEvent() {
		return msgs.ErrNotEvent
	}
	return p.SendTyped(typed)
}

// SendTyped sends a Typed message, assigning the next sequence number.
func (p *Publisher) SendTyped(typed *msgs.Typed) error {
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	p.seq++
	typed.Sequence = p.seq
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	var errs fx.AggregatedError
	for _, w := range p.Writers {
		errs.Add(w.WritePacket(pkt))
	}
	return errs.Aggregate()
}

// PublishReport implements tx.ReportSink.
func (p *Publisher) PublishReport(ctx context.Context, r *tx.Report) error {
	return p.SendEvent(msgs.NewStatusReport(p.Device, r))
}

// Close closes all writers implementing io.Closer.
func (p *Publisher) Close() error {
	var errs fx.AggregatedError
	for _, w := range p.Writers {
		if closer, ok := w.(io.Closer); ok {
			errs.Add(closer.Close())
		}
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (p *Publisher) AddToLoop(loop *fx.Loop) {
	for _, w := range p.Writers {
		if adder, ok := w.(fx.LoopAdder); ok {
			loop.Add(adder)
		} else if runnable, ok := w.(fx.Runnable); ok {
			loop.AddRunnable(runnable)
		}
	}
}
