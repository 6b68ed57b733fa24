package comm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/msgs"
	"github.com/robotalks/txtest/pkg/tx"
)

type recorder struct {
	pkts   [][]byte
	err    error
	closed bool
}

func (r *recorder) WritePacket(pkt []byte) error {
	r.pkts = append(r.pkts, pkt)
	return r.err
}

func (r *recorder) Close() error {
	r.closed = true
	return nil
}

func decodeReport(t *testing.T, pkt []byte) (*msgs.Typed, *msgs.StatusReport) {
	typed, err := msgs.DecodeTyped(pkt)
	require.NoError(t, err)
	msg, err := typed.Decode()
	require.NoError(t, err)
	report, ok := msg.(*msgs.StatusReport)
	require.True(t, ok)
	return typed, report
}

func TestPublisherFanOut(t *testing.T) {
	failing := &recorder{err: errors.New("broker down")}
	ok := &recorder{}
	p := NewPublisher("bench", failing, ok)

	err := p.PublishReport(context.Background(), &tx.Report{Counter: 7})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broker down")
	require.Len(t, failing.pkts, 1)
	require.Len(t, ok.pkts, 1)

	require.NoError(t, p.Add().Close())
	require.True(t, ok.closed)

	ok.pkts = nil
	p.Writers = []PacketWriter{ok}
	require.NoError(t, p.PublishReport(context.Background(), &tx.Report{Counter: 8}))
	typed, report := decodeReport(t, ok.pkts[0])
	require.Equal(t, uint32(2), typed.Sequence)
	require.Equal(t, "bench", report.Device)
	require.Equal(t, uint32(8), report.Counter)
	require.Equal(t, "8: ADC=[0 0 0 0] TX:0 NOSIGNAL", report.Line)
}

type runnableWriter struct {
	PacketWriterFunc
	ran chan struct{}
}

func (w *runnableWriter) Run(ctx context.Context) error {
	close(w.ran)
	<-ctx.Done()
	return ctx.Err()
}

func TestPublisherAddToLoop(t *testing.T) {
	w := &runnableWriter{
		PacketWriterFunc: func([]byte) error { return nil },
		ran:              make(chan struct{}),
	}
	p := NewPublisher("bench", w)
	loop := fx.NewLoop(&tickingClock{})
	loop.Add(p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	<-w.ran
	cancel()
	require.Equal(t, context.Canceled, <-done)
}

type tickingClock struct {
	now uint32
}

func (c *tickingClock) Millis() uint32 {
	return c.now
}

func (c *tickingClock) Sleep(ms uint32) {
	c.now += ms
}
