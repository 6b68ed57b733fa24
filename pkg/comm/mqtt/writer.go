package mqtt

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"
)

// Defaults of Writer.
const (
	DefaultTimeout       = 200 * time.Millisecond
	DefaultRetryInterval = 5 * time.Second
)

var (
	// ErrNotConnected indicates the client is not connected to the broker.
	ErrNotConnected = errors.New("mqtt not connected")
	// ErrTimeout indicates the publish was not acknowledged in time.
	ErrTimeout = errors.New("mqtt publish timeout")
)

// Writer implements PacketWriter by publishing to
// <prefix><device>/status. The retained <prefix><device>/online
// topic is "1" while connected and "0" otherwise.
type Writer struct {
	Queue         *Queue
	Topic         string
	OnlineTopic   string
	Timeout       time.Duration
	RetryInterval time.Duration
}

// NewWriter creates a Writer.
func NewWriter(brokerURL, device string) (*Writer, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		Topic:         device + "/status",
		OnlineTopic:   device + "/online",
		Timeout:       DefaultTimeout,
		RetryInterval: DefaultRetryInterval,
	}
	opts.SetBinaryWill(topicPrefix+w.OnlineTopic, []byte("0"), 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("txtest:" + device)
	}
	w.Queue = NewQueue(opts, topicPrefix)
	w.Queue.OnConnect = func(q *Queue) {
		q.PubWith(w.OnlineTopic, []byte("1"), 1, true)
	}
	return w, nil
}

// WritePacket implements PacketWriter.
func (w *Writer) WritePacket(pkt []byte) error {
	if !w.Queue.Client.IsConnected() {
		return ErrNotConnected
	}
	token := w.Queue.Pub(w.Topic, pkt)
	if !token.WaitTimeout(w.Timeout) {
		return ErrTimeout
	}
	return token.Error()
}

// Run implements Runnable.
func (w *Writer) Run(ctx context.Context) error {
	if err := w.connect(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Queue.PubWith(w.OnlineTopic, []byte("0"), 1, true).WaitTimeout(w.Timeout)
	w.Queue.Close()
	return ctx.Err()
}

// connect retries until the first connection succeeds. Later
// connection losses are handled by auto reconnect.
func (w *Writer) connect(ctx context.Context) error {
	for {
		token := w.Queue.Connect()
		for !token.WaitTimeout(time.Second) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		err := token.Error()
		if err == nil {
			return nil
		}
		glog.Warningf("mqtt connect error: %v, retry in %v", err, w.RetryInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.RetryInterval):
		}
	}
}
