package sim

import (
	"context"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/golang/glog"

	"github.com/robotalks/txtest/pkg/hal"
)

// Tune lengths at Tempo 1.
var tuneDurations = map[hal.Tune]time.Duration{
	hal.TuneStartup:      600 * time.Millisecond,
	hal.TuneSearching:    300 * time.Millisecond,
	hal.TuneLinkAcquired: 300 * time.Millisecond,
	hal.TuneAltHold:      200 * time.Millisecond,
	hal.TuneLoiter:       200 * time.Millisecond,
}

// HistorySize is the number of tunes kept in history.
const HistorySize = 16

// Buzzer implements hal.Buzzer. PlayTone only enqueues, Run plays the
// queued tunes in order.
type Buzzer struct {
	// Tempo scales tune lengths, 0 plays instantly.
	Tempo float64
	// OnPlay is invoked when a tune starts playing.
	OnPlay func(hal.Tune)

	queue *queue.Queue

	lock    sync.Mutex
	history []hal.Tune
}

// NewBuzzer creates a Buzzer.
func NewBuzzer() *Buzzer {
	return &Buzzer{Tempo: 1, queue: queue.New(8)}
}

// PlayTone implements hal.Buzzer.
func (b *Buzzer) PlayTone(t hal.Tune) {
	if err := b.queue.Put(t); err != nil {
		glog.Warningf("tune %s dropped: %v", t, err)
	}
}

// Pending returns the number of queued tunes.
func (b *Buzzer) Pending() int {
	return int(b.queue.Len())
}

// History returns the recently played tunes, oldest first.
func (b *Buzzer) History() []hal.Tune {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([]hal.Tune(nil), b.history...)
}

// Run implements Runnable.
func (b *Buzzer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		b.queue.Dispose()
	}()
	for {
		items, err := b.queue.Get(1)
		if err != nil {
			if err == queue.ErrDisposed {
				return ctx.Err()
			}
			return err
		}
		for _, item := range items {
			b.play(ctx, item.(hal.Tune))
		}
	}
}

func (b *Buzzer) play(ctx context.Context, t hal.Tune) {
	glog.V(1).Infof("tune %s", t)
	b.lock.Lock()
	b.history = append(b.history, t)
	if len(b.history) > HistorySize {
		b.history = b.history[len(b.history)-HistorySize:]
	}
	b.lock.Unlock()
	if b.OnPlay != nil {
		b.OnPlay(t)
	}
	if d := time.Duration(float64(tuneDurations[t]) * b.Tempo); d > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
}
