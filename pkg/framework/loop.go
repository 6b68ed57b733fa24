package framework

import (
	"context"
	"log"

	"github.com/golang/glog"
)

// Defaults of Loop timing, in milliseconds.
const (
	DefaultPeriod       uint32 = 1000
	DefaultTickInterval uint32 = 8
)

// Loop is a cooperative single-threaded scheduler. Controllers run
// once per Period, anchored to an absolute deadline which always
// advances by exactly Period, so the cost of an iteration never
// accumulates as drift. While waiting for the deadline, tickers are
// invoked on every spin.
type Loop struct {
	Clock        Clock
	Period       uint32
	TickInterval uint32

	starters    []Controller
	controllers [PriorityLevels][]Controller
	tickers     []Ticker
	runners     []Runnable
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopIteration struct {
	ctx           context.Context
	time          uint32
	deadline      uint32
	priorityLevel int
}

// NewLoop creates a Loop.
func NewLoop(clock Clock) *Loop {
	return &Loop{
		Clock:        clock,
		Period:       DefaultPeriod,
		TickInterval: DefaultTickInterval,
	}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddStarter registers controllers invoked exactly once, before the
// first deadline is anchored.
func (l *Loop) AddStarter(ctls ...Controller) *Loop {
	l.starters = append(l.starters, ctls...)
	return l
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddTicker registers tickers invoked while waiting.
func (l *Loop) AddTicker(tickers ...Ticker) *Loop {
	l.tickers = append(l.tickers, tickers...)
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. It returns only when ctx is done, or a
// starter fails.
func (l *Loop) Run(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(ctx)
	runner := NewRunnerWith(subCtx)
	runner.Go(l.runners...)
	defer runner.Wait()
	defer cancel()

	period := l.Period
	if period == 0 {
		period = DefaultPeriod
	}

	now := l.Clock.Millis()
	start := &loopIteration{ctx: ctx, time: now, deadline: now}
	for _, ctl := range l.starters {
		if err := ctl.Control(start); err != nil {
			return err
		}
	}

	deadline := l.Clock.Millis() + period
	for {
		l.runIteration(ctx, deadline)
		WaitUntil(l.Clock, deadline, l.TickInterval, l.tick)
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		deadline += period
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail(ctx context.Context) {
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalln(err)
	}
}

func (l *Loop) runIteration(ctx context.Context, deadline uint32) {
	iter := &loopIteration{ctx: ctx, time: l.Clock.Millis(), deadline: deadline}
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		runControllers(iter, l.controllers[i])
	}
}

func (l *Loop) tick(now uint32) {
	for _, t := range l.tickers {
		t.Tick(now)
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Millis() uint32 {
	return t.time
}

func (t *loopIteration) Deadline() uint32 {
	return t.deadline
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}

func runControllers(iter *loopIteration, ctls []Controller) {
	for _, ctl := range ctls {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
}
