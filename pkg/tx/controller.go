// Package tx implements the bench front end of the transmitter module:
// the boot-time bind decision, the telemetry link state machine and the
// LED and tone feedback derived from it.
package tx

import (
	"context"
	"io"
	"sync"

	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/hal"
)

// ReportSink receives the report of every period.
type ReportSink interface {
	PublishReport(context.Context, *Report) error
}

// Controller owns all state of the front end. It is driven by a single
// framework.Loop and must not be called from other goroutines, except
// LastReport.
type Controller struct {
	Config Config
	Board  hal.Board
	Output io.Writer
	Sink   ReportSink

	link    LinkMonitor
	yellow  LEDPattern
	green   LEDPattern
	prev    hal.TelemetryStatus
	counter uint16
	report  Report

	booted   bool
	bindMode BindMode
	protocol Protocol

	lastLock sync.RWMutex
	last     *Report
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddStarter(fx.ControlFunc(c.start))
	loop.AddController(fx.PrLvSense, fx.ControlFunc(c.sense))
	loop.AddController(fx.PrLvControl, c)
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.publish))
	loop.AddTicker(c)
}

func (c *Controller) start(fx.ControlContext) error {
	c.Boot()
	return nil
}

// sense samples the diagnostics and emits the diagnostic line.
func (c *Controller) sense(fx.ControlContext) error {
	c.report = Report{Counter: c.counter}
	c.counter++
	c.sample(&c.report)
	_, err := c.report.WriteTo(c.Output)
	return err
}

// Control implements Controller.
func (c *Controller) Control(fx.ControlContext) error {
	c.report.Feedback = c.applyFeedback(c.report.Received, c.report.Status)
	r := c.report
	c.lastLock.Lock()
	c.last = &r
	c.lastLock.Unlock()
	return nil
}

func (c *Controller) publish(cc fx.ControlContext) error {
	if c.Sink == nil {
		return nil
	}
	return c.Sink.PublishReport(cc.Context(), &c.report)
}

// LastReport returns a copy of the latest completed report.
func (c *Controller) LastReport() (Report, bool) {
	c.lastLock.RLock()
	defer c.lastLock.RUnlock()
	if c.last == nil {
		return Report{}, false
	}
	return *c.last, true
}

// BindMode returns the boot decision.
func (c *Controller) BindMode() BindMode {
	return c.bindMode
}

// LinkState returns the latched link state.
func (c *Controller) LinkState() LinkState {
	return c.link.State()
}

// Patterns returns the active yellow and green patterns.
func (c *Controller) Patterns() (yellow, green LEDPattern) {
	return c.yellow, c.green
}
