// Package sim simulates the transmitter board on a host, so the front
// end can run on a bench without hardware.
package sim

import (
	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/hal"
)

// Board implements hal.Board with simulated peripherals.
type Board struct {
	*Clock
	*Sticks
	*Radio
	*EEPROM
	*LEDs
	*Buzzer
}

var _ hal.Board = (*Board)(nil)

// AddToLoop implements LoopAdder.
func (b *Board) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("radio", b.Radio), fx.NamedRun("buzzer", b.Buzzer))
}
