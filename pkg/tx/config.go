package tx

import (
	"flag"
	"fmt"
	"io/ioutil"
	"math"

	"github.com/robotalks/txtest/pkg/hal"
)

// Config defines the configurations for the controller.
type Config struct {
	// Stick thresholds of the bind decision, in raw ADC units.
	LowThreshold  uint
	HighThreshold uint
	// Stick channels, AETR order by default.
	ThrottleChannel uint
	YawChannel      uint
	// SettleDelay (ms) waited before sampling the sticks.
	SettleDelay uint
	// ProtocolOffset is the storage offset of the protocol selector.
	ProtocolOffset uint
	// ReceptionCounter is the contract of the radio reception counter.
	ReceptionCounter CounterMode
}

var defaultConfig = Config{
	LowThreshold:    100,
	HighThreshold:   900,
	ThrottleChannel: 2,
	YawChannel:      3,
	SettleDelay:     200,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.UintVar(&defaultConfig.LowThreshold, "stick-low", defaultConfig.LowThreshold, "Stick reading below which a stick is low.")
	flag.UintVar(&defaultConfig.HighThreshold, "stick-high", defaultConfig.HighThreshold, "Stick reading above which a stick is high.")
	flag.UintVar(&defaultConfig.ThrottleChannel, "throttle-ch", defaultConfig.ThrottleChannel, "ADC channel of the throttle stick.")
	flag.UintVar(&defaultConfig.YawChannel, "yaw-ch", defaultConfig.YawChannel, "ADC channel of the yaw stick.")
	flag.UintVar(&defaultConfig.SettleDelay, "settle-ms", defaultConfig.SettleDelay, "Delay (ms) before reading the sticks at boot.")
	flag.UintVar(&defaultConfig.ProtocolOffset, "protocol-offset", defaultConfig.ProtocolOffset, "EEPROM offset of the protocol selector.")
	flag.Var(&defaultConfig.ReceptionCounter, "reception-counter", "Reception counter contract: period or cumulative.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the values fit the board: thresholds and the
// protocol offset are 16-bit, channels must be sampled channels.
func (c *Config) Validate() error {
	if c.LowThreshold > math.MaxUint16 {
		return fmt.Errorf("stick-low %d out of range", c.LowThreshold)
	}
	if c.HighThreshold > math.MaxUint16 {
		return fmt.Errorf("stick-high %d out of range", c.HighThreshold)
	}
	if c.LowThreshold > c.HighThreshold {
		return fmt.Errorf("stick-low %d above stick-high %d", c.LowThreshold, c.HighThreshold)
	}
	if c.ThrottleChannel >= hal.NumChannels {
		return fmt.Errorf("throttle-ch %d out of range", c.ThrottleChannel)
	}
	if c.YawChannel >= hal.NumChannels {
		return fmt.Errorf("yaw-ch %d out of range", c.YawChannel)
	}
	if c.ProtocolOffset > math.MaxUint16 {
		return fmt.Errorf("protocol-offset %d out of range", c.ProtocolOffset)
	}
	return nil
}

// NewController creates a controller using the config.
func (c *Config) NewController(board hal.Board) *Controller {
	ctl := NewController(board)
	ctl.Config = *c
	ctl.link.Mode = c.ReceptionCounter
	return ctl
}

// NewController creates a Controller with default config.
func NewController(board hal.Board) *Controller {
	ctl := &Controller{
		Config: defaultConfig,
		Board:  board,
		Output: ioutil.Discard,
	}
	ctl.link.Mode = ctl.Config.ReceptionCounter
	return ctl
}
