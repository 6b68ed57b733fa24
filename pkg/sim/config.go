package sim

import (
	"flag"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/tx"
)

// Config defines the configuration of the simulated board.
type Config struct {
	// EEPROMPath is the EEPROM image file.
	EEPROMPath string
	// Sticks are the stick positions at power on, comma separated.
	Sticks string
	// ClockOffset (ms) is the clock reading at start.
	ClockOffset uint
	// Unlinked starts with the receiver out of range.
	Unlinked bool
	// TelemetryEvery is the number of frames per telemetry packet.
	TelemetryEvery int
	// Tempo scales tune lengths.
	Tempo float64
	// Counter is the reception counter contract.
	Counter tx.CounterMode
}

var defaultConfig = Config{
	EEPROMPath:     DefaultEEPROMPath,
	Sticks:         "center,center,center,center",
	TelemetryEvery: DefaultTelemetryEvery,
	Tempo:          1,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.EEPROMPath, "eeprom", defaultConfig.EEPROMPath, "EEPROM image file.")
	flag.StringVar(&defaultConfig.Sticks, "sticks", defaultConfig.Sticks, "Stick positions at power on: low, center, high or raw values, AETR order.")
	flag.UintVar(&defaultConfig.ClockOffset, "clock-offset", defaultConfig.ClockOffset, "Clock reading (ms) at start.")
	flag.BoolVar(&defaultConfig.Unlinked, "unlinked", defaultConfig.Unlinked, "Start with the receiver out of range.")
	flag.IntVar(&defaultConfig.TelemetryEvery, "telemetry-every", defaultConfig.TelemetryEvery, "Frames per telemetry packet.")
	flag.Float64Var(&defaultConfig.Tempo, "tempo", defaultConfig.Tempo, "Scale of tune lengths, 0 for silence.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewBoard creates the Board.
func (c *Config) NewBoard() (*Board, error) {
	positions, err := ParseSticks(c.Sticks)
	if err != nil {
		return nil, err
	}
	eeprom, err := OpenEEPROM(c.EEPROMPath)
	if err != nil {
		return nil, err
	}
	b := &Board{
		Clock:  NewClock(uint32(c.ClockOffset)),
		Sticks: NewSticks(),
		Radio:  NewRadio(),
		EEPROM: eeprom,
		LEDs:   &LEDs{},
		Buzzer: NewBuzzer(),
	}
	for ch, v := range positions {
		b.Sticks.Set(hal.Channel(ch), v)
	}
	b.Radio.Counter = c.Counter
	b.Radio.TelemetryEvery = c.TelemetryEvery
	b.Radio.SetLinked(!c.Unlinked)
	b.Buzzer.Tempo = c.Tempo
	return b, nil
}
