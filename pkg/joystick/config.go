package joystick

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/txtest/pkg/hal"
)

// Config defines the configurations for the feeder.
type Config struct {
	Enabled     bool
	DeviceIndex int
	// Axes maps stick channels to joystick axes, AETR order.
	Axes string
	// Invert lists the channels whose axis is reversed.
	Invert  string
	Verbose bool
}

var defaultConfig = Config{
	DeviceIndex: -1,
	Axes:        "0,1,2,3",
	Invert:      "1,2",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "joystick", defaultConfig.Enabled, "Drive the sticks from a joystick.")
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick-index", defaultConfig.DeviceIndex, "Joystick index, -1 for auto detection.")
	flag.StringVar(&defaultConfig.Axes, "joystick-axes", defaultConfig.Axes, "Joystick axis of each stick channel, AETR order.")
	flag.StringVar(&defaultConfig.Invert, "joystick-invert", defaultConfig.Invert, "Stick channels with reversed axis.")
	flag.BoolVar(&defaultConfig.Verbose, "joystick-verbose", defaultConfig.Verbose, "Log joystick events.")
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

// NewFeeder creates a feeder using the config.
func (c *Config) NewFeeder(sticks StickSetter) (*Feeder, error) {
	f := NewFeeder(sticks)
	f.DeviceIndex = c.DeviceIndex
	f.Verbose = c.Verbose
	axes, err := parseInts(c.Axes)
	if err != nil {
		return nil, err
	}
	if len(axes) != hal.NumChannels {
		return nil, fmt.Errorf("expect %d axes, got %d", hal.NumChannels, len(axes))
	}
	copy(f.Axes[:], axes)
	inverted, err := parseInts(c.Invert)
	if err != nil {
		return nil, err
	}
	for _, ch := range inverted {
		if ch < 0 || ch >= hal.NumChannels {
			return nil, fmt.Errorf("invalid channel %d", ch)
		}
		f.Invert[ch] = true
	}
	return f, nil
}

func parseInts(s string) (values []int, err error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	for _, token := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", token)
		}
		values = append(values, n)
	}
	return values, nil
}
