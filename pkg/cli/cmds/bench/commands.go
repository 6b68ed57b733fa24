// Package bench provides shell commands driving the simulated board.
package bench

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/txtest/pkg/cli/sh"
	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/sim"
)

var channelNames = []string{"aileron", "elevator", "throttle", "rudder"}

func parseChannel(s string) (hal.Channel, error) {
	for ch, name := range channelNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return hal.Channel(ch), nil
		}
	}
	if strings.EqualFold(s, "yaw") {
		return 3, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n >= hal.NumChannels {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	return hal.Channel(n), nil
}

func formatSticks(values [hal.NumChannels]uint16) string {
	parts := make([]string, len(values))
	for ch, v := range values {
		parts[ch] = fmt.Sprintf("%s=%d", channelNames[ch], v)
	}
	return strings.Join(parts, " ")
}

func parseUint8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return uint8(n), nil
}

var (
	// SticksCmd prints or moves the sticks.
	SticksCmd = sh.Command{
		Name:    "sticks",
		Aliases: []string{"s"},
		Help:    "[CHANNEL VALUE | A E T R], VALUE is low, center, high or raw",
		Run: func(s *sh.Shell, args []string) (string, error) {
			switch len(args) {
			case 0:
			case 2:
				ch, err := parseChannel(args[0])
				if err != nil {
					return "", err
				}
				v, err := sim.ParseStick(args[1])
				if err != nil {
					return "", err
				}
				if err := s.Board.Sticks.Set(ch, v); err != nil {
					return "", err
				}
			case hal.NumChannels:
				values, err := sim.ParseSticks(strings.Join(args, ","))
				if err != nil {
					return "", err
				}
				for ch, v := range values {
					if err := s.Board.Sticks.Set(hal.Channel(ch), v); err != nil {
						return "", err
					}
				}
			default:
				return "", fmt.Errorf("expect 0, 2 or %d arguments", hal.NumChannels)
			}
			return formatSticks(s.Board.Sticks.Positions()), nil
		},
	}

	// LinkCmd connects or disconnects the receiver.
	LinkCmd = sh.Command{
		Name:    "link",
		Aliases: []string{"l"},
		Help:    "[on|off]",
		Run: func(s *sh.Shell, args []string) (string, error) {
			if len(args) > 0 {
				switch strings.ToLower(args[0]) {
				case "on", "1", "up":
					s.Board.Radio.SetLinked(true)
				case "off", "0", "down":
					s.Board.Radio.SetLinked(false)
				default:
					return "", fmt.Errorf("invalid link state %q", args[0])
				}
			}
			state := s.Board.Radio.State()
			if !state.Linked {
				return "receiver out of range", nil
			}
			return "receiver linked", nil
		},
	}

	// ModeCmd sets the flight mode reported in telemetry.
	ModeCmd = sh.Command{
		Name:    "mode",
		Aliases: []string{"m"},
		Help:    "[NAME|NUMBER]",
		Run: func(s *sh.Shell, args []string) (string, error) {
			if len(args) > 0 {
				mode, ok := hal.ParseFlightMode(args[0])
				if !ok {
					return "", fmt.Errorf("invalid flight mode %q", args[0])
				}
				s.Board.Radio.SetFlightMode(mode)
			}
			mode := s.Board.Radio.Telemetry().FlightMode
			return fmt.Sprintf("%s (%d)", mode, uint8(mode)), nil
		},
	}

	// FlagsCmd sets or clears telemetry flags.
	FlagsCmd = sh.Command{
		Name:    "flags",
		Aliases: []string{"f"},
		Help:    "[+FLAG|-FLAG ...], e.g. +GPS_OK -ARMED",
		Run: func(s *sh.Shell, args []string) (string, error) {
			var set, clear hal.TelemetryFlags
			for _, arg := range args {
				name, add := strings.TrimPrefix(arg, "+"), true
				if strings.HasPrefix(arg, "-") {
					name, add = arg[1:], false
				}
				f, ok := hal.ParseFlag(name)
				if !ok {
					return "", fmt.Errorf("invalid flag %q", name)
				}
				if add {
					set |= f
				} else {
					clear |= f
				}
			}
			flags := s.Board.Radio.UpdateFlags(set, clear)
			return fmt.Sprintf("0x%02x %s", uint8(flags), flags), nil
		},
	}

	// RSSICmd sets the signal strength.
	RSSICmd = sh.Command{
		Name: "rssi",
		Help: "[LOCAL REMOTE]",
		Run: func(s *sh.Shell, args []string) (string, error) {
			switch len(args) {
			case 0:
			case 2:
				local, err := parseUint8(args[0])
				if err != nil {
					return "", err
				}
				remote, err := parseUint8(args[1])
				if err != nil {
					return "", err
				}
				s.Board.Radio.SetRSSI(local, remote)
			default:
				return "", fmt.Errorf("expect LOCAL REMOTE")
			}
			state := s.Board.Radio.State()
			return fmt.Sprintf("rssi=%d remote=%d", state.RSSI, state.RemoteRSSI), nil
		},
	}

	// TonesCmd prints the recently played tunes.
	TonesCmd = sh.Command{
		Name:    "tones",
		Aliases: []string{"t"},
		Help:    "print recently played tunes",
		Run: func(s *sh.Shell, args []string) (string, error) {
			history := s.Board.Buzzer.History()
			names := make([]string, len(history))
			for i, t := range history {
				names[i] = t.String()
			}
			return strings.Join(names, " "), nil
		},
	}
)

func init() {
	sh.AddCmds(
		&SticksCmd,
		&LinkCmd,
		&ModeCmd,
		&FlagsCmd,
		&RSSICmd,
		&TonesCmd,
	)
}
