package hal

import (
	"strconv"
	"strings"
)

// TelemetryFlags is the status bitset reported by the vehicle.
type TelemetryFlags uint8

// Telemetry flags
const (
	FlagGPSOK TelemetryFlags = 1 << iota
	FlagArmOK
	FlagBattOK
	FlagArmed
	FlagPosOK
	FlagVideo
	FlagHybrid
)

var flagNames = []string{"GPS_OK", "ARM_OK", "BATT_OK", "ARMED", "POS_OK", "VIDEO", "HYBRID"}

// Has tests all bits of f.
func (t TelemetryFlags) Has(f TelemetryFlags) bool {
	return t&f == f
}

func (t TelemetryFlags) String() string {
	var names []string
	for i, name := range flagNames {
		if t&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	if rest := t &^ (1<<uint(len(flagNames)) - 1); rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, "|")
}

// ParseFlag parses a single flag name, case-insensitive.
func ParseFlag(s string) (TelemetryFlags, bool) {
	for i, name := range flagNames {
		if strings.EqualFold(s, name) {
			return 1 << uint(i), true
		}
	}
	return 0, false
}

// FlightMode is the autopilot mode reported by the vehicle.
// Values outside the known set are valid and carried through.
type FlightMode uint8

// Flight modes
const (
	ModeStabilize   FlightMode = 0
	ModeAcro        FlightMode = 1
	ModeAltHold     FlightMode = 2
	ModeAuto        FlightMode = 3
	ModeGuided      FlightMode = 4
	ModeLoiter      FlightMode = 5
	ModeRTL         FlightMode = 6
	ModeCircle      FlightMode = 7
	ModeLand        FlightMode = 9
	ModeDrift       FlightMode = 11
	ModeSport       FlightMode = 13
	ModeFlip        FlightMode = 14
	ModeAutoTune    FlightMode = 15
	ModePosHold     FlightMode = 16
	ModeBrake       FlightMode = 17
	ModeThrow       FlightMode = 18
	ModeAvoidADSB   FlightMode = 19
	ModeGuidedNoGPS FlightMode = 20
)

var modeNames = map[FlightMode]string{
	ModeStabilize:   "STABILIZE",
	ModeAcro:        "ACRO",
	ModeAltHold:     "ALT_HOLD",
	ModeAuto:        "AUTO",
	ModeGuided:      "GUIDED",
	ModeLoiter:      "LOITER",
	ModeRTL:         "RTL",
	ModeCircle:      "CIRCLE",
	ModeLand:        "LAND",
	ModeDrift:       "DRIFT",
	ModeSport:       "SPORT",
	ModeFlip:        "FLIP",
	ModeAutoTune:    "AUTOTUNE",
	ModePosHold:     "POSHOLD",
	ModeBrake:       "BRAKE",
	ModeThrow:       "THROW",
	ModeAvoidADSB:   "AVOID_ADSB",
	ModeGuidedNoGPS: "GUIDED_NOGPS",
}

func (m FlightMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "MODE(" + strconv.Itoa(int(m)) + ")"
}

// ParseFlightMode accepts a mode name (case-insensitive) or a number.
func ParseFlightMode(s string) (FlightMode, bool) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, true
		}
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return FlightMode(n), true
	}
	return 0, false
}

// TelemetryStatus is the vehicle status carried in telemetry packets.
type TelemetryStatus struct {
	Flags      TelemetryFlags
	FlightMode FlightMode
}
