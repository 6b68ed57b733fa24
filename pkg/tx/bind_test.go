package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/txtest/pkg/hal"
)

func TestDetectBindMode(t *testing.T) {
	testCases := []struct {
		name          string
		throttle, yaw uint16
		expect        BindMode
	}{
		{"dsm2", 50, 950, BindDSM2},
		{"dsmx", 50, 50, BindDSMX},
		{"centered", 500, 500, BindNormal},
		{"throttle at threshold", 100, 950, BindNormal},
		{"yaw at high threshold", 50, 900, BindNormal},
		{"yaw at low threshold", 50, 100, BindNormal},
		{"throttle high yaw high", 950, 950, BindNormal},
		{"throttle high yaw low", 950, 50, BindNormal},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, DetectBindMode(tc.throttle, tc.yaw, 100, 900))
		})
	}
}

func TestBoot(t *testing.T) {
	testCases := []struct {
		name          string
		throttle, yaw uint16
		stored        *byte
		expect        BindMode
		protocol      Protocol
		binds         []bool
		sessions      []bool
		writes        int
		calls         []string
	}{
		{
			name:     "dsm2 bind",
			throttle: 50, yaw: 950,
			expect:   BindDSM2,
			protocol: ProtocolDSM2,
			binds:    []bool{true},
			writes:   1,
			calls:    []string{"store(0,1)", "bind(true)"},
		},
		{
			name:     "dsmx bind overwrites dsm2",
			throttle: 50, yaw: 50,
			stored:   byteOf(1),
			expect:   BindDSMX,
			protocol: ProtocolDSMX,
			binds:    []bool{false},
			writes:   1,
			calls:    []string{"store(0,0)", "bind(false)"},
		},
		{
			name:     "normal with stored dsm2",
			throttle: 500, yaw: 500,
			stored:   byteOf(1),
			expect:   BindNormal,
			protocol: ProtocolDSM2,
			sessions: []bool{true},
			calls:    []string{"session(true)"},
		},
		{
			name:     "normal with stored dsmx",
			throttle: 500, yaw: 500,
			stored:   byteOf(0),
			expect:   BindNormal,
			protocol: ProtocolDSMX,
			sessions: []bool{false},
			calls:    []string{"session(false)"},
		},
		{
			name:     "normal defaults to dsmx",
			throttle: 500, yaw: 500,
			expect:   BindNormal,
			protocol: ProtocolDSMX,
			sessions: []bool{false},
			calls:    []string{"session(false)"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newFakeBoard()
			b.adc[2], b.adc[3] = tc.throttle, tc.yaw
			if tc.stored != nil {
				b.eeprom[0] = *tc.stored
			}
			c := NewConfig().NewController(b)
			require.Equal(t, tc.expect, c.Boot())
			require.Equal(t, tc.protocol, c.Protocol())
			require.Equal(t, tc.binds, b.binds)
			require.Equal(t, tc.sessions, b.sessions)
			require.Equal(t, tc.writes, b.writes)
			// the selector is persisted before the radio starts binding.
			require.Equal(t, tc.calls, b.calls)
			if tc.writes > 0 {
				require.Equal(t, byte(tc.protocol), b.eeprom[0])
			}
			require.Equal(t, []hal.Tune{hal.TuneStartup}, b.tones)
		})
	}
}

func TestBootSettlesAndRunsOnce(t *testing.T) {
	b := newFakeBoard()
	b.now = 1000
	b.adc[2], b.adc[3] = 50, 950
	c := NewConfig().NewController(b)
	require.Equal(t, BindDSM2, c.Boot())
	require.Len(t, b.sampleAt, 2)
	for _, at := range b.sampleAt {
		require.Equal(t, uint32(1200), at)
	}

	// sticks moved after boot do not change the decision.
	b.adc[2], b.adc[3] = 500, 500
	require.Equal(t, BindDSM2, c.Boot())
	require.Len(t, b.binds, 1)
	require.Empty(t, b.sessions)
	require.Equal(t, 1, b.writes)
	require.Len(t, b.tones, 1)
}

func TestBootConfig(t *testing.T) {
	b := newFakeBoard()
	b.adc[0], b.adc[1] = 10, 10
	b.eeprom[7] = 1
	conf := NewConfig()
	conf.ThrottleChannel, conf.YawChannel = 0, 1
	conf.ProtocolOffset = 7
	conf.SettleDelay = 0
	c := conf.NewController(b)
	require.Equal(t, BindDSMX, c.Boot())
	require.Equal(t, byte(0), b.eeprom[7])
	require.Equal(t, uint32(0), b.now)
}

func TestProtocolFromByte(t *testing.T) {
	require.Equal(t, ProtocolDSMX, ProtocolFromByte(0))
	require.Equal(t, ProtocolDSM2, ProtocolFromByte(1))
	require.Equal(t, ProtocolDSM2, ProtocolFromByte(0xff))
	require.Equal(t, "DSM2", ProtocolDSM2.String())
	require.Equal(t, "NORMAL", BindNormal.String())
}

func byteOf(b byte) *byte {
	return &b
}
