package tx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"max thresholds", func(c *Config) { c.LowThreshold, c.HighThreshold = 65535, 65535 }, true},
		{"high threshold wraps", func(c *Config) { c.HighThreshold = 70000 }, false},
		{"low threshold wraps", func(c *Config) { c.LowThreshold = 65536 }, false},
		{"low above high", func(c *Config) { c.LowThreshold, c.HighThreshold = 900, 100 }, false},
		{"throttle channel", func(c *Config) { c.ThrottleChannel = 4 }, false},
		{"yaw channel", func(c *Config) { c.YawChannel = 4 }, false},
		{"protocol offset", func(c *Config) { c.ProtocolOffset = 1 << 16 }, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := NewConfig()
			tc.modify(conf)
			err := conf.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
