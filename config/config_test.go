package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestsense/gesture"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	if diff := cmp.Diff(gesture.DefaultConfig(), cfg.GestureConfig()); diff != "" {
		t.Errorf("gesture defaults drifted (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2*time.Second, cfg.SessionTimeout())
	assert.Equal(t, 50*time.Millisecond, cfg.IdleInterval())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
serial:
  port: /dev/ttyUSB1
i2c:
  devices:
    - name: left
      bus: "1"
      address: 0x39
    - name: right
      bus: "2"
      address: 57
      interrupts: true
gesture:
  threshold_min: 80
  invert_swipe: false
  poll_interval_ms: 10
logging:
  level: debug
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, 250000, cfg.Serial.Baud)
	assert.Equal(t, []DeviceConfig{
		{Name: "left", Bus: "1", Address: 0x39},
		{Name: "right", Bus: "2", Address: 0x39, Interrupts: true},
	}, cfg.I2C.Devices)

	g := cfg.GestureConfig()
	assert.Equal(t, uint32(80), g.ThresholdMin)
	assert.False(t, g.InvertSwipe)
	assert.Equal(t, 10*time.Millisecond, g.PollInterval)
	assert.Equal(t, 32, g.Ceiling)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("gesture:\n  treshold_min: 80\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "treshold_min")
}

func TestParseRejectsTrailingDocument(t *testing.T) {
	for _, trailer := range []string{
		"---\nlogging:\n  level: debug\n",
		"---\ngarbage: [1\n",
	} {
		_, err := Parse([]byte("logging:\n  level: info\n" + trailer))
		require.Error(t, err, trailer)
		assert.Contains(t, err.Error(), "trailing document")
	}
}

func TestParseAllowsTrailingComments(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: warn\n# end of file\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"baud", func(c *Config) { c.Serial.Baud = 0 }, "serial.baud"},
		{"frequency", func(c *Config) { c.I2C.FrequencyHz = 1000000 }, "i2c.frequency_hz"},
		{"unnamed device", func(c *Config) { c.I2C.Devices[0].Name = "" }, "name is empty"},
		{"duplicate device", func(c *Config) {
			c.I2C.Devices = append(c.I2C.Devices, c.I2C.Devices[0])
		}, "duplicated"},
		{"address", func(c *Config) { c.I2C.Devices[0].Address = 0x80 }, "7-bit"},
		{"ceiling", func(c *Config) { c.Gesture.Ceiling = 1 }, "ceiling"},
		{"batch", func(c *Config) { c.Gesture.BatchMax = 9 }, "batch_max"},
		{"delta", func(c *Config) { c.Gesture.DeltaMin = 0 }, "delta_min"},
		{"delta range", func(c *Config) { c.Gesture.DeltaMin = 40000 }, "delta_min"},
		{"timeout", func(c *Config) { c.Gesture.SessionTimeoutMS = -1 }, "session_timeout_ms"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGestureValidationWrapsSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gesture.NearLevel = 0
	assert.ErrorIs(t, cfg.Validate(), gesture.ErrInvalidConfig)
}

func TestFlagOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.I2C.Devices = append(cfg.I2C.Devices, DeviceConfig{Name: "second", Address: 0x39})

	port := "/dev/ttyACM3"
	bus := "/dev/i2c-3"
	timeout := 0
	FlagOverrides{SerialPort: &port, I2CBus: &bus, TimeoutMS: &timeout}.Apply(&cfg)

	assert.Equal(t, port, cfg.Serial.Port)
	for _, dev := range cfg.I2C.Devices {
		assert.Equal(t, bus, dev.Bus)
	}
	assert.Zero(t, cfg.SessionTimeout())
	assert.Equal(t, "info", cfg.Logging.Level)

	FlagOverrides{}.Apply(nil)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gesture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  baud: 115200\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 115200, cfg.Serial.Baud)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load("")
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/etc/gesture.yaml", ExpandPath("/etc/gesture.yaml"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "gesture.yaml"), ExpandPath("~/gesture.yaml"))
}
