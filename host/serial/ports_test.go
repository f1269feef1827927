package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		ports []string
		want  string
	}{
		{"cdc preferred", []string{"/dev/ttyS0", "/dev/ttyUSB0", "/dev/ttyACM1"}, "/dev/ttyACM1"},
		{"usb serial", []string{"/dev/ttyS0", "/dev/ttyUSB3"}, "/dev/ttyUSB3"},
		{"macos", []string{"/dev/cu.Bluetooth", "/dev/cu.usbmodem1101"}, "/dev/cu.usbmodem1101"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.ports)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Detect([]string{"/dev/ttyS0", "COM1"})
	assert.ErrorIs(t, err, ErrNoPort)
}

func TestResolveKeepsExplicitDevice(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	require.NoError(t, Resolve(cfg))
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.NoError(t, Resolve(nil))
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open(&Config{})
	assert.EqualError(t, err, "serial device path is empty")
}
