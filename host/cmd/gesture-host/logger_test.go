package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestsense/core"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"error", LogLevelError},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"Info", LogLevelInfo},
		{"debug", LogLevelDebug},
	}
	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseLogLevel("trace")
	assert.EqualError(t, err, "invalid log level: trace (must be error, warn, info, or debug)")
}

func TestSetupLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(LogLevelWarn, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "level=WARN msg=shown")
}

func TestBridgeDebug(t *testing.T) {
	t.Cleanup(func() {
		core.SetDebugWriter(func(string) {})
		core.SetDebugEnabled(false)
	})

	var buf bytes.Buffer
	bridgeDebug(setupLogger(LogLevelDebug, &buf), LogLevelDebug)
	assert.True(t, core.IsDebugEnabled())

	core.DebugPrintln("gesture: session aborted\n")
	assert.Contains(t, buf.String(), `msg="gesture: session aborted"`)

	buf.Reset()
	bridgeDebug(setupLogger(LogLevelInfo, &buf), LogLevelInfo)
	assert.False(t, core.IsDebugEnabled())
	core.DebugPrintln("quiet")
	assert.Empty(t, buf.String())
}
