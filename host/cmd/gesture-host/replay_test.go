package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestsense/gesture"
)

const swipeCapture = `
name: swipe
batches:
  - [[100, 100, 120, 100], [100, 100, 120, 100], [100, 100, 120, 100], [100, 100, 120, 100],
     [100, 100, 120, 100], [100, 100, 120, 100], [100, 100, 120, 100], [100, 100, 120, 100]]
  - [[100, 100, 120, 100], [100, 100, 120, 100], [100, 100, 100, 120], [100, 100, 100, 120],
     [100, 100, 100, 120], [100, 100, 100, 120], [100, 100, 100, 120], [100, 100, 100, 120]]
  - [[100, 100, 100, 120], [100, 100, 100, 120], [100, 100, 100, 120], [100, 100, 100, 120]]
`

func TestParseCapture(t *testing.T) {
	c, err := parseCapture([]byte(swipeCapture))
	require.NoError(t, err)

	assert.Equal(t, "swipe", c.Name)
	require.Len(t, c.Batches, 3)
	assert.Len(t, c.Batches[0], 8)
	assert.Len(t, c.Batches[2], 4)

	p, all := c.playback()
	assert.Len(t, p.Batches, 3)
	assert.Len(t, all, 20)
	assert.Equal(t, gesture.Sample{Up: 100, Down: 100, Left: 100, Right: 120}, all[19])
}

func TestParseCaptureRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "empty"},
		{"unknown field", "batches: []\nspeed: 3\n", "speed"},
		{"short sample", "batches:\n  - [[1, 2, 3]]\n", "3 channels"},
		{"fault out of range", "fault_at: 2\nbatches:\n  - [[1, 2, 3, 4]]\n", "fault_at"},
		{"value overflow", "batches:\n  - [[1, 2, 3, 400]]\n", "decode"},
		{
			"oversized batch",
			"batches:\n  - [" + strings.Repeat("[1, 2, 3, 4], ", 8) + "[1, 2, 3, 4]]\n",
			"more than a FIFO read",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCapture([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReplaySwipe(t *testing.T) {
	c, err := parseCapture([]byte(swipeCapture))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := replay(&out, c, gesture.DefaultConfig(), false)
	require.NoError(t, err)

	assert.Equal(t, gesture.Motion{Horizontal: gesture.Left}, res.Motion)
	assert.Equal(t, 20, res.State.TotalRecords)
	assert.True(t, strings.HasPrefix(out.String(), "swipe: left (records=20 "), out.String())
}

func TestReplayTrace(t *testing.T) {
	c, err := parseCapture([]byte(swipeCapture))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = replay(&out, c, gesture.DefaultConfig(), true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	// summary, 26 level rows, index row
	require.Len(t, lines, 28)
	assert.True(t, strings.HasPrefix(lines[1], "250:"))
	assert.Contains(t, lines[14], "l")
	assert.True(t, strings.HasPrefix(lines[27], "----0 "))
}

func TestReplayInactive(t *testing.T) {
	c, err := parseCapture([]byte("inactive: true\n" + swipeCapture))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := replay(&out, c, gesture.DefaultConfig(), true)
	require.NoError(t, err)
	assert.True(t, res.Motion.IsNone())
	assert.Equal(t, "swipe: none (records=0 up=0 down=0 left=0 right=0 sum=0 delta=0)\n", out.String())
}

func TestReplayFault(t *testing.T) {
	c, err := parseCapture([]byte("fault_at: 2\n" + swipeCapture))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := replay(&out, c, gesture.DefaultConfig(), false)
	assert.ErrorIs(t, err, gesture.ErrFault)
	assert.ErrorIs(t, err, gesture.ErrPlaybackFault)
	assert.True(t, res.Motion.Failed)
	assert.Equal(t, 8, res.State.TotalRecords)
	assert.Contains(t, out.String(), "swipe: error (records=8 ")
	assert.Contains(t, out.String(), "swipe: error: ")
}

func TestLoadCaptureNamesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batches:\n  - [[1, 2, 3, 4]]\n"), 0o644))

	c, err := loadCapture(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Name)

	_, err = loadCapture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
