package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gestsense/config"
	"gestsense/gesture"
)

// capture is a recorded gesture FIFO stream. Each batch is one FIFO read;
// each sample is [up, down, left, right].
//
//	name: swipe-left
//	batches:
//	  - [[100, 100, 120, 100], [100, 100, 120, 100]]
//	  - [[100, 100, 100, 120]]
type capture struct {
	Name     string      `yaml:"name,omitempty"`
	Inactive bool        `yaml:"inactive,omitempty"`
	FaultAt  int         `yaml:"fault_at,omitempty"`
	Batches  [][][]uint8 `yaml:"batches"`
}

func replayCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "replay <capture.yaml>...",
		Short: "Run recorded FIFO captures through the gesture engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, config.FlagOverrides{})
			if err != nil {
				return err
			}

			var failed int
			for _, path := range args {
				c, err := loadCapture(path)
				if err != nil {
					return err
				}
				if _, err := replay(cmd.OutOrStdout(), c, cfg.GestureConfig(), trace); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d captures failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print a chart of the consumed samples")
	return cmd
}

func loadCapture(path string) (capture, error) {
	b, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return capture{}, fmt.Errorf("read capture: %w", err)
	}
	c, err := parseCapture(b)
	if err != nil {
		return capture{}, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = path
	}
	return c, nil
}

func parseCapture(b []byte) (capture, error) {
	var c capture

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return capture{}, errors.New("capture is empty")
		}
		return capture{}, fmt.Errorf("decode capture yaml: %w", err)
	}

	if c.FaultAt < 0 || c.FaultAt > len(c.Batches) {
		return capture{}, fmt.Errorf("fault_at %d is outside 0..%d", c.FaultAt, len(c.Batches))
	}
	for i, batch := range c.Batches {
		if len(batch) > gesture.MaxBatch {
			return capture{}, fmt.Errorf("batch %d has %d samples, more than a FIFO read (%d)", i, len(batch), gesture.MaxBatch)
		}
		for j, s := range batch {
			if len(s) != 4 {
				return capture{}, fmt.Errorf("batch %d sample %d has %d channels, want 4", i, j, len(s))
			}
		}
	}
	return c, nil
}

// playback converts the capture into a gesture source and also returns the
// flattened sample stream.
func (c capture) playback() (*gesture.Playback, []gesture.Sample) {
	p := &gesture.Playback{
		FaultAt:  c.FaultAt,
		Inactive: c.Inactive,
		Batches:  make([][]gesture.Sample, len(c.Batches)),
	}
	var all []gesture.Sample
	for i, batch := range c.Batches {
		samples := make([]gesture.Sample, len(batch))
		for j, s := range batch {
			samples[j] = gesture.Sample{Up: s[0], Down: s[1], Left: s[2], Right: s[3]}
		}
		p.Batches[i] = samples
		all = append(all, samples...)
	}
	return p, all
}

// replay runs one session over c without pacing and writes the outcome to w.
func replay(w io.Writer, c capture, cfg gesture.Config, trace bool) (gesture.Result, error) {
	cfg.PollInterval = 0

	src, all := c.playback()
	session, err := gesture.NewSession(src, cfg)
	if err != nil {
		return gesture.Result{}, err
	}

	res, err := session.Read(time.Time{})
	st := res.State
	fmt.Fprintf(w, "%s: %s (records=%d up=%d down=%d left=%d right=%d sum=%d delta=%d)\n",
		c.Name, res.Motion, st.TotalRecords,
		st.DirUp, st.DirDown, st.DirLeft, st.DirRight,
		st.SumNearFar, st.DeltaNearFar)
	if err != nil {
		fmt.Fprintf(w, "%s: error: %v\n", c.Name, err)
		return res, err
	}

	if trace && st.TotalRecords > 0 {
		// The session consumes a prefix of the stream.
		h := gesture.NewHistory(cfg.Ceiling)
		h.Append(all[:min(st.TotalRecords, len(all))])
		if _, err := h.WriteTo(w); err != nil {
			return res, err
		}
	}
	return res, nil
}
