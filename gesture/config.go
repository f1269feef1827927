package gesture

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("gesture: invalid config")

// Config holds the tuning constants of the recognition engine.
type Config struct {
	// DeltaMin is the minimum per-sample U-D or L-R difference that counts
	// toward a directional sum.
	DeltaMin int16

	// ThresholdMin is the accumulated magnitude both opposite sums must
	// exceed before a swipe flag is promoted.
	ThresholdMin uint32

	// Ceiling is the maximum number of samples consumed per session.
	Ceiling int

	// BatchMax is the maximum number of samples fetched per poll.
	BatchMax int

	// PollInterval is the pause between FIFO polls.
	PollInterval time.Duration

	// NearLevel is the mean 4-channel level at or above which a session is
	// classified NEAR rather than FAR.
	NearLevel uint32

	// TrendDelta is the magnitude the accumulated first difference must pass
	// for APPROACH or DEPART.
	TrendDelta int32

	// InvertSwipe reports the direction opposite to the sum that crossed the
	// threshold last, e.g. growth of the up sum yields Down. This matches
	// boards with the sensor mounted mirrored and must be verified per product.
	InvertSwipe bool
}

// DefaultConfig returns the tuning used with the stock sensor breakout.
func DefaultConfig() Config {
	return Config{
		DeltaMin:     10,
		ThresholdMin: 50,
		Ceiling:      32,
		BatchMax:     MaxBatch,
		PollInterval: 30 * time.Millisecond,
		NearLevel:    180,
		TrendDelta:   80,
		InvertSwipe:  true,
	}
}

// Validate checks that the configuration can drive a session.
func (c Config) Validate() error {
	switch {
	case c.DeltaMin <= 0:
		return fmt.Errorf("%w: delta_min must be positive, got %d", ErrInvalidConfig, c.DeltaMin)
	case c.ThresholdMin == 0:
		return fmt.Errorf("%w: threshold_min must be positive", ErrInvalidConfig)
	case c.Ceiling < 2 || c.Ceiling > 255:
		return fmt.Errorf("%w: ceiling must be in [2, 255], got %d", ErrInvalidConfig, c.Ceiling)
	case c.BatchMax < 1 || c.BatchMax > MaxBatch:
		return fmt.Errorf("%w: batch_max must be in [1, %d], got %d", ErrInvalidConfig, MaxBatch, c.BatchMax)
	case c.PollInterval < 0:
		return fmt.Errorf("%w: negative poll interval %v", ErrInvalidConfig, c.PollInterval)
	case c.NearLevel == 0 || c.NearLevel > 255:
		return fmt.Errorf("%w: near_level must be in [1, 255], got %d", ErrInvalidConfig, c.NearLevel)
	case c.TrendDelta <= 0:
		return fmt.Errorf("%w: trend_delta must be positive, got %d", ErrInvalidConfig, c.TrendDelta)
	}
	return nil
}
