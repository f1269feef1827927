package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"delta", func(c *Config) { c.DeltaMin = 0 }, "delta_min"},
		{"threshold", func(c *Config) { c.ThresholdMin = 0 }, "threshold_min"},
		{"ceiling", func(c *Config) { c.Ceiling = 1 }, "ceiling"},
		{"ceiling range", func(c *Config) { c.Ceiling = 256 }, "ceiling"},
		{"batch", func(c *Config) { c.BatchMax = MaxBatch + 1 }, "batch_max"},
		{"poll", func(c *Config) { c.PollInterval = -1 }, "poll interval"},
		{"near level", func(c *Config) { c.NearLevel = 0 }, "near_level"},
		{"trend zero", func(c *Config) { c.TrendDelta = 0 }, "trend_delta"},
		{"trend negative", func(c *Config) { c.TrendDelta = -5 }, "trend_delta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
