// Package config loads the YAML configuration shared by the host tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gestsense/gesture"
)

// Config is the top-level YAML configuration for gesture-host.
//
// Defaults and validation live here so the commands can assume a
// well-formed config once Validate has passed.
type Config struct {
	// Serial link to board firmware (monitor)
	Serial SerialConfig `yaml:"serial"`

	// Linux I2C devices (sense)
	I2C I2CConfig `yaml:"i2c"`

	// Gesture engine tuning
	Gesture GestureFileConfig `yaml:"gesture"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type SerialConfig struct {
	Port        string `yaml:"port"` // device path or "auto"
	Baud        int    `yaml:"baud"`
	ReadTimeout int    `yaml:"read_timeout_ms"`
}

type I2CConfig struct {
	FrequencyHz uint32         `yaml:"frequency_hz"`
	Devices     []DeviceConfig `yaml:"devices"`
}

// DeviceConfig names one sensor. Bus is a periph bus name such as "1" or
// "/dev/i2c-1"; empty selects the first bus found.
type DeviceConfig struct {
	Name       string `yaml:"name"`
	Bus        string `yaml:"bus,omitempty"`
	Address    uint16 `yaml:"address"`
	Interrupts bool   `yaml:"interrupts,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GestureFileConfig is the YAML form of gesture.Config. Durations are in
// milliseconds.
type GestureFileConfig struct {
	DeltaMin       int    `yaml:"delta_min"`
	ThresholdMin   uint32 `yaml:"threshold_min"`
	Ceiling        int    `yaml:"ceiling"`
	BatchMax       int    `yaml:"batch_max"`
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	NearLevel      uint32 `yaml:"near_level"`
	TrendDelta     int32  `yaml:"trend_delta"`
	InvertSwipe    bool   `yaml:"invert_swipe"`

	// Wall-clock budget of one session, 0 for none
	SessionTimeoutMS int `yaml:"session_timeout_ms"`

	// Pause between sessions when no gesture was pending
	IdleIntervalMS int `yaml:"idle_interval_ms"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	g := gesture.DefaultConfig()
	return Config{
		Serial: SerialConfig{
			Port:        "/dev/ttyACM0",
			Baud:        250000,
			ReadTimeout: 100,
		},
		I2C: I2CConfig{
			FrequencyHz: 400000,
			Devices: []DeviceConfig{
				{Name: "apds9960", Address: 0x39},
			},
		},
		Gesture: GestureFileConfig{
			DeltaMin:         int(g.DeltaMin),
			ThresholdMin:     g.ThresholdMin,
			Ceiling:          g.Ceiling,
			BatchMax:         g.BatchMax,
			PollIntervalMS:   int(g.PollInterval / time.Millisecond),
			NearLevel:        g.NearLevel,
			TrendDelta:       g.TrendDelta,
			InvertSwipe:      g.InvertSwipe,
			SessionTimeoutMS: 2000,
			IdleIntervalMS:   50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and parses a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes one YAML document on top of the defaults. Unknown fields
// are rejected.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Anything but io.EOF means a second document, valid or not
	if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
		return Config{}, errors.New("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides carries command-line values; nil pointers are ignored.
type FlagOverrides struct {
	SerialPort *string
	SerialBaud *int
	I2CBus     *string
	LogLevel   *string
	TimeoutMS  *int
}

// Apply merges the overrides into cfg.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.SerialPort != nil {
		cfg.Serial.Port = *o.SerialPort
	}
	if o.SerialBaud != nil {
		cfg.Serial.Baud = *o.SerialBaud
	}
	if o.I2CBus != nil {
		for i := range cfg.I2C.Devices {
			cfg.I2C.Devices[i].Bus = *o.I2CBus
		}
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.TimeoutMS != nil {
		cfg.Gesture.SessionTimeoutMS = *o.TimeoutMS
	}
}

// Validate checks config invariants and returns a user-friendly error.
func (c *Config) Validate() error {
	if c.Serial.Baud <= 0 {
		return errors.New("serial.baud must be > 0")
	}
	if c.Serial.ReadTimeout < 0 {
		return errors.New("serial.read_timeout_ms must be >= 0")
	}

	if c.I2C.FrequencyHz == 0 || c.I2C.FrequencyHz > 400000 {
		return errors.New("i2c.frequency_hz must be between 1 and 400000")
	}
	seen := make(map[string]bool)
	for i, dev := range c.I2C.Devices {
		if dev.Name == "" {
			return fmt.Errorf("i2c.devices[%d].name is empty", i)
		}
		if seen[dev.Name] {
			return fmt.Errorf("i2c.devices[%d].name %q is duplicated", i, dev.Name)
		}
		seen[dev.Name] = true
		if dev.Address > 0x7F {
			return fmt.Errorf("i2c.devices[%d].address 0x%X is not a 7-bit address", i, dev.Address)
		}
	}

	if c.Gesture.SessionTimeoutMS < 0 {
		return errors.New("gesture.session_timeout_ms must be >= 0")
	}
	if c.Gesture.IdleIntervalMS < 0 {
		return errors.New("gesture.idle_interval_ms must be >= 0")
	}
	if c.Gesture.DeltaMin > 0x7FFF {
		return errors.New("gesture.delta_min is out of range")
	}
	if err := c.GestureConfig().Validate(); err != nil {
		return fmt.Errorf("gesture: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "error", "warn", "warning", "info", "debug":
	default:
		return fmt.Errorf("logging.level %q must be error, warn, info, or debug", c.Logging.Level)
	}

	return nil
}

// GestureConfig converts the file form into the engine config.
func (c *Config) GestureConfig() gesture.Config {
	return gesture.Config{
		DeltaMin:     int16(c.Gesture.DeltaMin),
		ThresholdMin: c.Gesture.ThresholdMin,
		Ceiling:      c.Gesture.Ceiling,
		BatchMax:     c.Gesture.BatchMax,
		PollInterval: time.Duration(c.Gesture.PollIntervalMS) * time.Millisecond,
		NearLevel:    c.Gesture.NearLevel,
		TrendDelta:   c.Gesture.TrendDelta,
		InvertSwipe:  c.Gesture.InvertSwipe,
	}
}

// SessionTimeout returns the per-session budget, 0 for none.
func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.Gesture.SessionTimeoutMS) * time.Millisecond
}

// IdleInterval returns the pause between sessions that found nothing.
func (c *Config) IdleInterval() time.Duration {
	return time.Duration(c.Gesture.IdleIntervalMS) * time.Millisecond
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
