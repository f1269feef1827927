// gesture-host reads APDS-9960 gestures on a Linux I2C bus, follows the
// gesture reports streamed by board firmware, and replays recorded FIFO
// captures through the gesture engine.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"gestsense/config"
	"gestsense/protocol"
)

var version = protocol.Version

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "gesture-host",
		Short: "APDS-9960 gesture engine host tools",
		Long: `gesture-host runs the APDS-9960 gesture engine from a Linux host.

Commands:
  sense     Poll sensors on Linux I2C buses and log each gesture
  monitor   Decode gesture reports streamed by board firmware over serial
  ports     List serial ports
  replay    Run a recorded FIFO capture through the gesture engine`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info, debug")

	root.AddCommand(
		senseCmd(),
		monitorCmd(),
		portsCmd(),
		replayCmd(),
	)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file (or the defaults), applies the command
// line overrides, and sets up logging from the result.
func loadConfig(cmd *cobra.Command, ov config.FlagOverrides) (config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, nil, err
		}
	}

	if cmd.Flags().Changed("log-level") {
		ov.LogLevel = &logLevel
	}
	ov.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	level, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := setupLogger(level, cmd.ErrOrStderr())
	bridgeDebug(logger, level)

	return cfg, logger, nil
}
