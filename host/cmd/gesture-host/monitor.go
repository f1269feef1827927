package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gestsense/config"
	"gestsense/gesture"
	"gestsense/host/mcu"
	"gestsense/host/serial"
	"gestsense/protocol"
)

func monitorCmd() *cobra.Command {
	var (
		port     string
		baud     int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Decode gesture reports from board firmware",
		Long: `monitor opens the firmware's serial link and logs every gesture report,
along with periodic link statistics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ov config.FlagOverrides
			if cmd.Flags().Changed("port") {
				ov.SerialPort = &port
			}
			if cmd.Flags().Changed("baud") {
				ov.SerialBaud = &baud
			}
			cfg, logger, err := loadConfig(cmd, ov)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runMonitor(ctx, cfg, logger, interval)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", `serial device or "auto" (default from config)`)
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "baud rate (default from config)")
	cmd.Flags().DurationVar(&interval, "stats-interval", 10*time.Second, "how often to log link statistics, 0 to disable")
	return cmd
}

func runMonitor(ctx context.Context, cfg config.Config, logger *slog.Logger, interval time.Duration) error {
	sc := &serial.Config{
		Device:      cfg.Serial.Port,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: cfg.Serial.ReadTimeout,
	}
	if err := serial.Resolve(sc); err != nil {
		return err
	}

	link := mcu.NewMCU(logger)
	if err := link.Connect(sc); err != nil {
		return fmt.Errorf("open %s: %w", sc.Device, err)
	}
	defer link.Close()
	logger.Info("listening for gesture reports", "port", sc.Device, "baud", sc.Baud)

	return follow(ctx, link, logger, interval)
}

// follow logs reports from link until ctx is done or the link ends.
func follow(ctx context.Context, link *mcu.MCU, logger *slog.Logger, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		err := link.Run(ctx, func(r protocol.Report) {
			logReport(logger, r)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if interval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					st := link.Stats()
					logger.Info("link stats", "frames", st.Frames, "dropped", st.Dropped,
						"malformed", st.Malformed, "gaps", st.Gaps)
				}
			}
		})
	}

	return g.Wait()
}

func logReport(logger *slog.Logger, r protocol.Report) {
	m := gesture.MotionFromFlags(gesture.Flags(r.Flags))
	logger.Info("gesture",
		"seq", r.Sequence,
		"motion", m.String(),
		"records", r.Records,
		"up", r.DirUp,
		"down", r.DirDown,
		"left", r.DirLeft,
		"right", r.DirRight,
		"delta_near_far", r.DeltaNearFar,
	)
}

func portsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := serial.ListPorts()
			if err != nil {
				return err
			}
			auto, _ := serial.Detect(ports)
			for _, p := range ports {
				if p == auto {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (auto)\n", p)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
