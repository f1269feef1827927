package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"gestsense/apds9960"
	"gestsense/config"
	"gestsense/core"
	"gestsense/gesture"
)

// maxFaults is how many consecutive failed sessions stop a sensor.
const maxFaults = 5

// sessionCap bounds a session when no timeout is configured. Read does not
// watch ctx, so this is also the longest a signal waits for a busy sensor.
var sessionCap = 10 * time.Second

// sensor is one gesture source polled by its own session.
type sensor struct {
	name   string
	index  uint8
	source gesture.Source
}

func senseCmd() *cobra.Command {
	var (
		bus       string
		timeoutMS int
		once      bool
	)

	cmd := &cobra.Command{
		Use:   "sense",
		Short: "Poll APDS-9960 sensors on Linux I2C buses",
		Long: `sense enables the gesture engine on every configured APDS-9960 and runs
one session after another on each, logging every detected motion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ov config.FlagOverrides
			if cmd.Flags().Changed("bus") {
				ov.I2CBus = &bus
			}
			if cmd.Flags().Changed("timeout") {
				ov.TimeoutMS = &timeoutMS
			}
			cfg, logger, err := loadConfig(cmd, ov)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runSense(ctx, cfg, logger, once)
		},
	}

	cmd.Flags().StringVar(&bus, "bus", "", "I2C bus name for every device (e.g. 1 or /dev/i2c-1)")
	cmd.Flags().IntVar(&timeoutMS, "timeout", 0, "per-session timeout in milliseconds, 0 for the 10s cap")
	cmd.Flags().BoolVar(&once, "once", false, "exit after the first detected motion")
	return cmd
}

func runSense(ctx context.Context, cfg config.Config, logger *slog.Logger, once bool) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	driver := core.NewTxDriver()
	driver.SetConfigureFunc(func(_ core.I2CBusID, b drivers.I2C, frequencyHz uint32) error {
		pb, ok := b.(i2c.Bus)
		if !ok {
			return nil
		}
		return pb.SetSpeed(physic.Frequency(frequencyHz) * physic.Hertz)
	})

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	buses := make(map[string]core.I2CBusID)
	var devices []*apds9960.Device
	var sensors []sensor

	defer func() {
		for i, dev := range devices {
			if err := dev.DisableGesture(); err != nil {
				logger.Warn("disable gesture failed", "sensor", sensors[i].name, "error", err)
			}
		}
	}()

	for i, dc := range cfg.I2C.Devices {
		id, ok := buses[dc.Bus]
		if !ok {
			b, err := i2creg.Open(dc.Bus)
			if err != nil {
				return fmt.Errorf("open i2c bus %q: %w", dc.Bus, err)
			}
			closers = append(closers, b)

			id = core.I2CBusID(len(buses))
			buses[dc.Bus] = id
			driver.Attach(id, b)
			logger.Debug("i2c bus opened", "bus", b.String(), "id", id)
		}

		dev := apds9960.New(driver, id, core.I2CAddress(dc.Address))
		if err := dev.Configure(cfg.I2C.FrequencyHz); err != nil {
			// Linux adapters commonly refuse runtime speed changes.
			logger.Warn("set bus speed failed", "sensor", dc.Name, "error", err)
		}
		if err := dev.Probe(); err != nil {
			return fmt.Errorf("%s: %w", dc.Name, err)
		}
		if err := dev.EnableGesture(dc.Interrupts); err != nil {
			return fmt.Errorf("%s: %w", dc.Name, err)
		}

		devices = append(devices, dev)
		sensors = append(sensors, sensor{name: dc.Name, index: uint8(i), source: dev})
		logger.Info("gesture engine enabled", "sensor", dc.Name, "address", fmt.Sprintf("0x%02X", dc.Address))
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range sensors {
		g.Go(func() error {
			return watch(ctx, s, cfg, logger, once)
		})
	}
	return g.Wait()
}

// watch runs sessions on one sensor until ctx is done. With once set it
// returns after the first motion.
func watch(ctx context.Context, s sensor, cfg config.Config, logger *slog.Logger, once bool) error {
	session, err := gesture.NewSession(s.source, cfg.GestureConfig(), gesture.WithDevice(s.index))
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	log := logger.With("sensor", s.name)

	faults := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		res, err := session.Read(sessionDeadline(cfg, time.Now()))
		if err != nil {
			faults++
			log.Warn("session failed", "error", err, "records", res.State.TotalRecords, "faults", faults)
			if faults >= maxFaults {
				core.DumpEvents()
				return fmt.Errorf("%s: %d consecutive failed sessions: %w", s.name, faults, err)
			}
			if !sleepCtx(ctx, cfg.IdleInterval()) {
				return nil
			}
			continue
		}
		faults = 0

		if res.Motion.IsNone() {
			if !sleepCtx(ctx, cfg.IdleInterval()) {
				return nil
			}
			continue
		}

		st := res.State
		log.Info("gesture",
			"motion", res.Motion.String(),
			"flags", fmt.Sprintf("0x%04X", uint16(res.Motion.Flags())),
			"records", st.TotalRecords,
			"up", st.DirUp,
			"down", st.DirDown,
			"left", st.DirLeft,
			"right", st.DirRight,
			"delta_near_far", st.DeltaNearFar,
		)
		if once {
			return nil
		}
	}
}

// sessionDeadline applies the configured timeout, or sessionCap when it is 0.
func sessionDeadline(cfg config.Config, now time.Time) time.Time {
	t := cfg.SessionTimeout()
	if t <= 0 {
		t = sessionCap
	}
	return now.Add(t)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
