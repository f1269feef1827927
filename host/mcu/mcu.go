// Package mcu reads gesture reports from board firmware over a serial link.
package mcu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"gestsense/host/serial"
	"gestsense/protocol"
)

// maxReadErrors is how many consecutive read errors end a Run.
const maxReadErrors = 10

var ErrNotConnected = errors.New("not connected to MCU")

// MCU represents a connection to a gesture board
type MCU struct {
	port   serial.Port
	logger *slog.Logger

	mu      sync.Mutex // guards decoder
	decoder *protocol.ReportDecoder
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU(logger *slog.Logger) *MCU {
	if logger == nil {
		logger = slog.Default()
	}
	return &MCU{
		decoder: protocol.NewReportDecoder(),
		logger:  logger,
	}
}

// Connect opens the serial port described by cfg
func (m *MCU) Connect(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	m.Attach(port)
	return nil
}

// Attach uses an already open port and drops any stale input on it
func (m *MCU) Attach(port serial.Port) {
	m.port = port
	m.mu.Lock()
	m.decoder.Reset()
	m.mu.Unlock()
	if err := port.Flush(); err != nil {
		m.logger.Debug("flush failed", "error", err)
	}
}

// Close closes the connection to the MCU
func (m *MCU) Close() error {
	if m.port == nil {
		return nil
	}
	err := m.port.Close()
	m.port = nil
	return err
}

// Stats returns the decoder counters
func (m *MCU) Stats() protocol.DecoderStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decoder.Stats()
}

// Run reads the link until ctx is cancelled or the port reaches EOF and
// calls handle for every decoded report.
func (m *MCU) Run(ctx context.Context, handle func(protocol.Report)) error {
	if m.port == nil {
		return ErrNotConnected
	}

	buffer := make([]byte, 256)
	failures := 0
	last := m.Stats()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := m.port.Read(buffer)
		if n > 0 {
			m.mu.Lock()
			reports := m.decoder.Feed(buffer[:n])
			m.mu.Unlock()

			for _, r := range reports {
				handle(r)
			}
			last = m.logStats(last)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			failures++
			if failures >= maxReadErrors {
				return fmt.Errorf("serial read: %w", err)
			}
			m.logger.Warn("serial read failed", "error", err, "attempt", failures)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		failures = 0
	}
}

func (m *MCU) logStats(last protocol.DecoderStats) protocol.DecoderStats {
	st := m.Stats()
	if st.Dropped != last.Dropped || st.Malformed != last.Malformed || st.Gaps != last.Gaps {
		m.logger.Warn("link errors",
			"dropped", st.Dropped-last.Dropped,
			"malformed", st.Malformed-last.Malformed,
			"missed", st.Gaps-last.Gaps)
	}
	return st
}
