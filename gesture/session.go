package gesture

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gestsense/core"
)

var (
	// ErrFault is wrapped around any error reported by the Source.
	ErrFault = errors.New("gesture: sample source fault")

	// ErrDeadline is returned when a session outlives its deadline.
	ErrDeadline = errors.New("gesture: session deadline exceeded")
)

// Source is the device side of a session: a bounded FIFO of directional
// samples plus the status bits that gate it.
type Source interface {
	// SensingActive reports whether power and mode currently permit
	// gesture sampling.
	SensingActive() (bool, error)

	// DataReady reports whether the FIFO holds valid gesture data.
	DataReady() (bool, error)

	// FetchBatch reads up to len(dst) samples and returns how many were
	// stored. Returning fewer, including zero, is not an error.
	FetchBatch(dst []Sample) (int, error)
}

// Clock abstracts time for the polling loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Phase is the state of the session machine.
type Phase uint32

const (
	PhaseIdle Phase = iota
	PhasePolling
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePolling:
		return "polling"
	case PhaseTerminated:
		return "terminated"
	}
	return "unknown"
}

// Result is the outcome of one session.
type Result struct {
	Motion Motion

	// State is the accumulator state the motion was decoded from.
	State State

	// Err is the error Read returned, if any.
	Err error
}

// Session drives one device through gesture detection attempts.
// Sessions of different devices are independent; a single Session runs
// one Read at a time.
type Session struct {
	mu sync.Mutex

	src    Source
	cfg    Config
	clock  Clock
	device uint8

	acc     *Accumulator
	buf     []Sample
	history *History
	phase   atomic.Uint32
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, mainly for tests and replay.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithDevice tags recorded events with a device index.
func WithDevice(index uint8) Option {
	return func(s *Session) {
		s.device = index
	}
}

// NewSession validates cfg and returns an idle session reading from src.
func NewSession(src Source, cfg Config, opts ...Option) (*Session, error) {
	if src == nil {
		return nil, errors.New("gesture: nil source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		src:     src,
		cfg:     cfg,
		clock:   systemClock{},
		acc:     NewAccumulator(cfg),
		buf:     make([]Sample, cfg.BatchMax),
		history: NewHistory(cfg.Ceiling),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.acc.device = s.device

	return s, nil
}

// Config returns the session's tuning.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current state of the session machine.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

// State returns the accumulator state. Between sessions it is always the
// reset state. It blocks while a Read is in progress.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc.State()
}

// History returns the samples consumed by the most recent session. It is
// only populated when built with the gesturetrace tag.
func (s *Session) History() *History {
	return s.history
}

// Read runs one gesture session to completion on the calling goroutine.
//
// If sensing is inactive or no gesture data is pending it returns a NONE
// result immediately. Otherwise it polls the source every PollInterval until
// the device stops reporting valid data, consuming at most Ceiling samples,
// and decodes the result. A source error aborts the session with a failed
// motion and an error wrapping ErrFault. A non-zero deadline bounds the
// total wall-clock time; passing it aborts with ErrDeadline.
func (s *Session) Read(deadline time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.history.Reset()

	active, err := s.src.SensingActive()
	if err != nil {
		return s.fail(fmt.Errorf("%w: read mode: %w", ErrFault, err))
	}
	ready, err := s.src.DataReady()
	if err != nil {
		return s.fail(fmt.Errorf("%w: read status: %w", ErrFault, err))
	}
	if !active || !ready {
		return Result{}, nil
	}

	s.setPhase(PhasePolling)
	core.RecordEvent(core.EvtSessionStart, s.device, 0, 0)

	for {
		if !deadline.IsZero() && !s.clock.Now().Before(deadline) {
			core.RecordEvent(core.EvtDeadline, s.device, uint32(s.acc.State().TotalRecords), 0)
			return s.fail(ErrDeadline)
		}

		ready, err := s.src.DataReady()
		if err != nil {
			return s.fail(fmt.Errorf("%w: read status: %w", ErrFault, err))
		}
		if !ready {
			break
		}

		n, err := s.src.FetchBatch(s.buf)
		if err != nil {
			return s.fail(fmt.Errorf("%w: read fifo: %w", ErrFault, err))
		}
		if n > len(s.buf) {
			n = len(s.buf)
		}
		if n <= 0 {
			s.clock.Sleep(s.cfg.PollInterval)
			continue
		}

		if s.acc.Full() {
			core.RecordEvent(core.EvtCeiling, s.device, uint32(n), uint32(s.acc.State().TotalRecords))
			break
		}

		consumed := s.acc.Consume(s.buf[:n])
		if traceEnabled {
			s.history.Append(s.buf[:consumed])
		}
		core.RecordEvent(core.EvtBatch, s.device, uint32(consumed), uint32(s.acc.State().TotalRecords))

		s.clock.Sleep(s.cfg.PollInterval)
	}

	return s.terminate(), nil
}

// Go runs Read on its own goroutine and delivers the result on the
// returned channel, which is closed afterwards.
func (s *Session) Go(deadline time.Time) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		res, err := s.Read(deadline)
		res.Err = err
		ch <- res
	}()
	return ch
}

func (s *Session) terminate() Result {
	s.setPhase(PhaseTerminated)

	st := s.acc.State()
	m := Decode(st, s.cfg)
	core.RecordEvent(core.EvtDecode, s.device, uint32(m.Flags()), uint32(st.TotalRecords))
	if traceEnabled {
		core.DebugPrintln(s.history.String())
	}

	s.reset()
	return Result{Motion: m, State: st}
}

func (s *Session) fail(err error) (Result, error) {
	st := s.acc.State()
	if !errors.Is(err, ErrDeadline) {
		core.RecordEvent(core.EvtFault, s.device, uint32(st.TotalRecords), 0)
	}
	core.DebugPrintln("gesture: session aborted: " + err.Error())

	s.reset()
	return Result{Motion: Motion{Failed: true}, State: st, Err: err}, err
}

func (s *Session) reset() {
	s.acc.Reset()
	s.setPhase(PhaseIdle)
}

func (s *Session) setPhase(p Phase) {
	s.phase.Store(uint32(p))
}
