package gesture

import "gestsense/core"

// State is the accumulator state evolved across one gesture session.
type State struct {
	// Running sums of above-threshold directional deltas.
	DirUp    uint32
	DirDown  uint32
	DirLeft  uint32
	DirRight uint32

	// Near/far running figures over the 4-channel average.
	SumNearFar   uint32
	PrevNearFar  uint16
	DeltaNearFar int32

	// Swipe outcome promoted during accumulation.
	Vertical   Vertical
	Horizontal Horizontal

	TotalRecords   int // samples consumed this session
	CurrentRecords int // samples consumed from the last batch
}

// Directional reports whether a swipe flag has been promoted.
func (s State) Directional() bool {
	return s.Vertical != VerticalNone || s.Horizontal != HorizontalNone
}

// Accumulator folds batches of samples into a State.
// It is owned by a single session and is not safe for concurrent use.
type Accumulator struct {
	cfg    Config
	device uint8
	state  State
}

// NewAccumulator returns an accumulator in the reset state.
func NewAccumulator(cfg Config) *Accumulator {
	return &Accumulator{cfg: cfg}
}

// Reset returns the accumulator to the all-zero state.
func (a *Accumulator) Reset() {
	a.state = State{}
}

// State returns a copy of the current state.
func (a *Accumulator) State() State {
	return a.state
}

// Remaining is the number of samples that can still be consumed.
func (a *Accumulator) Remaining() int {
	if a.state.TotalRecords >= a.cfg.Ceiling {
		return 0
	}
	return a.cfg.Ceiling - a.state.TotalRecords
}

// Full reports whether the session ceiling has been reached.
func (a *Accumulator) Full() bool {
	return a.Remaining() == 0
}

// Consume folds batch into the state and returns the number of samples used.
// The batch is clipped so that TotalRecords never exceeds the ceiling.
func (a *Accumulator) Consume(batch []Sample) int {
	n := len(batch)
	if rem := a.Remaining(); n > rem {
		n = rem
	}

	st := &a.state
	coldStart := st.TotalRecords == 0

	for i := 0; i < n; i++ {
		s := batch[i]
		index := st.TotalRecords + i

		a.vertical(int16(s.Up)-int16(s.Down), index)
		a.horizontal(int16(s.Left)-int16(s.Right), index)

		// the first sample of a session is noisy, keep it out of the average
		if i == 0 && coldStart {
			continue
		}

		avg := s.level()
		if st.SumNearFar == 0 {
			st.DeltaNearFar = 0
		} else {
			st.DeltaNearFar += int32(st.PrevNearFar) - int32(avg)
		}
		st.SumNearFar += uint32(avg)
		st.PrevNearFar = avg
	}

	st.CurrentRecords = n
	st.TotalRecords += n
	return n
}

// vertical accumulates an up/down delta and promotes the vertical flag once
// both sums are past ThresholdMin.
func (a *Accumulator) vertical(delta int16, index int) {
	st := &a.state

	var upGrew bool
	switch {
	case delta >= a.cfg.DeltaMin:
		st.DirUp += uint32(delta)
		upGrew = true
	case delta <= -a.cfg.DeltaMin:
		st.DirDown += uint32(-delta)
	default:
		return
	}

	if st.Vertical != VerticalNone ||
		st.DirUp <= a.cfg.ThresholdMin || st.DirDown <= a.cfg.ThresholdMin {
		return
	}

	if upGrew == a.cfg.InvertSwipe {
		st.Vertical = Down
	} else {
		st.Vertical = Up
	}
	core.RecordEvent(core.EvtFlag, a.device, uint32(Motion{Vertical: st.Vertical}.Flags()), uint32(index))
}

// horizontal is the left/right counterpart of vertical.
func (a *Accumulator) horizontal(delta int16, index int) {
	st := &a.state

	var leftGrew bool
	switch {
	case delta >= a.cfg.DeltaMin:
		st.DirLeft += uint32(delta)
		leftGrew = true
	case delta <= -a.cfg.DeltaMin:
		st.DirRight += uint32(-delta)
	default:
		return
	}

	if st.Horizontal != HorizontalNone ||
		st.DirLeft <= a.cfg.ThresholdMin || st.DirRight <= a.cfg.ThresholdMin {
		return
	}

	if leftGrew == a.cfg.InvertSwipe {
		st.Horizontal = Right
	} else {
		st.Horizontal = Left
	}
	core.RecordEvent(core.EvtFlag, a.device, uint32(Motion{Horizontal: st.Horizontal}.Flags()), uint32(index))
}
