package gesture

// MeanLevel is the average 4-channel level over the session, excluding the
// discarded first sample. It returns 0 when fewer than two samples were seen.
func MeanLevel(st State) uint32 {
	if st.TotalRecords < 2 {
		return 0
	}
	return st.SumNearFar / uint32(st.TotalRecords-1)
}

// Decode classifies a final accumulator state. Near/far and approach/depart
// are only evaluated when no swipe was promoted and more than half of the
// ceiling was consumed; otherwise the swipe outcome stands as is.
func Decode(st State, cfg Config) Motion {
	m := Motion{
		Vertical:   st.Vertical,
		Horizontal: st.Horizontal,
	}

	if st.Directional() || st.TotalRecords <= cfg.Ceiling/2 {
		return m
	}

	if MeanLevel(st) < cfg.NearLevel {
		m.Proximity = Far
	} else {
		m.Proximity = Near
	}

	switch {
	case st.DeltaNearFar < -cfg.TrendDelta:
		m.Trend = Approach
	case st.DeltaNearFar > cfg.TrendDelta:
		m.Trend = Depart
	}

	return m
}
