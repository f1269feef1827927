package gesture

import "strings"

// Vertical is the up/down swipe outcome of a session.
type Vertical uint8

const (
	VerticalNone Vertical = iota
	Up
	Down
)

// Horizontal is the left/right swipe outcome of a session.
type Horizontal uint8

const (
	HorizontalNone Horizontal = iota
	Left
	Right
)

// Proximity is the near/far classification of a session.
type Proximity uint8

const (
	ProximityNone Proximity = iota
	Near
	Far
)

// Trend is the approach/depart classification of a session.
type Trend uint8

const (
	TrendNone Trend = iota
	Approach
	Depart
)

// Flags is the legacy bitset form of a Motion, used on the wire.
type Flags uint16

const (
	FlagNone     Flags = 0
	FlagUp       Flags = 0x0001
	FlagDown     Flags = 0x0002
	FlagLeft     Flags = 0x0004
	FlagRight    Flags = 0x0008
	FlagNear     Flags = 0x0010
	FlagFar      Flags = 0x0020
	FlagApproach Flags = 0x0040
	FlagDepart   Flags = 0x0080
	FlagError    Flags = 0x8000
)

// Motion is the classified result of one gesture session.
// The zero value means nothing was detected.
type Motion struct {
	Vertical   Vertical
	Horizontal Horizontal
	Proximity  Proximity
	Trend      Trend

	// Failed is set when the session aborted on a source fault or deadline.
	Failed bool
}

// IsNone reports whether no motion was detected and the session did not fail.
func (m Motion) IsNone() bool {
	return m == Motion{}
}

// Directional reports whether a swipe was detected on either axis.
func (m Motion) Directional() bool {
	return m.Vertical != VerticalNone || m.Horizontal != HorizontalNone
}

// Flags returns the bitset encoding of m.
func (m Motion) Flags() Flags {
	if m.Failed {
		return FlagError
	}

	var f Flags
	switch m.Vertical {
	case Up:
		f |= FlagUp
	case Down:
		f |= FlagDown
	}
	switch m.Horizontal {
	case Left:
		f |= FlagLeft
	case Right:
		f |= FlagRight
	}
	switch m.Proximity {
	case Near:
		f |= FlagNear
	case Far:
		f |= FlagFar
	}
	switch m.Trend {
	case Approach:
		f |= FlagApproach
	case Depart:
		f |= FlagDepart
	}
	return f
}

// MotionFromFlags rebuilds a Motion from its bitset. When both bits of a
// pair are present the first one (UP, LEFT, NEAR, APPROACH) wins.
func MotionFromFlags(f Flags) Motion {
	if f&FlagError != 0 {
		return Motion{Failed: true}
	}

	var m Motion
	switch {
	case f&FlagUp != 0:
		m.Vertical = Up
	case f&FlagDown != 0:
		m.Vertical = Down
	}
	switch {
	case f&FlagLeft != 0:
		m.Horizontal = Left
	case f&FlagRight != 0:
		m.Horizontal = Right
	}
	switch {
	case f&FlagNear != 0:
		m.Proximity = Near
	case f&FlagFar != 0:
		m.Proximity = Far
	}
	switch {
	case f&FlagApproach != 0:
		m.Trend = Approach
	case f&FlagDepart != 0:
		m.Trend = Depart
	}
	return m
}

func (v Vertical) String() string {
	switch v {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "none"
}

func (h Horizontal) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

func (p Proximity) String() string {
	switch p {
	case Near:
		return "near"
	case Far:
		return "far"
	}
	return "none"
}

func (t Trend) String() string {
	switch t {
	case Approach:
		return "approach"
	case Depart:
		return "depart"
	}
	return "none"
}

// String renders the motion as space separated words, e.g. "up left" or
// "approach near". It returns "none" or "error" for the two special results.
func (m Motion) String() string {
	if m.Failed {
		return "error"
	}
	if m.IsNone() {
		return "none"
	}

	parts := make([]string, 0, 4)
	if m.Vertical != VerticalNone {
		parts = append(parts, m.Vertical.String())
	}
	if m.Horizontal != HorizontalNone {
		parts = append(parts, m.Horizontal.String())
	}
	if m.Trend != TrendNone {
		parts = append(parts, m.Trend.String())
	}
	if m.Proximity != ProximityNone {
		parts = append(parts, m.Proximity.String())
	}
	return strings.Join(parts, " ")
}
