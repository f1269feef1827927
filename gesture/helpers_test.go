package gesture

import "time"

type fakeClock struct {
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps++
	c.now = c.now.Add(d)
}

func flat(v uint8) Sample {
	return Sample{Up: v, Down: v, Left: v, Right: v}
}

func repeat(s Sample, n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func chunk(samples []Sample, size int) [][]Sample {
	var out [][]Sample
	for len(samples) > size {
		out = append(out, samples[:size])
		samples = samples[size:]
	}
	if len(samples) > 0 {
		out = append(out, samples)
	}
	return out
}

// ramp returns n flat samples starting at from and moving by step.
func ramp(from, step, n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = flat(uint8(from + step*i))
	}
	return out
}

// swipeLR returns n samples with left ahead of right followed by n with
// right ahead of left.
func swipeLR(n int, delta uint8) []Sample {
	out := make([]Sample, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, Sample{Up: 100, Down: 100, Left: 100 + delta, Right: 100})
	}
	for i := 0; i < n; i++ {
		out = append(out, Sample{Up: 100, Down: 100, Left: 100, Right: 100 + delta})
	}
	return out
}

// swipeUD is the vertical counterpart of swipeLR.
func swipeUD(n int, delta uint8) []Sample {
	out := make([]Sample, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, Sample{Up: 100 + delta, Down: 100, Left: 100, Right: 100})
	}
	for i := 0; i < n; i++ {
		out = append(out, Sample{Up: 100, Down: 100 + delta, Left: 100, Right: 100})
	}
	return out
}

func newTestSession(src Source, cfg Config) (*Session, *fakeClock, error) {
	clock := newFakeClock()
	s, err := NewSession(src, cfg, WithClock(clock))
	return s, clock, err
}
