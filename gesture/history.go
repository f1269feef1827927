package gesture

import (
	"io"
	"strconv"
	"strings"
)

// History retains every sample consumed by a session for diagnostic dumps.
type History struct {
	samples []Sample
}

// NewHistory returns an empty history that holds up to capacity samples.
func NewHistory(capacity int) *History {
	return &History{samples: make([]Sample, 0, capacity)}
}

// Append records samples, dropping whatever does not fit.
func (h *History) Append(batch []Sample) {
	room := cap(h.samples) - len(h.samples)
	if len(batch) > room {
		batch = batch[:room]
	}
	h.samples = append(h.samples, batch...)
}

// Samples returns the recorded samples.
func (h *History) Samples() []Sample {
	return h.samples
}

// Len returns the number of recorded samples.
func (h *History) Len() int {
	return len(h.samples)
}

// Reset drops all recorded samples.
func (h *History) Reset() {
	h.samples = h.samples[:0]
}

// WriteTo renders the history as a bar chart: one row per 10 counts from
// 250 down to 0, one 4-character column per sample with u/d/l/r marking the
// channels whose value falls in the row's band.
func (h *History) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	for level := 250; level >= 0; level -= 10 {
		b.WriteString(pad(strconv.Itoa(level), 3))
		b.WriteByte(':')
		for _, s := range h.samples {
			b.WriteByte(mark('u', s.Up, level))
			b.WriteByte(mark('d', s.Down, level))
			b.WriteByte(mark('l', s.Left, level))
			b.WriteByte(mark('r', s.Right, level))
		}
		b.WriteByte('\n')
	}

	b.WriteString("----")
	for i := range h.samples {
		b.WriteString(strconv.Itoa(i))
		if i < 10 {
			b.WriteByte(' ')
		}
		b.WriteString("  ")
	}
	b.WriteByte('\n')

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String returns the rendered chart.
func (h *History) String() string {
	var b strings.Builder
	h.WriteTo(&b)
	return b.String()
}

func mark(c byte, v uint8, level int) byte {
	if int(v) >= level && int(v) < level+10 {
		return c
	}
	return ' '
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
