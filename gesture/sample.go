// Package gesture implements the swipe and near/far recognition engine that
// runs on top of the directional photodiode FIFO of an APDS-9960.
//
// A Session polls a Source for batches of samples, feeds them to an
// Accumulator under a fixed sample ceiling and decodes the final state into
// a Motion once the device stops reporting valid data.
package gesture

// SampleSize is the number of FIFO bytes per sample (U, D, L, R).
const SampleSize = 4

// MaxBatch is the largest batch one FIFO read can return: the hardware
// buffer holds 32 bytes.
const MaxBatch = 8

// Sample is one instant's reading of the four directional photodiodes.
type Sample struct {
	Up    uint8
	Down  uint8
	Left  uint8
	Right uint8
}

// level is the 4-channel average used as a coarse distance proxy.
func (s Sample) level() uint16 {
	return (uint16(s.Up) + uint16(s.Down) + uint16(s.Left) + uint16(s.Right)) / 4
}

// DecodeSamples fills dst from raw FIFO bytes in U,D,L,R order and returns
// the number of whole samples decoded. Trailing partial samples are ignored.
func DecodeSamples(dst []Sample, raw []byte) int {
	n := len(raw) / SampleSize
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		b := raw[i*SampleSize : (i+1)*SampleSize]
		dst[i] = Sample{Up: b[0], Down: b[1], Left: b[2], Right: b[3]}
	}
	return n
}
