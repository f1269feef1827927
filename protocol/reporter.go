package protocol

import "sync/atomic"

// Reporter frames reports onto an output buffer with a rolling sequence
// number. Used on the firmware side of the link.
type Reporter struct {
	output        OutputBuffer
	nextSequence  uint32 // atomic, low nibble only
	flushCallback func() // Called after every frame
}

// NewReporter creates a Reporter writing to output
func NewReporter(output OutputBuffer) *Reporter {
	return &Reporter{output: output}
}

// Send encodes r and advances the sequence.
func (t *Reporter) Send(r Report) {
	seq := uint8(atomic.AddUint32(&t.nextSequence, 1)-1) & MessageSeqMask
	EncodeReport(t.output, seq, r)

	if t.flushCallback != nil {
		t.flushCallback()
	}
}

// Reset restarts the sequence at zero (after USB reconnect)
func (t *Reporter) Reset() {
	atomic.StoreUint32(&t.nextSequence, 0)
}

// SetFlushCallback sets a callback that pushes buffered output to the wire
func (t *Reporter) SetFlushCallback(callback func()) {
	t.flushCallback = callback
}
