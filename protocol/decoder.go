package protocol

// DecoderStats counts what a ReportDecoder has seen
type DecoderStats struct {
	Frames    int // valid frames carrying a report
	Dropped   int // resyncs after a bad length, class, sync byte or CRC
	Malformed int // valid frames whose payload did not decode
	Gaps      int // reports missing according to the sequence
}

// ReportDecoder reassembles reports from a byte stream. It stops at the
// first framing error and discards input until the next sync byte.
type ReportDecoder struct {
	input          *frameRing
	isSynchronized bool
	haveSequence   bool
	nextSequence   uint8
	stats          DecoderStats
}

// NewReportDecoder creates a decoder that starts synchronized
func NewReportDecoder() *ReportDecoder {
	return newReportDecoder(MessageMax)
}

func newReportDecoder(bufSize int) *ReportDecoder {
	return &ReportDecoder{
		input:          newFrameRing(bufSize),
		isSynchronized: true,
	}
}

// Stats returns counters since creation or the last Reset
func (d *ReportDecoder) Stats() DecoderStats {
	return d.stats
}

// Feed appends raw bytes from the link and returns every report completed.
func (d *ReportDecoder) Feed(data []byte) []Report {
	var out []Report
	for len(data) > 0 {
		n := d.input.push(data)
		data = data[n:]
		out = append(out, d.drain()...)
		if n == 0 && d.input.free() == 0 {
			// A full buffer with no frame in it is garbage
			d.input.discard(d.input.len())
			d.isSynchronized = false
			d.stats.Dropped++
		}
	}
	return out
}

// drain decodes the complete frames buffered so far and discards the bytes
// they used. A trailing partial frame stays buffered.
func (d *ReportDecoder) drain() []Report {
	var out []Report
	data := d.input.pending()

	for len(data) > 0 {
		if !d.isSynchronized {
			// Look for sync byte
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}

			if syncPos >= 0 {
				data = data[syncPos+1:]
				d.isSynchronized = true
			} else {
				data = nil
			}
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		frame := Frame{
			Length:   uint8(msgLen),
			Sequence: seq & MessageSeqMask,
			Payload:  data[MessageHeaderSize : msgLen-MessageTrailerSize],
			CRC:      frameCRC,
		}
		data = data[msgLen:]

		if r, ok := d.dispatch(frame); ok {
			out = append(out, r)
		}
	}

	d.input.discard(d.input.len() - len(data))
	return out
}

func (d *ReportDecoder) dispatch(frame Frame) (Report, bool) {
	r, err := DecodeReport(frame.Payload)
	if err != nil {
		d.stats.Malformed++
		return Report{}, false
	}
	r.Sequence = frame.Sequence

	if d.haveSequence && frame.Sequence != d.nextSequence {
		d.stats.Gaps += int((frame.Sequence - d.nextSequence) & MessageSeqMask)
	}
	d.haveSequence = true
	d.nextSequence = (frame.Sequence + 1) & MessageSeqMask
	d.stats.Frames++
	return r, true
}

func (d *ReportDecoder) desync() {
	d.isSynchronized = false
	d.stats.Dropped++
}

// Reset drops buffered input, counters and sequence tracking
func (d *ReportDecoder) Reset() {
	d.input.reset()
	d.isSynchronized = true
	d.haveSequence = false
	d.stats = DecoderStats{}
}
