package protocol

// OutputBuffer receives encoded frames. EncodeFrame patches the length byte
// in place once the payload is known, hence the positional methods.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// ScratchOutput is a fixed-size OutputBuffer holding reports until the
// firmware flushes them to USB. Bytes past MessageMax are dropped.
type ScratchOutput struct {
	buf [MessageMax]byte
	n   int
}

func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) { s.n += copy(s.buf[s.n:], data) }
func (s *ScratchOutput) CurPosition() int   { return s.n }

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos >= 0 && pos < s.n {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos < 0 || pos > s.n {
		return nil
	}
	return s.buf[pos:s.n]
}

// Result returns every frame written since the last Reset.
func (s *ScratchOutput) Result() []byte { return s.buf[:s.n] }

func (s *ScratchOutput) Reset() { s.n = 0 }

// frameRing buffers link bytes until they form whole frames. One slot is
// kept free, so a ring of size n holds n-1 bytes.
type frameRing struct {
	buf  []byte
	head int // next byte to parse
	tail int // next free slot
	flat []byte
}

func newFrameRing(size int) *frameRing {
	return &frameRing{buf: make([]byte, size)}
}

func (r *frameRing) len() int {
	if r.tail >= r.head {
		return r.tail - r.head
	}
	return len(r.buf) - r.head + r.tail
}

func (r *frameRing) free() int { return len(r.buf) - 1 - r.len() }

// push stores as much of data as fits and reports how much that was.
func (r *frameRing) push(data []byte) int {
	n := min(len(data), r.free())
	for _, b := range data[:n] {
		r.buf[r.tail] = b
		r.tail = (r.tail + 1) % len(r.buf)
	}
	return n
}

// pending returns the buffered bytes in arrival order. When they wrap past
// the end of the ring they are joined in a reused slice, valid until the
// next call.
func (r *frameRing) pending() []byte {
	if r.head <= r.tail {
		return r.buf[r.head:r.tail]
	}
	r.flat = append(append(r.flat[:0], r.buf[r.head:]...), r.buf[:r.tail]...)
	return r.flat
}

func (r *frameRing) discard(n int) {
	n = min(n, r.len())
	r.head = (r.head + n) % len(r.buf)
}

func (r *frameRing) reset() {
	r.head, r.tail = 0, 0
}
