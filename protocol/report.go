package protocol

import "errors"

// ReportKind tags a gesture report payload
const ReportKind = 1

var (
	ErrUnknownKind   = errors.New("unknown payload kind")
	ErrTrailingBytes = errors.New("trailing bytes after report")
)

// Report is the wire form of one finished gesture session. Flags carries
// the motion bitset as defined by the gesture package.
type Report struct {
	Sequence     uint8
	Flags        uint16
	Records      uint32
	SumNearFar   uint32
	DeltaNearFar int32
	DirUp        uint32
	DirDown      uint32
	DirLeft      uint32
	DirRight     uint32
}

// EncodeReport writes r as one frame using the low nibble of seq.
func EncodeReport(output OutputBuffer, seq uint8, r Report) {
	EncodeFrame(output, seq, func(output OutputBuffer) {
		EncodeVLQUint(output, ReportKind)
		EncodeVLQUint(output, uint32(r.Flags))
		EncodeVLQUint(output, r.Records)
		EncodeVLQUint(output, r.SumNearFar)
		EncodeVLQInt(output, r.DeltaNearFar)
		EncodeVLQUint(output, r.DirUp)
		EncodeVLQUint(output, r.DirDown)
		EncodeVLQUint(output, r.DirLeft)
		EncodeVLQUint(output, r.DirRight)
	})
}

// DecodeReport parses a frame payload produced by EncodeReport
func DecodeReport(payload []byte) (Report, error) {
	var r Report

	kind, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	if kind != ReportKind {
		return r, ErrUnknownKind
	}

	flags, err := DecodeVLQUint(&payload)
	if err != nil {
		return r, err
	}
	r.Flags = uint16(flags)

	for _, dst := range []*uint32{&r.Records, &r.SumNearFar} {
		if *dst, err = DecodeVLQUint(&payload); err != nil {
			return r, err
		}
	}
	if r.DeltaNearFar, err = DecodeVLQInt(&payload); err != nil {
		return r, err
	}
	for _, dst := range []*uint32{&r.DirUp, &r.DirDown, &r.DirLeft, &r.DirRight} {
		if *dst, err = DecodeVLQUint(&payload); err != nil {
			return r, err
		}
	}

	if len(payload) != 0 {
		return r, ErrTrailingBytes
	}
	return r, nil
}
