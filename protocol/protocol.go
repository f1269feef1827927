// Package protocol frames gesture reports for the serial link between board
// firmware and the host.
//
// Frames follow the Klipper/Anchor block layout:
//
//	[len][seq][payload...][crc hi][crc lo][0x7E]
//
// with a VLQ encoded payload and the CCITT variant of CRC16 over header and
// payload.
package protocol

// Version represents the report protocol version
const Version = "0.1.0"

// Framing constants
const (
	MessageMax         = 512 // Scratch output capacity
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E

	// Sequence byte: high nibble is the fixed class, low nibble counts
	MessageDest     = 0x10
	MessageSeqMask  = 0x0F
	MessageSeqShift = 4
)

// Frame represents one validated message block
type Frame struct {
	Length   uint8
	Sequence uint8
	Payload  []byte // Frame data without header/trailer
	CRC      uint16
}

// EncodeFrame writes a complete frame to output. frameData fills the payload.
func EncodeFrame(output OutputBuffer, seq uint8, frameData func(output OutputBuffer)) {
	cursor := output.CurPosition()

	// Header with length placeholder
	output.Output([]byte{0, MessageDest | seq&MessageSeqMask})

	frameData(output)

	changed := len(output.DataSince(cursor))
	output.Update(cursor, uint8(changed+MessageTrailerSize))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
}
