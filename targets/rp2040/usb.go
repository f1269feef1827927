//go:build rp2040 || rp2350

package main

import "machine"

// maxWriteFailures marks the host as gone once exceeded.
const maxWriteFailures = 10

var (
	consecutiveWriteFailures uint32
	usbWasDisconnected       bool
)

// InitUSB configures machine.Serial, which is USB CDC on the RP parts.
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// drainUSB discards anything the host sent. The link is report-only.
func drainUSB() {
	for machine.Serial.Buffered() > 0 {
		if _, err := machine.Serial.ReadByte(); err != nil {
			return
		}
	}
}

// writeUSB writes one frame, dropping it if the host stopped reading.
func writeUSB(frame []byte) {
	written := 0
	for written < len(frame) {
		n, err := machine.Serial.Write(frame[written:])
		if err != nil || n == 0 {
			consecutiveWriteFailures++
			if consecutiveWriteFailures > maxWriteFailures {
				usbWasDisconnected = true
				consecutiveWriteFailures = 0
			}
			return
		}
		written += n
	}
	consecutiveWriteFailures = 0
}
