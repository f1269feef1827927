//go:build rp2040 || rp2350

package main

import (
	"machine"

	"gestsense/core"
)

var debugUART *machine.UART

// InitDebugUART routes core debug output to the default UART at 115200.
// Engine debug lines stay off unless enabled.
func InitDebugUART(enabled bool) {
	debugUART = machine.DefaultUART
	if err := debugUART.Configure(machine.UARTConfig{BaudRate: 115200}); err != nil {
		debugUART = nil
		return
	}

	core.SetDebugWriter(func(s string) {
		debugUART.Write([]byte(s))
		debugUART.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(enabled)
	core.DebugPrintln("=== gesture firmware ===")
}
