//go:build rp2040 || rp2350

package main

import (
	"machine"

	"tinygo.org/x/drivers"

	"gestsense/core"
)

// Sensor wiring. I2C0 on GP4/GP5 is the Pico default.
const (
	sensorBus  core.I2CBusID = 0
	sensorFreq               = 400000
)

var (
	sensorSDA = machine.GPIO4
	sensorSCL = machine.GPIO5

	// APDS-9960 INT, open drain and active low
	sensorInt = machine.GPIO6
)

// newI2CDriver attaches the RP I2C peripherals to a core.TxDriver. Pins and
// clock are applied when a device configures its bus.
func newI2CDriver() *core.TxDriver {
	d := core.NewTxDriver()
	d.Attach(0, machine.I2C0)
	d.Attach(1, machine.I2C1)

	d.SetConfigureFunc(func(bus core.I2CBusID, i2c drivers.I2C, frequencyHz uint32) error {
		hw, ok := i2c.(*machine.I2C)
		if !ok {
			return core.ErrUnsupportedBus
		}
		cfg := machine.I2CConfig{Frequency: frequencyHz}
		if bus == sensorBus {
			cfg.SDA = sensorSDA
			cfg.SCL = sensorSCL
		}
		return hw.Configure(cfg)
	})
	return d
}
