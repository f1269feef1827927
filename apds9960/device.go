// Package apds9960 drives the gesture engine of a Broadcom APDS-9960
// proximity, light and gesture sensor over I2C.
package apds9960

import (
	"errors"
	"fmt"

	"gestsense/core"
)

// ErrUnknownDevice is returned by Probe when the ID register does not match
// a known part.
var ErrUnknownDevice = errors.New("apds9960: unknown device id")

// Device is one APDS-9960 on a bus.
type Device struct {
	bus  *core.I2CDevice
	fifo [fifoDepth * 4]byte
}

// New returns a device bound to driver. addr 0 selects the fixed address.
func New(driver core.I2CDriver, bus core.I2CBusID, addr core.I2CAddress) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{bus: core.NewI2CDevice(driver, bus, addr)}
}

// Configure sets the bus clock.
func (d *Device) Configure(frequencyHz uint32) error {
	return d.bus.Configure(frequencyHz)
}

// ID reads the device ID register.
func (d *Device) ID() (uint8, error) {
	return d.readByte(regID)
}

// Probe checks the ID register against the known parts.
func (d *Device) Probe() error {
	id, err := d.ID()
	if err != nil {
		return err
	}
	for _, known := range DeviceIDs {
		if id == known {
			return nil
		}
	}
	return fmt.Errorf("%w: 0x%02X", ErrUnknownDevice, id)
}

// Mode returns the ENABLE register.
func (d *Device) Mode() (uint8, error) {
	return d.readByte(regEnable)
}

// SetMode turns one ENABLE bit on or off. ModeAll switches every feature.
func (d *Device) SetMode(mode Mode, on bool) error {
	if mode == ModeAll {
		var v uint8
		if on {
			v = enableMask
		}
		return d.writeByte(regEnable, v)
	}
	if mode > ModeGesture {
		return fmt.Errorf("apds9960: invalid mode bit %d", mode)
	}
	bit := uint8(1) << mode
	var v uint8
	if on {
		v = bit
	}
	return d.updateBits(regEnable, bit, v)
}

// EnablePower sets PON.
func (d *Device) EnablePower() error { return d.SetMode(ModePower, true) }

// DisablePower clears PON.
func (d *Device) DisablePower() error { return d.SetMode(ModePower, false) }

// EnableGesture loads the gesture defaults and starts the gesture engine.
// Wait and proximity are enabled alongside since the engine is entered
// through the proximity threshold.
func (d *Device) EnableGesture(interrupts bool) error {
	steps := []func() error{
		func() error { return d.SetGestureEnterThreshold(DefaultGestureEnter) },
		func() error { return d.SetGestureExitThreshold(DefaultGestureExit) },
		func() error { return d.writeByte(regGConf1, DefaultGConf1) },
		func() error {
			return d.writeByte(regGConf2, DefaultGestureGain<<5|DefaultGestureDrive<<3|DefaultGestureWait)
		},
		func() error { return d.SetGestureOffsets(Offsets{}) },
		func() error { return d.writeByte(regGPulse, DefaultGPulse) },
		func() error { return d.writeByte(regGConf3, DefaultGConf3) },
		func() error { return d.SetLEDBoost(DefaultLEDBoost) },
		func() error { return d.SetGestureIntEnable(interrupts) },
		func() error { return d.SetGestureMode(true) },
		d.EnablePower,
		func() error { return d.SetMode(ModeWait, true) },
		func() error { return d.SetMode(ModeProximity, true) },
		func() error { return d.SetMode(ModeGesture, true) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("apds9960: enable gesture: %w", err)
		}
	}
	return nil
}

// DisableGesture stops the gesture engine and its interrupt.
func (d *Device) DisableGesture() error {
	if err := d.SetGestureIntEnable(false); err != nil {
		return err
	}
	if err := d.SetGestureMode(false); err != nil {
		return err
	}
	return d.SetMode(ModeGesture, false)
}

// GestureEnterThreshold returns GPENTH.
func (d *Device) GestureEnterThreshold() (uint8, error) { return d.readByte(regGPEnTh) }

// SetGestureEnterThreshold sets the proximity level that enters the engine.
func (d *Device) SetGestureEnterThreshold(v uint8) error { return d.writeByte(regGPEnTh, v) }

// GestureExitThreshold returns GEXTH.
func (d *Device) GestureExitThreshold() (uint8, error) { return d.readByte(regGExTh) }

// SetGestureExitThreshold sets the level below which the engine exits.
func (d *Device) SetGestureExitThreshold(v uint8) error { return d.writeByte(regGExTh, v) }

// GestureGain returns the photodiode gain code (GestureGain1x..8x).
func (d *Device) GestureGain() (uint8, error) { return d.readField(regGConf2, 5, 0x03) }

func (d *Device) SetGestureGain(gain uint8) error { return d.writeField(regGConf2, 5, 0x03, gain) }

// GestureLEDDrive returns the LED drive code (LEDDrive100mA..12mA).
func (d *Device) GestureLEDDrive() (uint8, error) { return d.readField(regGConf2, 3, 0x03) }

func (d *Device) SetGestureLEDDrive(drive uint8) error {
	return d.writeField(regGConf2, 3, 0x03, drive)
}

// GestureWaitTime returns the wait code between gesture cycles.
func (d *Device) GestureWaitTime() (uint8, error) { return d.readField(regGConf2, 0, 0x07) }

func (d *Device) SetGestureWaitTime(wait uint8) error {
	return d.writeField(regGConf2, 0, 0x07, wait)
}

// LEDBoost returns the LED current boost code (LEDBoost100..300).
func (d *Device) LEDBoost() (uint8, error) { return d.readField(regConfig2, 4, 0x03) }

func (d *Device) SetLEDBoost(boost uint8) error { return d.writeField(regConfig2, 4, 0x03, boost) }

// GestureIntEnabled reports GIEN.
func (d *Device) GestureIntEnabled() (bool, error) {
	v, err := d.readByte(regGConf4)
	return v&gconf4GIEN != 0, err
}

func (d *Device) SetGestureIntEnable(on bool) error {
	return d.updateBits(regGConf4, gconf4GIEN, boolBit(on, gconf4GIEN))
}

// GestureMode reports whether the gesture state machine is running.
func (d *Device) GestureMode() (bool, error) {
	v, err := d.readByte(regGConf4)
	return v&gconf4GMode != 0, err
}

func (d *Device) SetGestureMode(on bool) error {
	return d.updateBits(regGConf4, gconf4GMode, boolBit(on, gconf4GMode))
}

// ClearGestureFIFO drops every dataset held in the gesture FIFO.
func (d *Device) ClearGestureFIFO() error {
	return d.updateBits(regGConf4, gconf4GFifoClr, gconf4GFifoClr)
}

// Offsets are the per-direction gesture offset corrections, -127..127.
type Offsets struct {
	Up, Down, Left, Right int8
}

// GestureOffsets reads the four offset registers.
func (d *Device) GestureOffsets() (Offsets, error) {
	var o Offsets
	for _, f := range []struct {
		reg uint8
		dst *int8
	}{
		{regGOffsetU, &o.Up},
		{regGOffsetD, &o.Down},
		{regGOffsetL, &o.Left},
		{regGOffsetR, &o.Right},
	} {
		v, err := d.readByte(f.reg)
		if err != nil {
			return Offsets{}, err
		}
		*f.dst = decodeOffset(v)
	}
	return o, nil
}

// SetGestureOffsets writes the four offset registers.
func (d *Device) SetGestureOffsets(o Offsets) error {
	for _, f := range []struct {
		reg uint8
		v   int8
	}{
		{regGOffsetU, o.Up},
		{regGOffsetD, o.Down},
		{regGOffsetL, o.Left},
		{regGOffsetR, o.Right},
	} {
		if err := d.writeByte(f.reg, encodeOffset(f.v)); err != nil {
			return err
		}
	}
	return nil
}

// Offset registers are sign-magnitude: bit 7 is the sign, bits 6:0 the
// magnitude. -128 has no encoding and saturates to -127.
func encodeOffset(v int8) uint8 {
	if v >= 0 {
		return uint8(v)
	}
	m := -int16(v)
	if m > 127 {
		m = 127
	}
	return 0x80 | uint8(m)
}

func decodeOffset(b uint8) int8 {
	m := int8(b & 0x7F)
	if b&0x80 != 0 {
		return -m
	}
	return m
}

func boolBit(on bool, bit uint8) uint8 {
	if on {
		return bit
	}
	return 0
}
