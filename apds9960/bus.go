package apds9960

import (
	"errors"
	"fmt"

	"gestsense/core"
)

// ErrShortRead is returned when the bus returns fewer bytes than requested
// for a single register.
var ErrShortRead = errors.New("apds9960: short register read")

func (d *Device) readByte(reg uint8) (uint8, error) {
	data, err := d.bus.ReadRegister(reg, 1)
	if err != nil {
		return 0, fmt.Errorf("apds9960: read 0x%02X: %w", reg, err)
	}
	if len(data) < 1 {
		return 0, fmt.Errorf("apds9960: read 0x%02X: %w", reg, ErrShortRead)
	}
	return data[0], nil
}

func (d *Device) writeByte(reg, value uint8) error {
	if err := d.bus.WriteRegister(reg, value); err != nil {
		return fmt.Errorf("apds9960: write 0x%02X: %w", reg, err)
	}
	return nil
}

// readBlock fills dst starting at reg and returns the number of bytes
// actually transferred. Requests beyond one bus transfer are truncated.
func (d *Device) readBlock(reg uint8, dst []byte) (int, error) {
	n := len(dst)
	if n > core.MaxI2CTransfer {
		n = core.MaxI2CTransfer
	}
	data, err := d.bus.ReadRegister(reg, n)
	if err != nil {
		return 0, fmt.Errorf("apds9960: block read 0x%02X: %w", reg, err)
	}
	return copy(dst[:n], data), nil
}

// updateBits replaces the bits selected by mask with value.
func (d *Device) updateBits(reg, mask, value uint8) error {
	cur, err := d.readByte(reg)
	if err != nil {
		return err
	}
	return d.writeByte(reg, cur&^mask|value&mask)
}

// readField returns (reg >> shift) & mask.
func (d *Device) readField(reg, shift, mask uint8) (uint8, error) {
	v, err := d.readByte(reg)
	if err != nil {
		return 0, err
	}
	return (v >> shift) & mask, nil
}

// writeField stores value&mask at shift, preserving the rest of reg.
func (d *Device) writeField(reg, shift, mask, value uint8) error {
	return d.updateBits(reg, mask<<shift, (value&mask)<<shift)
}
