package core

import (
	"sync"

	"tinygo.org/x/drivers"
)

// TxDriver implements I2CDriver on top of buses that expose a single Tx
// transaction, which covers machine.I2C on TinyGo targets and periph.io
// buses on Linux hosts.
type TxDriver struct {
	mu sync.Mutex

	buses map[I2CBusID]drivers.I2C

	// Optional hook used when ConfigureBus is called, e.g. to set pins and
	// baud rate on a machine.I2C. Hosts leave it nil.
	configure func(bus I2CBusID, i2c drivers.I2C, frequencyHz uint32) error
}

// NewTxDriver constructs a driver with no buses attached.
func NewTxDriver() *TxDriver {
	return &TxDriver{
		buses: make(map[I2CBusID]drivers.I2C),
	}
}

// Attach registers a bus under the given ID, replacing any previous one.
func (d *TxDriver) Attach(bus I2CBusID, i2c drivers.I2C) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buses[bus] = i2c
}

// SetConfigureFunc installs a per-bus configuration hook.
func (d *TxDriver) SetConfigureFunc(fn func(bus I2CBusID, i2c drivers.I2C, frequencyHz uint32) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.configure = fn
}

// ConfigureBus runs the configuration hook for an attached bus.
func (d *TxDriver) ConfigureBus(bus I2CBusID, frequencyHz uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return ErrUnsupportedBus
	}
	if d.configure == nil {
		return nil
	}
	return d.configure(bus, i2c, frequencyHz)
}

// Write transmits data to a device at the given address on the specified bus.
func (d *TxDriver) Write(bus I2CBusID, addr I2CAddress, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return ErrBusNotConfigured
	}

	// For write-only, we pass nil for the read buffer
	return i2c.Tx(uint16(addr), data, nil)
}

// Read reads data from a device, optionally writing a register address first.
func (d *TxDriver) Read(bus I2CBusID, addr I2CAddress, regData []byte, readLen uint8) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return nil, ErrBusNotConfigured
	}

	readBuf := make([]byte, readLen)

	// Tx issues a repeated start between the write and the read
	if len(regData) > 0 {
		if err := i2c.Tx(uint16(addr), regData, readBuf); err != nil {
			return nil, err
		}
	} else {
		if err := i2c.Tx(uint16(addr), nil, readBuf); err != nil {
			return nil, err
		}
	}

	return readBuf, nil
}
