// I2C device handles
// Binds a bus and 7-bit address to a driver and exposes register access
package core

// MaxI2CTransfer bounds a single register block transfer
const MaxI2CTransfer = 32

// I2CDevice represents a device on a configured I2C bus
type I2CDevice struct {
	Bus     I2CBusID   // I2C bus number
	Address I2CAddress // 7-bit I2C address

	driver I2CDriver
}

// NewI2CDevice binds a device address to a driver. A nil driver falls back
// to the globally registered one on first use.
func NewI2CDevice(driver I2CDriver, bus I2CBusID, addr I2CAddress) *I2CDevice {
	return &I2CDevice{
		Bus:     bus,
		Address: addr & 0x7F,
		driver:  driver,
	}
}

func (d *I2CDevice) hal() I2CDriver {
	if d.driver == nil {
		d.driver = MustI2C()
	}
	return d.driver
}

// Configure sets up the underlying bus at the given rate
func (d *I2CDevice) Configure(frequencyHz uint32) error {
	return d.hal().ConfigureBus(d.Bus, frequencyHz)
}

// WriteRegister writes data starting at register reg
func (d *I2CDevice) WriteRegister(reg uint8, data ...byte) error {
	if len(data) > MaxI2CTransfer {
		data = data[:MaxI2CTransfer]
	}
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)
	return d.hal().Write(d.Bus, d.Address, buf)
}

// ReadRegister reads n bytes starting at register reg. Requests larger
// than MaxI2CTransfer are truncated.
func (d *I2CDevice) ReadRegister(reg uint8, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > MaxI2CTransfer {
		n = MaxI2CTransfer
	}
	return d.hal().Read(d.Bus, d.Address, []byte{reg}, uint8(n))
}
