package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"
)

type txCall struct {
	addr uint16
	w    []byte
	rlen int
}

// fakeTx records transactions and answers reads with resp.
type fakeTx struct {
	calls []txCall
	resp  []byte
	err   error
}

var _ drivers.I2C = (*fakeTx)(nil)

func (f *fakeTx) Tx(addr uint16, w, r []byte) error {
	f.calls = append(f.calls, txCall{addr: addr, w: append([]byte(nil), w...), rlen: len(r)})
	if f.err != nil {
		return f.err
	}
	copy(r, f.resp)
	return nil
}

func TestTxDriverUnattachedBus(t *testing.T) {
	d := NewTxDriver()

	assert.ErrorIs(t, d.ConfigureBus(3, 100000), ErrUnsupportedBus)
	assert.ErrorIs(t, d.Write(3, 0x39, []byte{0x80, 0x01}), ErrBusNotConfigured)
	_, err := d.Read(3, 0x39, []byte{0x92}, 1)
	assert.ErrorIs(t, err, ErrBusNotConfigured)
}

func TestTxDriverConfigureHook(t *testing.T) {
	d := NewTxDriver()
	bus := &fakeTx{}
	d.Attach(1, bus)

	require.NoError(t, d.ConfigureBus(1, 400000))

	var gotBus I2CBusID
	var gotHz uint32
	d.SetConfigureFunc(func(id I2CBusID, i2c drivers.I2C, hz uint32) error {
		gotBus, gotHz = id, hz
		assert.Same(t, bus, i2c)
		return nil
	})
	require.NoError(t, d.ConfigureBus(1, 400000))
	assert.Equal(t, I2CBusID(1), gotBus)
	assert.Equal(t, uint32(400000), gotHz)
}

func TestTxDriverReadWrite(t *testing.T) {
	d := NewTxDriver()
	bus := &fakeTx{resp: []byte{0xAB, 0xCD}}
	d.Attach(0, bus)

	require.NoError(t, d.Write(0, 0x39, []byte{0x80, 0x41}))
	data, err := d.Read(0, 0x39, []byte{0x92}, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD}, data)

	_, err = d.Read(0, 0x39, nil, 1)
	require.NoError(t, err)

	require.Len(t, bus.calls, 3)
	assert.Equal(t, txCall{addr: 0x39, w: []byte{0x80, 0x41}, rlen: 0}, bus.calls[0])
	assert.Equal(t, txCall{addr: 0x39, w: []byte{0x92}, rlen: 2}, bus.calls[1])
	assert.Equal(t, txCall{addr: 0x39, w: nil, rlen: 1}, bus.calls[2])
}

func TestTxDriverPropagatesBusError(t *testing.T) {
	nack := errors.New("nack")
	d := NewTxDriver()
	d.Attach(0, &fakeTx{err: nack})

	assert.ErrorIs(t, d.Write(0, 0x39, []byte{0x80}), nack)
	_, err := d.Read(0, 0x39, []byte{0x92}, 1)
	assert.ErrorIs(t, err, nack)
}

func TestI2CDeviceRegisters(t *testing.T) {
	d := NewTxDriver()
	bus := &fakeTx{resp: make([]byte, 64)}
	d.Attach(0, bus)
	dev := NewI2CDevice(d, 0, 0xB9)

	assert.Equal(t, I2CAddress(0x39), dev.Address)

	require.NoError(t, dev.WriteRegister(0xA3, 0x41))
	data, err := dev.ReadRegister(0xFC, 40)
	require.NoError(t, err)
	assert.Len(t, data, MaxI2CTransfer)

	data, err = dev.ReadRegister(0xFC, 0)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.Len(t, bus.calls, 2)
	assert.Equal(t, []byte{0xA3, 0x41}, bus.calls[0].w)
	assert.Equal(t, MaxI2CTransfer, bus.calls[1].rlen)
}

func TestI2CDeviceFallsBackToGlobalDriver(t *testing.T) {
	prev := i2cDriver
	defer SetI2CDriver(prev)

	d := NewTxDriver()
	bus := &fakeTx{}
	d.Attach(0, bus)
	SetI2CDriver(d)

	dev := NewI2CDevice(nil, 0, 0x39)
	require.NoError(t, dev.WriteRegister(0x80, 0x01))
	assert.Len(t, bus.calls, 1)
}

func TestMustI2CPanicsWithoutDriver(t *testing.T) {
	prev := i2cDriver
	defer SetI2CDriver(prev)

	SetI2CDriver(nil)
	assert.Panics(t, func() { MustI2C() })
}
