package apds9960

import "gestsense/gesture"

var _ gesture.Source = (*Device)(nil)

// SensingActive reports whether power or the gesture engine is enabled.
func (d *Device) SensingActive() (bool, error) {
	mode, err := d.Mode()
	if err != nil {
		return false, err
	}
	return mode&sensingMask != 0, nil
}

// DataReady reports GVALID.
func (d *Device) DataReady() (bool, error) {
	st, err := d.readByte(regGStatus)
	if err != nil {
		return false, err
	}
	return st&gstatusGValid != 0, nil
}

// Overflowed reports GFOV, set when the FIFO filled before it was drained.
func (d *Device) Overflowed() (bool, error) {
	st, err := d.readByte(regGStatus)
	if err != nil {
		return false, err
	}
	return st&gstatusGFOV != 0, nil
}

// FIFOLevel returns the number of datasets waiting in the gesture FIFO.
func (d *Device) FIFOLevel() (int, error) {
	lvl, err := d.readByte(regGFLvl)
	if err != nil {
		return 0, err
	}
	return int(lvl), nil
}

// FetchBatch drains up to len(dst) samples, and never more than one bus
// transfer's worth, from the gesture FIFO.
func (d *Device) FetchBatch(dst []gesture.Sample) (int, error) {
	level, err := d.FIFOLevel()
	if err != nil {
		return 0, err
	}
	if level > gesture.MaxBatch {
		level = gesture.MaxBatch
	}
	if level > len(dst) {
		level = len(dst)
	}
	if level <= 0 {
		return 0, nil
	}

	got, err := d.readBlock(regGFifoU, d.fifo[:level*gesture.SampleSize])
	if err != nil {
		return 0, err
	}
	return gesture.DecodeSamples(dst, d.fifo[:got]), nil
}
