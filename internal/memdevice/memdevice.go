// Package memdevice implements gpt.Device over an in-memory byte slice.
// It exists for this repository's own tests and for callers who already
// hold a disk image in memory (e.g. a file read in full); it is not a
// substitute for a real block device abstraction.
package memdevice

import "fmt"

// Device is a fixed-size, sector-addressed in-memory medium.
type Device struct {
	data          []byte
	logSectorSize uint
	totalSectors  uint64
	sizeKnown     bool
}

// New creates a Device over size bytes, with sector size 1<<logSectorSize.
// size must be a multiple of the sector size.
func New(size int, logSectorSize uint) *Device {
	return &Device{
		data:          make([]byte, size),
		logSectorSize: logSectorSize,
		totalSectors:  uint64(size) >> logSectorSize,
		sizeKnown:     true,
	}
}

// Bytes returns the device's backing storage for inspection in tests.
func (d *Device) Bytes() []byte { return d.data }

// HideSize makes TotalSectors report unknown, for exercising the
// medium-size-unknown code paths without needing a streaming medium.
func (d *Device) HideSize() { d.sizeKnown = false }

// Grow appends n zeroed bytes, simulating the medium having been resized
// upward out from under a previously-read Handle.
func (d *Device) Grow(n int) {
	d.data = append(d.data, make([]byte, n)...)
	d.totalSectors = uint64(len(d.data)) >> d.logSectorSize
}

func (d *Device) byteOffset(sector uint64, byteOffset uint32) (int64, error) {
	off := int64(sector)<<d.logSectorSize + int64(byteOffset)
	if off < 0 || off > int64(len(d.data)) {
		return 0, fmt.Errorf("memdevice: offset %d out of range (size %d)", off, len(d.data))
	}
	return off, nil
}

func (d *Device) ReadAt(sector uint64, byteOffset uint32, buf []byte) error {
	off, err := d.byteOffset(sector, byteOffset)
	if err != nil {
		return err
	}
	if off+int64(len(buf)) > int64(len(d.data)) {
		return fmt.Errorf("memdevice: read of %d bytes at %d exceeds size %d", len(buf), off, len(d.data))
	}
	copy(buf, d.data[off:off+int64(len(buf))])
	return nil
}

func (d *Device) WriteAt(sector uint64, byteOffset uint32, buf []byte) error {
	off, err := d.byteOffset(sector, byteOffset)
	if err != nil {
		return err
	}
	if off+int64(len(buf)) > int64(len(d.data)) {
		return fmt.Errorf("memdevice: write of %d bytes at %d exceeds size %d", len(buf), off, len(d.data))
	}
	copy(d.data[off:off+int64(len(buf))], buf)
	return nil
}

func (d *Device) LogSectorSize() uint { return d.logSectorSize }

func (d *Device) TotalSectors() (uint64, bool) {
	if !d.sizeKnown {
		return 0, false
	}
	return d.totalSectors, true
}
