package gpt

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Error kinds this package returns. Each is a sentinel; callers use
// errors.Is against these, while the library itself adds context with
// github.com/pkg/errors.Wrap as an error climbs back out of a helper, so
// the sentinel survives at the bottom of the chain.
var (
	// ErrBadPartTable covers any on-medium inconsistency: wrong magic or
	// revision, a CRC mismatch, out-of-range header fields, or mirror
	// divergence between primary and backup.
	ErrBadPartTable = errors.New("gpt: bad partition table")

	// ErrBadArgument is returned when a caller passes an index or
	// descriptor that does not address a GPT partition.
	ErrBadArgument = errors.New("gpt: bad argument")

	// ErrOutOfRange is returned when the backup copy's location cannot be
	// determined, or lies beyond the medium.
	ErrOutOfRange = errors.New("gpt: location out of range")

	// ErrOutOfMemory is returned on allocation failure or on overflow
	// computing the entry array's byte size.
	ErrOutOfMemory = errors.New("gpt: out of memory")

	// ErrNotImplemented is returned for a sector-size change between Read
	// and Repair, or for a non-native header size at Write time.
	ErrNotImplemented = errors.New("gpt: not implemented")

	// ErrBug indicates an internal invariant violation — a defect in this
	// package, not a data error on the medium.
	ErrBug = errors.New("gpt: internal invariant violated")

	// ErrIO marks an error as a transparent pass-through from the block
	// device rather than a data error this package diagnosed itself.
	ErrIO = errors.New("gpt: device I/O error")
)

// wrapIO annotates a device error with ErrIO and a message: the sentinel
// survives at the bottom of the chain for errors.Is, while Error() carries
// both the operation that failed and the device's own message.
func wrapIO(err error, msg string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(errPair{outer: ErrIO, inner: err}, msg)
}

// errPair lets wrapIO report two distinct sentinels (ErrIO, and whatever
// the device itself returned) through a single errors.Is-compatible chain.
type errPair struct {
	outer error
	inner error
}

func (e errPair) Error() string { return e.inner.Error() }

func (e errPair) Is(target error) bool { return target == e.outer }

func (e errPair) Unwrap() error { return e.inner }

// IsIO reports whether err (or any error it wraps) originated as a device I/O error.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// annotate wraps kind with msg, preserving kind for errors.Is while adding
// the caller's context to Error(), without a global error slot.
func annotate(kind error, msg string) error {
	return pkgerrors.Wrap(kind, msg)
}

// annotatef is annotate with Sprintf-style formatting.
func annotatef(kind error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(kind, format, args...)
}

// IsBadPartTable reports whether err (or any error it wraps) is ErrBadPartTable.
func IsBadPartTable(err error) bool { return errors.Is(err, ErrBadPartTable) }

// IsBadArgument reports whether err (or any error it wraps) is ErrBadArgument.
func IsBadArgument(err error) bool { return errors.Is(err, ErrBadArgument) }

// IsOutOfRange reports whether err (or any error it wraps) is ErrOutOfRange.
func IsOutOfRange(err error) bool { return errors.Is(err, ErrOutOfRange) }

// IsOutOfMemory reports whether err (or any error it wraps) is ErrOutOfMemory.
func IsOutOfMemory(err error) bool { return errors.Is(err, ErrOutOfMemory) }

// IsNotImplemented reports whether err (or any error it wraps) is ErrNotImplemented.
func IsNotImplemented(err error) bool { return errors.Is(err, ErrNotImplemented) }

// IsBug reports whether err (or any error it wraps) is ErrBug.
func IsBug(err error) bool { return errors.Is(err, ErrBug) }
