// Package gpt reads, validates, repairs, and writes GUID Partition Tables
// on block-addressable storage, per the UEFI specification.
package gpt

import (
	"encoding/binary"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// See the UEFI specification (https://uefi.org/specifications) for the
// on-medium layout these types mirror.

var (
	SizeOfPMBR           = binary.Size(ProtectiveMBR{})
	SizeOfHeader         = binary.Size(Header{})
	SizeOfPartitionEntry = binary.Size(PartitionEntry{})
)

const (
	// MinLogSectorSize is the smallest logical sector size this package
	// accepts, expressed as a base-2 log (log2(512) == 9).
	MinLogSectorSize = 9

	MinHeaderSize    uint32 = 92
	HeaderRevision   uint32 = 0x00010000
	HeaderSignature  uint64 = 0x5452415020494645 // ASCII "EFI PART"
	MinEntrySize     uint32 = 128
	MinEntriesBytes  uint64 = 16384
	PrimaryHeaderLBA uint64 = 1

	ProtectiveMBRSignature uint16 = 0xAA55
	ProtectiveMBRTypeGPT   uint8  = 0xEE

	// PartitionNameUnits is the number of UTF-16LE code units in a
	// partition entry's name field.
	PartitionNameUnits = 36
)

// ProtectiveMBR is the legacy 512-byte record at sector 0.
type ProtectiveMBR struct {
	BootCode       [440]byte
	DiskSignature  uint32
	Unknown        uint16
	Partitions     [4]PartitionRecordMBR
	Signature      uint16
}

// PartitionRecordMBR is one 16-byte legacy partition record.
type PartitionRecordMBR struct {
	BootIndicator uint8
	StartingCHS   [3]byte
	OSType        uint8
	EndingCHS     [3]byte
	StartingLBA   uint32
	SizeInLBA     uint32
}

// Header is a GPT header as it appears on the medium (little-endian).
type Header struct {
	Signature      uint64
	Revision       uint32
	HeaderSize     uint32
	HeaderCRC32    uint32
	Reserved       uint32
	MyLBA          uint64
	AlternateLBA   uint64
	FirstUsableLBA uint64
	LastUsableLBA  uint64
	DiskGUID       guid.GUID
	PartitionsLBA  uint64
	MaxPart        uint32
	PartEntrySize  uint32
	PartEntryCRC32 uint32
}

// HeaderReservedSize is the number of trailing zero bytes a native-size
// (92-byte) header leaves before the end of a 512-byte sector; on larger
// sectors the padding is longer, and Write pads to the medium's actual
// sector size. A header read
// from the medium with a larger declared HeaderSize keeps its extra bytes
// in the raw buffer reader.go hands to headerCheck, not in this struct —
// see the design note on non-native header sizes in SPEC_FULL.md.
const HeaderReservedSize = 420

// PartitionEntry is one fixed-size entry in the GPT entry array. Only the
// first 128 bytes the UEFI specification defines are modeled here;
// implementations writing a larger PartEntrySize must preserve whatever
// trailing bytes they read, which this package does by keeping entries in
// their raw buffer form (see entries.go) rather than decoding in place.
type PartitionEntry struct {
	TypeGUID   guid.GUID
	PartGUID   guid.GUID
	FirstLBA   uint64
	LastLBA    uint64
	Attributes uint64
	Name       [PartitionNameUnits * 2]byte // UTF-16LE, zero-padded
}

// IsUnused reports whether the entry's type GUID is all-zero, i.e. the
// slot does not describe a partition.
func (e *PartitionEntry) IsUnused() bool {
	return e.TypeGUID == guid.GUID{}
}
