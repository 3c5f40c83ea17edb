package gpt

import "hash/crc32"

// crcGPT computes the CRC-32 (IEEE polynomial) GPT expects over data. The
// result is a plain uint32; callers serialize it with
// binary.LittleEndian.PutUint32 (as encoding/binary already does for the
// Header/PartitionEntry structs), matching the on-medium convention.
// Go's crc32.ChecksumIEEE always returns the checksum as a numeric value
// regardless of host byte order, so no explicit byte-swap is needed here
// — the wrapper exists so the rest of the package names the GPT-specific
// checksum once rather than calling crc32.ChecksumIEEE directly at every
// call site.
func crcGPT(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
