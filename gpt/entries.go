package gpt

// entriesSize computes maxpart*partentrysize with an overflow check,
// and re-asserts the UEFI-mandated minimum.
func entriesSize(maxPart, partEntrySize uint32) (uint64, error) {
	size, overflow := mul64(uint64(maxPart), uint64(partEntrySize))
	if overflow {
		return 0, annotate(ErrOutOfMemory, "entries size overflow")
	}
	if size < MinEntriesBytes {
		return 0, annotatef(ErrBadPartTable, "entries size %d below minimum %d", size, MinEntriesBytes)
	}
	return size, nil
}

// readEntries reads the entry array a validated header describes, and
// verifies it against the header's recorded CRC.
func readEntries(dev Device, h *Header) ([]byte, error) {
	size, err := entriesSize(h.MaxPart, h.PartEntrySize)
	if err != nil {
		return nil, err
	}
	buf, err := readFull(dev, h.PartitionsLBA, 0, int(size))
	if err != nil {
		return nil, err
	}
	if crcGPT(buf) != h.PartEntryCRC32 {
		return nil, annotate(ErrBadPartTable, "partition entry array crc32 mismatch")
	}
	return buf, nil
}

// entryAt returns the raw partEntrySize-byte slot for index n within buf.
func entryAt(buf []byte, n uint32, partEntrySize uint32) []byte {
	off := uint64(n) * uint64(partEntrySize)
	return buf[off : off+uint64(partEntrySize)]
}

// decodeEntry decodes the first SizeOfPartitionEntry bytes of a raw slot.
func decodeEntry(raw []byte) (PartitionEntry, error) {
	var e PartitionEntry
	if err := decodeInto(raw[:SizeOfPartitionEntry], &e); err != nil {
		return PartitionEntry{}, annotate(ErrBug, "decode partition entry: "+err.Error())
	}
	return e, nil
}
