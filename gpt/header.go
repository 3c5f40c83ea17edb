package gpt

// headerCRCOffset is the byte offset of HeaderCRC32 within the on-medium
// header encoding: Signature(8) + Revision(4) + HeaderSize(4).
const headerCRCOffset = 16

// decodeHeader decodes the first SizeOfHeader bytes of raw into a Header.
// raw must be at least SizeOfHeader bytes; callers (reader.go) always read
// a full sector, which is never smaller.
func decodeHeader(raw []byte) (Header, error) {
	var h Header
	if err := decodeInto(raw[:SizeOfHeader], &h); err != nil {
		return Header{}, annotate(ErrBug, "decode header: "+err.Error())
	}
	return h, nil
}

// encodeHeader serializes h in native (92-byte) form.
func encodeHeader(h *Header) ([]byte, error) {
	raw, err := encodeFrom(h)
	if err != nil {
		return nil, annotate(ErrBug, "encode header: "+err.Error())
	}
	return raw, nil
}

// headerChecksum computes the CRC32 of raw as if HeaderCRC32 were zeroed,
// over exactly the first headerSize bytes, including for a header
// declaring a larger-than-native size.
func headerChecksum(raw []byte, headerSize uint32) uint32 {
	scratch := make([]byte, headerSize)
	copy(scratch, raw[:headerSize])
	for i := 0; i < 4; i++ {
		scratch[headerCRCOffset+i] = 0
	}
	return crcGPT(scratch)
}

// headerCheck validates signature, revision, header size, CRC, entry
// size, and usable-range sanity. raw is the full sector the header was
// read from (or at least headerSize bytes of it), used to recompute the
// CRC exactly as recorded on the medium.
func headerCheck(h *Header, raw []byte, logSectorSize uint) error {
	if h.Signature != HeaderSignature {
		return annotatef(ErrBadPartTable, "bad header signature %#x", h.Signature)
	}
	if h.Revision != HeaderRevision {
		return annotatef(ErrBadPartTable, "bad header revision %#x", h.Revision)
	}
	sectorSize := uint64(1) << logSectorSize
	if uint64(h.HeaderSize) < uint64(MinHeaderSize) || uint64(h.HeaderSize) > sectorSize {
		return annotatef(ErrBadPartTable, "header size %d out of range [%d, %d]", h.HeaderSize, MinHeaderSize, sectorSize)
	}
	if uint64(h.HeaderSize) > uint64(len(raw)) {
		return annotatef(ErrBadPartTable, "header size %d exceeds sector read of %d bytes", h.HeaderSize, len(raw))
	}
	want := h.HeaderCRC32
	got := headerChecksum(raw, h.HeaderSize)
	if got != want {
		return annotatef(ErrBadPartTable, "header crc32 mismatch: have %#x, want %#x", got, want)
	}
	if h.PartEntrySize < MinEntrySize ||
		h.PartEntrySize%MinEntrySize != 0 ||
		!isPowerOfTwo(uint64(h.PartEntrySize/MinEntrySize)) {
		return annotatef(ErrBadPartTable, "invalid partition entry size %d", h.PartEntrySize)
	}
	entriesBytes, overflow := mul64(uint64(h.MaxPart), uint64(h.PartEntrySize))
	if overflow {
		return annotatef(ErrOutOfMemory, "maxpart*partentrysize overflows")
	}
	if entriesBytes < MinEntriesBytes {
		return annotatef(ErrBadPartTable, "entry array size %d below minimum %d", entriesBytes, MinEntriesBytes)
	}
	if h.FirstUsableLBA > h.LastUsableLBA {
		return annotatef(ErrBadPartTable, "first usable lba %d > last usable lba %d", h.FirstUsableLBA, h.LastUsableLBA)
	}
	return nil
}

// checkPrimary validates the placement rules specific to the primary
// header copy: it sits at LBA 1, its entry array fits before the first
// usable LBA, and its alternate LBA points past the last usable LBA.
func checkPrimary(h *Header, logSectorSize uint) error {
	if h.MyLBA != PrimaryHeaderLBA {
		return annotatef(ErrBadPartTable, "primary header_lba %d != 1", h.MyLBA)
	}
	if h.PartitionsLBA <= PrimaryHeaderLBA {
		return annotatef(ErrBadPartTable, "primary partitions_lba %d <= 1", h.PartitionsLBA)
	}
	entriesBytes := uint64(h.MaxPart) * uint64(h.PartEntrySize)
	entriesSectors := sectorsForBytes(entriesBytes, logSectorSize)
	if h.PartitionsLBA+entriesSectors > h.FirstUsableLBA {
		return annotatef(ErrBadPartTable, "primary entry array [%d,+%d) overruns first usable lba %d", h.PartitionsLBA, entriesSectors, h.FirstUsableLBA)
	}
	if h.AlternateLBA <= h.LastUsableLBA {
		return annotatef(ErrBadPartTable, "primary alternate_lba %d <= last usable lba %d", h.AlternateLBA, h.LastUsableLBA)
	}
	return nil
}

// checkBackup validates the placement rules specific to the backup
// header copy: its alternate LBA points back at the primary, its entry
// array fits before its own header, and both sit past the last usable LBA.
func checkBackup(h *Header, logSectorSize uint) error {
	if h.AlternateLBA != PrimaryHeaderLBA {
		return annotatef(ErrBadPartTable, "backup alternate_lba %d != 1", h.AlternateLBA)
	}
	if h.PartitionsLBA <= h.LastUsableLBA {
		return annotatef(ErrBadPartTable, "backup partitions_lba %d <= last usable lba %d", h.PartitionsLBA, h.LastUsableLBA)
	}
	entriesBytes := uint64(h.MaxPart) * uint64(h.PartEntrySize)
	entriesSectors := sectorsForBytes(entriesBytes, logSectorSize)
	if h.PartitionsLBA+entriesSectors > h.MyLBA {
		return annotatef(ErrBadPartTable, "backup entry array [%d,+%d) overruns header lba %d", h.PartitionsLBA, entriesSectors, h.MyLBA)
	}
	if h.MyLBA <= h.LastUsableLBA {
		return annotatef(ErrBadPartTable, "backup header_lba %d <= last usable lba %d", h.MyLBA, h.LastUsableLBA)
	}
	return nil
}

// mirrorConsistent cross-checks that the primary and backup headers
// describe the same table: matching size, geometry, and disk identity,
// with their LBA fields pointing at each other.
func mirrorConsistent(p, b *Header) bool {
	return p.HeaderSize == b.HeaderSize &&
		p.MyLBA == b.AlternateLBA &&
		p.AlternateLBA == b.MyLBA &&
		p.FirstUsableLBA == b.FirstUsableLBA &&
		p.LastUsableLBA == b.LastUsableLBA &&
		p.MaxPart == b.MaxPart &&
		p.PartEntrySize == b.PartEntrySize &&
		p.PartEntryCRC32 == b.PartEntryCRC32 &&
		p.DiskGUID == b.DiskGUID
}

// checkPMBR decodes the protective MBR and validates it: signature
// present, and at least one partition record typed 0xEE.
func checkPMBR(raw []byte) (ProtectiveMBR, error) {
	if len(raw) < SizeOfPMBR {
		return ProtectiveMBR{}, annotatef(ErrBadPartTable, "pmbr read too short: %d bytes", len(raw))
	}
	var mbr ProtectiveMBR
	if err := decodeInto(raw[:SizeOfPMBR], &mbr); err != nil {
		return ProtectiveMBR{}, annotate(ErrBadPartTable, "decode pmbr: "+err.Error())
	}
	if mbr.Signature != ProtectiveMBRSignature {
		return ProtectiveMBR{}, annotatef(ErrBadPartTable, "pmbr signature %#x != %#x", mbr.Signature, ProtectiveMBRSignature)
	}
	for _, p := range mbr.Partitions {
		if p.OSType == ProtectiveMBRTypeGPT {
			return mbr, nil
		}
	}
	return ProtectiveMBR{}, annotate(ErrBadPartTable, "no protective (0xEE) partition record found")
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// mul64 multiplies a and b, reporting overflow via the inverse check
// (the allocator is not guaranteed to detect it on its own).
func mul64(a, b uint64) (product uint64, overflow bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	product = a * b
	return product, product/a != b
}
