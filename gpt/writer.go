package gpt

// Write writes the backup copy first, then the primary, so that a crash
// between the two writes leaves the pre-existing primary untouched and
// the medium still bootable from it.
func (h *Handle) Write(dev Device) error {
	if !h.Status.FullyValid() {
		return annotate(ErrBadPartTable, "write requires all four status bits set")
	}
	if h.Primary.HeaderSize != uint32(SizeOfHeader) || h.Backup.HeaderSize != uint32(SizeOfHeader) {
		return annotate(ErrNotImplemented, "writing a non-native header size is not supported")
	}

	if total, known := dev.TotalSectors(); known && h.Backup.MyLBA >= total {
		h.log.WithField("backup_lba", h.Backup.MyLBA).Warn("skipping backup write: beyond medium size")
	} else {
		if h.Backup.MyLBA == 0 {
			return annotate(ErrBug, "backup header_lba is 0")
		}
		if err := h.writeHeader(dev, &h.Backup); err != nil {
			return err
		}
		if h.Backup.PartitionsLBA < 2 {
			return annotate(ErrBug, "backup partitions_lba < 2")
		}
		if err := h.writeEntries(dev, h.Backup.PartitionsLBA); err != nil {
			return err
		}
	}

	if h.Primary.MyLBA == 0 {
		return annotate(ErrBug, "primary header_lba is 0")
	}
	if err := h.writeHeader(dev, &h.Primary); err != nil {
		return err
	}
	if h.Primary.PartitionsLBA < 2 {
		return annotate(ErrBug, "primary partitions_lba < 2")
	}
	if err := h.writeEntries(dev, h.Primary.PartitionsLBA); err != nil {
		return err
	}

	return nil
}

// writeHeader zero-pads the encoded header out to a full sector before
// writing it, so a relocated header sector never keeps stale bytes past
// the header's own native encoding.
func (h *Handle) writeHeader(dev Device, hdr *Header) error {
	raw, err := encodeHeader(hdr)
	if err != nil {
		return err
	}
	padded := make([]byte, uint64(1)<<h.logSectorSize)
	copy(padded, raw)
	if err := dev.WriteAt(hdr.MyLBA, 0, padded); err != nil {
		return wrapIO(err, "write header")
	}
	return nil
}

func (h *Handle) writeEntries(dev Device, partitionsLBA uint64) error {
	if err := dev.WriteAt(partitionsLBA, 0, h.Entries); err != nil {
		return wrapIO(err, "write entry array")
	}
	return nil
}
