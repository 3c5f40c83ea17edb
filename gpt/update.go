package gpt

// Update re-derives every CRC from the handle's current field values and
// re-validates, without reconstructing anything (that is Repair's job).
// It is exported so a caller that has hand-edited a Handle's headers
// (e.g. after changing a partition's bounds through some other
// mechanism) can re-arm it before Write.
func (h *Handle) Update() error {
	return h.update()
}

// update is the Updater itself; Repair calls this unexported form so the
// public surface reads as "Repair reconstructs, Update re-derives".
func (h *Handle) update() error {
	h.Status &^= StatusPrimaryHeaderValid | StatusPrimaryEntriesValid | StatusBackupHeaderValid | StatusBackupEntriesValid

	h.Primary.HeaderSize = uint32(SizeOfHeader)
	h.Backup.HeaderSize = uint32(SizeOfHeader)

	entryCRC := crcGPT(h.Entries)
	h.Primary.PartEntryCRC32 = entryCRC
	h.Backup.PartEntryCRC32 = entryCRC

	if err := recomputeHeaderCRC(&h.Primary); err != nil {
		return err
	}
	if err := recomputeHeaderCRC(&h.Backup); err != nil {
		return err
	}

	if err := checkPrimary(&h.Primary, h.logSectorSize); err != nil {
		return annotatef(ErrBug, "updater produced invalid primary header: %v", err)
	}
	if err := checkBackup(&h.Backup, h.logSectorSize); err != nil {
		return annotatef(ErrBug, "updater produced invalid backup header: %v", err)
	}
	if !mirrorConsistent(&h.Primary, &h.Backup) {
		return annotate(ErrBug, "updater produced mismatched primary/backup headers")
	}

	h.Status |= StatusPrimaryHeaderValid | StatusPrimaryEntriesValid | StatusBackupHeaderValid | StatusBackupEntriesValid
	return nil
}

// recomputeHeaderCRC zeroes h.HeaderCRC32, serializes h, and reassigns
// the freshly-computed checksum.
func recomputeHeaderCRC(h *Header) error {
	h.HeaderCRC32 = 0
	raw, err := encodeHeader(h)
	if err != nil {
		return err
	}
	h.HeaderCRC32 = crcGPT(raw)
	return nil
}
