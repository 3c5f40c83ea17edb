package gpt

// Repair is a no-op if both copies already validate, fails
// ErrNotImplemented if dev's sector size no longer matches the one
// captured at Read time, and otherwise reconstructs the missing copy
// from whichever copy is authoritative before invoking Update to
// re-derive every CRC and re-validate.
func (h *Handle) Repair(dev Device) error {
	if h.Status.FullyValid() {
		return nil
	}
	if dev.LogSectorSize() != h.logSectorSize {
		return annotatef(ErrNotImplemented, "sector size changed from %d to %d since read", h.logSectorSize, dev.LogSectorSize())
	}

	switch {
	case h.Status.PrimaryValid():
		h.log.WithField("from", "primary").Warn("repairing backup GPT from primary")
		if err := h.repairBackupFromPrimary(dev); err != nil {
			return err
		}
	case h.Status.BackupValid():
		h.log.WithField("from", "backup").Warn("repairing primary GPT from backup")
		h.repairPrimaryFromBackup()
	default:
		return annotate(ErrBadPartTable, "cannot repair: neither copy is valid")
	}

	if err := h.update(); err != nil {
		return annotatef(ErrBug, "updater rejected repaired table: %v", err)
	}
	return nil
}

// repairBackupFromPrimary is the "primary is authoritative" branch.
func (h *Handle) repairBackupFromPrimary(dev Device) error {
	size, err := entriesSize(h.Primary.MaxPart, h.Primary.PartEntrySize)
	if err != nil {
		return err
	}
	entriesSectors := sectorsForBytes(size, h.logSectorSize)

	backupHeaderLBA := h.Primary.AlternateLBA
	if total, known := dev.TotalSectors(); known && total-1 > backupHeaderLBA {
		backupHeaderLBA = total - 1
		h.Primary.AlternateLBA = backupHeaderLBA
	}

	h.Backup = h.Primary
	h.Backup.MyLBA = backupHeaderLBA
	h.Backup.AlternateLBA = h.Primary.MyLBA
	h.Backup.PartitionsLBA = backupHeaderLBA - entriesSectors
	return nil
}

// repairPrimaryFromBackup is the "backup is authoritative" branch.
func (h *Handle) repairPrimaryFromBackup() {
	h.Primary = h.Backup
	h.Primary.MyLBA = h.Backup.AlternateLBA
	h.Primary.AlternateLBA = h.Backup.MyLBA
	h.Primary.PartitionsLBA = PrimaryHeaderLBA + 1
}
