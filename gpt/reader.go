package gpt

import "bytes"

// Read reads the protective MBR, the primary copy, and the backup copy,
// cross-checks them, and returns a Handle describing whatever validates.
// Read fails when neither copy is usable, in which case it reports the
// primary's diagnostic, not the backup's. It also fails when the backup's
// location is unknown or beyond the medium, and when both copies validate
// on their own but disagree with each other ("backup GPT out of sync").
func Read(dev Device, opts ...ReadOption) (*Handle, error) {
	cfg := newReadConfig(opts)

	h := &Handle{logSectorSize: dev.LogSectorSize(), log: cfg.log}
	logSectorSize := h.logSectorSize
	secSize := uint64(1) << logSectorSize

	// The protective MBR is optional; any failure here is swallowed and
	// only reflected by the absence of StatusProtectiveMBR.
	if raw, err := readFull(dev, 0, 0, SizeOfPMBR); err == nil {
		if mbr, err := checkPMBR(raw); err == nil {
			h.PMBR = mbr
			h.Status |= StatusProtectiveMBR
		}
	}

	// Candidate primary header + entries.
	var primaryErr error
	primaryRaw, err := readFull(dev, PrimaryHeaderLBA, 0, int(secSize))
	if err != nil {
		primaryErr = err
	} else {
		primary, derr := decodeHeader(primaryRaw)
		if derr != nil {
			primaryErr = derr
		} else if err := headerCheck(&primary, primaryRaw, logSectorSize); err != nil {
			primaryErr = err
		} else if err := checkPrimary(&primary, logSectorSize); err != nil {
			primaryErr = err
		} else {
			h.Primary = primary
			h.Status |= StatusPrimaryHeaderValid
			if entries, eerr := readEntries(dev, &primary); eerr != nil {
				primaryErr = eerr
				cfg.log.WithField("error", eerr).Warn("primary entry array invalid")
			} else {
				h.Entries = entries
				h.Status |= StatusPrimaryEntriesValid
			}
		}
	}

	// Locate the backup.
	var backupLBA uint64
	if h.Status.Has(StatusPrimaryHeaderValid) {
		backupLBA = h.Primary.AlternateLBA
		if total, known := dev.TotalSectors(); known && backupLBA >= total {
			return nil, annotatef(ErrOutOfRange, "primary alternate_lba %d exceeds medium size %d", backupLBA, total)
		}
	} else {
		total, known := dev.TotalSectors()
		if !known {
			return nil, annotate(ErrOutOfRange, "size unknown, cannot locate backup")
		}
		backupLBA = total - 1
	}

	// Read and check the backup.
	backupRaw, err := readFull(dev, backupLBA, 0, int(secSize))
	if err == nil {
		backup, derr := decodeHeader(backupRaw)
		if derr == nil {
			if cerr := headerCheck(&backup, backupRaw, logSectorSize); cerr == nil {
				if cerr := checkBackup(&backup, logSectorSize); cerr == nil {
					if backup.MyLBA == backupLBA {
						h.Backup = backup
						h.Status |= StatusBackupHeaderValid
					}
				}
			}
		}
	}

	if h.Status.Has(StatusPrimaryHeaderValid) && h.Status.Has(StatusBackupHeaderValid) {
		if !mirrorConsistent(&h.Primary, &h.Backup) {
			return nil, annotate(ErrBadPartTable, "backup GPT out of sync")
		}
	}

	// Reconcile entry arrays.
	if h.Status.Has(StatusBackupHeaderValid) {
		if backupEntries, eerr := readEntries(dev, &h.Backup); eerr == nil {
			if h.Status.Has(StatusPrimaryEntriesValid) {
				if !bytes.Equal(h.Entries, backupEntries) {
					return nil, annotate(ErrBadPartTable, "backup GPT out of sync")
				}
				h.Status |= StatusBackupEntriesValid
			} else {
				h.Entries = backupEntries
				h.Status |= StatusBackupEntriesValid
			}
		}
	}

	// Final disposition.
	if h.Status.PrimaryValid() || h.Status.BackupValid() {
		return h, nil
	}
	if primaryErr != nil {
		return nil, primaryErr
	}
	return nil, annotate(ErrBadPartTable, "neither copy of the partition table is valid")
}
