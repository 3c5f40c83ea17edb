package gpt

import "github.com/Microsoft/go-winio/pkg/guid"

// Handle is the stateful aggregate describing a disk's GUID Partition
// Table: the protective MBR, both header copies, the (possibly shared)
// entry buffer, the sector size captured at read time, and the status
// bitmask. A Handle is created only by Read, mutated only by Repair and
// Update, and consumed by Write and the partition queries. It is not
// safe for concurrent use.
type Handle struct {
	PMBR    ProtectiveMBR
	Primary Header
	Backup  Header
	// Entries is the owned entry-array buffer described by whichever
	// header(s) validate; its length is always MaxPart*PartEntrySize for
	// the authoritative header.
	Entries []byte

	logSectorSize uint
	Status        Status

	log fieldLogger
}

// LogSectorSize returns the sector size captured when the handle was read,
// as a base-2 log. Repair refuses to proceed if the device it is given
// now reports a different value.
func (h *Handle) LogSectorSize() uint { return h.logSectorSize }

// Close releases the handle's owned entry buffer. Callers must not use a
// Handle after calling Close.
func (h *Handle) Close() {
	h.Entries = nil
}

// authoritative returns whichever header is currently valid, preferring
// the primary, for the partition queries to read from.
func (h *Handle) authoritative() (*Header, error) {
	switch {
	case h.Status.PrimaryValid():
		return &h.Primary, nil
	case h.Status.BackupValid():
		return &h.Backup, nil
	default:
		return nil, annotate(ErrBadPartTable, "no valid copy of the partition table")
	}
}

// DiskGUID returns the disk GUID from the currently-authoritative header.
func (h *Handle) DiskGUID() (guid.GUID, error) {
	hdr, err := h.authoritative()
	if err != nil {
		return guid.GUID{}, err
	}
	return hdr.DiskGUID, nil
}

// DiskUUID renders DiskGUID in canonical string form.
func (h *Handle) DiskUUID() (string, error) {
	g, err := h.DiskGUID()
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
