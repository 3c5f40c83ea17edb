package gpt

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// PartitionEntry selects the currently-authoritative header and returns
// the decoded entry at index n, or ErrBadArgument if n is out of range.
func (h *Handle) PartitionEntry(n uint32) (*PartitionEntry, error) {
	hdr, err := h.authoritative()
	if err != nil {
		return nil, err
	}
	if n >= hdr.MaxPart {
		return nil, annotatef(ErrBadArgument, "partition index %d >= maxpart %d", n, hdr.MaxPart)
	}
	raw := entryAt(h.Entries, n, hdr.PartEntrySize)
	e, err := decodeEntry(raw)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

var utf16leDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// PartitionLabel returns the entry's name field, decoded from UTF-16LE
// to UTF-8 and trimmed at the first NUL.
func (h *Handle) PartitionLabel(n uint32) (string, error) {
	e, err := h.PartitionEntry(n)
	if err != nil {
		return "", err
	}
	out, err := utf16leDecoder.Bytes(e.Name[:])
	if err != nil {
		return "", annotatef(ErrBadPartTable, "decode partition name: %v", err)
	}
	if i := strings.IndexByte(string(out), 0); i >= 0 {
		out = out[:i]
	}
	return string(out), nil
}

// PartitionUUID returns the entry's unique partition GUID in canonical
// string form.
func (h *Handle) PartitionUUID(n uint32) (string, error) {
	e, err := h.PartitionEntry(n)
	if err != nil {
		return "", err
	}
	return e.PartGUID.String(), nil
}

// PartitionTypeUUID returns the entry's partition type GUID in canonical
// string form, the way a caller matching partitions by role (ESP, root,
// swap) needs.
func (h *Handle) PartitionTypeUUID(n uint32) (string, error) {
	e, err := h.PartitionEntry(n)
	if err != nil {
		return "", err
	}
	return e.TypeGUID.String(), nil
}
