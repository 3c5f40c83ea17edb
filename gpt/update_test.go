package gpt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUpdate_Idempotent(t *testing.T) {
	dev := buildValidMedium(testTotalSectors)
	h, err := Read(dev)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	primaryBefore := h.Primary
	backupBefore := h.Backup
	statusBefore := h.Status

	if err := h.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if diff := cmp.Diff(primaryBefore, h.Primary); diff != "" {
		t.Fatalf("Update on an already-consistent handle changed the primary header (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(backupBefore, h.Backup); diff != "" {
		t.Fatalf("Update on an already-consistent handle changed the backup header (-before +after):\n%s", diff)
	}
	if h.Status != statusBefore {
		t.Fatalf("Update on an already-consistent handle changed status from %v to %v", statusBefore, h.Status)
	}
}

func TestUpdate_RederivesEntryCRCAfterEdit(t *testing.T) {
	dev := buildValidMedium(testTotalSectors)
	h, err := Read(dev)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	// Simulate a caller editing a partition entry in place.
	e, err := h.PartitionEntry(1)
	if err != nil {
		t.Fatalf("PartitionEntry: %v", err)
	}
	e.TypeGUID = fixedGUID(9)
	raw, err := encodeFrom(e)
	if err != nil {
		t.Fatal(err)
	}
	copy(entryAt(h.Entries, 1, h.Primary.PartEntrySize), raw)

	staleCRC := h.Primary.PartEntryCRC32

	if err := h.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	wantCRC := crcGPT(h.Entries)
	if h.Primary.PartEntryCRC32 != wantCRC {
		t.Fatalf("Update did not rederive the entry array CRC: primary has %#x, want %#x", h.Primary.PartEntryCRC32, wantCRC)
	}
	if h.Backup.PartEntryCRC32 != wantCRC {
		t.Fatalf("Update did not rederive the backup entry array CRC")
	}
	if wantCRC == staleCRC {
		t.Fatalf("test setup: edit did not actually change the entry array CRC")
	}
	if !h.Status.FullyValid() {
		t.Fatalf("expected all four _VALID bits after Update, got %v", h.Status)
	}
}

func TestUpdate_HeaderCRCZeroedDuringComputation(t *testing.T) {
	h := &Header{
		Signature:      HeaderSignature,
		Revision:       HeaderRevision,
		HeaderSize:     uint32(SizeOfHeader),
		HeaderCRC32:    0xdeadbeef,
		MyLBA:          1,
		FirstUsableLBA: 34,
		LastUsableLBA:  2014,
		PartitionsLBA:  2,
		MaxPart:        128,
		PartEntrySize:  128,
	}
	if err := recomputeHeaderCRC(h); err != nil {
		t.Fatalf("recomputeHeaderCRC: %v", err)
	}

	raw, err := encodeHeader(h)
	if err != nil {
		t.Fatal(err)
	}
	if got := headerChecksum(raw, h.HeaderSize); got != h.HeaderCRC32 {
		t.Fatalf("recomputed crc %#x does not verify against headerChecksum %#x", h.HeaderCRC32, got)
	}
}
