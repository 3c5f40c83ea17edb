package gpt

import "testing"

func TestPartitionQueries(t *testing.T) {
	dev := buildValidMedium(testTotalSectors)
	h, err := Read(dev)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	label, err := h.PartitionLabel(0)
	if err != nil {
		t.Fatalf("PartitionLabel: %v", err)
	}
	if label != "root" {
		t.Fatalf("PartitionLabel(0) = %q, want %q", label, "root")
	}

	uuid, err := h.PartitionUUID(0)
	if err != nil {
		t.Fatalf("PartitionUUID: %v", err)
	}
	if want := fixedGUID(3).String(); uuid != want {
		t.Fatalf("PartitionUUID(0) = %q, want %q", uuid, want)
	}

	typeUUID, err := h.PartitionTypeUUID(0)
	if err != nil {
		t.Fatalf("PartitionTypeUUID: %v", err)
	}
	if want := fixedGUID(2).String(); typeUUID != want {
		t.Fatalf("PartitionTypeUUID(0) = %q, want %q", typeUUID, want)
	}

	e, err := h.PartitionEntry(1)
	if err != nil {
		t.Fatalf("PartitionEntry(1): %v", err)
	}
	if !e.IsUnused() {
		t.Fatalf("expected entry 1 to be unused")
	}

	if _, err := h.PartitionEntry(h.Primary.MaxPart); !IsBadArgument(err) {
		t.Fatalf("PartitionEntry(maxpart) = %v, want ErrBadArgument", err)
	}
}

func TestParseGUIDRoundTrip(t *testing.T) {
	g := fixedGUID(7)
	s := g.String()

	parsed, err := ParseGUID(s)
	if err != nil {
		t.Fatalf("ParseGUID: %v", err)
	}
	if parsed != g {
		t.Fatalf("ParseGUID(%q) = %+v, want %+v", s, parsed, g)
	}
}

func TestParseGUID_Invalid(t *testing.T) {
	if _, err := ParseGUID("not-a-guid"); !IsBadArgument(err) {
		t.Fatalf("ParseGUID(invalid) = %v, want ErrBadArgument", err)
	}
}
