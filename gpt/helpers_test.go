package gpt

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/flatcar-hub/gogpt/internal/memdevice"
)

// Fixture geometry shared by this package's tests: 128 entries of 128
// bytes each (32 sectors), first usable LBA 34, last usable LBA 2014,
// backup header at LBA 2047.
const (
	testMaxPart       = 128
	testPartEntrySize = 128
	testFirstUsable   = 34
	testLastUsable    = 2014
	testBackupLBA     = 2047
	testTotalSectors  = 2048
)

func testEntriesSectors() uint64 {
	return sectorsForBytes(uint64(testMaxPart)*uint64(testPartEntrySize), MinLogSectorSize)
}

// buildValidMedium writes a fully valid S1-shaped GPT (PMBR, primary,
// entries, backup entries, backup header) into a fresh in-memory device
// sized totalSectors, with one partition occupying the full usable range.
func buildValidMedium(totalSectors uint64) *memdevice.Device {
	dev := memdevice.New(int(totalSectors)*512, MinLogSectorSize)

	diskGUID := fixedGUID(1)
	entries := make([]byte, testMaxPart*testPartEntrySize)
	writeEntry(entries, 0, PartitionEntry{
		TypeGUID: fixedGUID(2),
		PartGUID: fixedGUID(3),
		FirstLBA: testFirstUsable,
		LastLBA:  testLastUsable,
		Name:     utf16Name("root"),
	})

	primary := Header{
		Signature:      HeaderSignature,
		Revision:       HeaderRevision,
		HeaderSize:     uint32(SizeOfHeader),
		MyLBA:          1,
		AlternateLBA:   testBackupLBA,
		FirstUsableLBA: testFirstUsable,
		LastUsableLBA:  testLastUsable,
		DiskGUID:       diskGUID,
		PartitionsLBA:  2,
		MaxPart:        testMaxPart,
		PartEntrySize:  testPartEntrySize,
	}
	backup := primary
	backup.MyLBA = testBackupLBA
	backup.AlternateLBA = 1
	backup.PartitionsLBA = testBackupLBA - testEntriesSectors()

	primary.PartEntryCRC32 = crcGPT(entries)
	backup.PartEntryCRC32 = primary.PartEntryCRC32
	mustFinalizeHeader(&primary)
	mustFinalizeHeader(&backup)

	writePMBR(dev, totalSectors)
	mustWriteHeader(dev, &primary)
	mustWrite(dev, primary.PartitionsLBA, entries)
	mustWrite(dev, backup.PartitionsLBA, entries)
	mustWriteHeader(dev, &backup)

	return dev
}

func mustFinalizeHeader(h *Header) {
	if err := recomputeHeaderCRC(h); err != nil {
		panic(err)
	}
}

func mustWriteHeader(dev *memdevice.Device, h *Header) {
	raw, err := encodeHeader(h)
	if err != nil {
		panic(err)
	}
	mustWrite(dev, h.MyLBA, raw)
}

func mustWrite(dev *memdevice.Device, sector uint64, buf []byte) {
	if err := dev.WriteAt(sector, 0, buf); err != nil {
		panic(err)
	}
}

func writePMBR(dev *memdevice.Device, totalSectors uint64) {
	size := uint32(totalSectors - 1)
	if totalSectors-1 > 0xFFFFFFFF {
		size = 0xFFFFFFFF
	}
	mbr := ProtectiveMBR{
		Signature: ProtectiveMBRSignature,
	}
	mbr.Partitions[0] = PartitionRecordMBR{
		OSType:      ProtectiveMBRTypeGPT,
		StartingLBA: 1,
		SizeInLBA:   size,
	}
	raw, err := encodeFrom(&mbr)
	if err != nil {
		panic(err)
	}
	mustWrite(dev, 0, raw)
}

func writeEntry(buf []byte, n uint32, e PartitionEntry) {
	raw, err := encodeFrom(&e)
	if err != nil {
		panic(err)
	}
	off := uint64(n) * testPartEntrySize
	copy(buf[off:off+uint64(len(raw))], raw)
}

func fixedGUID(seed byte) guid.GUID {
	var g guid.GUID
	g.Data1 = uint32(seed) * 0x01010101
	g.Data2 = uint16(seed) * 0x0101
	g.Data3 = uint16(seed) * 0x0202
	for i := range g.Data4 {
		g.Data4[i] = seed
	}
	return g
}

func utf16Name(s string) [PartitionNameUnits * 2]byte {
	var out [PartitionNameUnits * 2]byte
	for i, r := range s {
		if i >= PartitionNameUnits {
			break
		}
		out[i*2] = byte(r)
		out[i*2+1] = 0
	}
	return out
}
