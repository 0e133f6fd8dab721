package simbuf

import "testing"

func TestGetPutRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	v := New(buf)

	v.PutUint16LE(0, 0xABCD)
	if got := v.GetUint16LE(0); got != 0xABCD {
		t.Fatalf("uint16 round trip: got %04X", got)
	}

	v.PutUint32LE(2, 0x01020304)
	if got := v.GetUint32LE(2); got != 0x01020304 {
		t.Fatalf("uint32 round trip: got %08X", got)
	}

	v.PutUint64LE(6, 0x0102030405060708)
	if got := v.GetUint64LE(6); got != 0x0102030405060708 {
		t.Fatalf("uint64 round trip: got %016X", got)
	}
}

func TestOutOfBoundsReadsReturnZero(t *testing.T) {
	v := New(make([]byte, 2))
	if got := v.GetUint16LE(1); got != 0 {
		t.Fatalf("expected 0 for short window, got %d", got)
	}
	if got := v.GetUint32LE(0); got != 0 {
		t.Fatalf("expected 0 for short window, got %d", got)
	}
}

func TestPutOutOfBounds(t *testing.T) {
	v := New(make([]byte, 1))
	if err := v.Put(5, 0xFF); err == nil {
		t.Fatal("expected error for out-of-bounds put")
	}
}

func TestTruncateAndRemainder(t *testing.T) {
	v := New([]byte{1, 2, 3, 4, 5})

	head, err := v.Truncate(3)
	if err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	if head.Len() != 3 {
		t.Fatalf("expected len 3, got %d", head.Len())
	}

	if _, err := v.Truncate(10); err == nil {
		t.Fatal("expected error truncating beyond length")
	}

	tail, err := v.Remainder(2)
	if err != nil {
		t.Fatalf("Remainder: %v", err)
	}
	if tail.Len() != 3 || tail.At(0) != 3 {
		t.Fatalf("unexpected remainder: len=%d at0=%d", tail.Len(), tail.At(0))
	}

	if _, err := v.Remainder(10); err == nil {
		t.Fatal("expected error for remainder offset beyond length")
	}
}
