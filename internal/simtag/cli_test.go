package simtag

import "testing"

func TestParseCLIArgScalar(t *testing.T) {
	tag, err := ParseCLIArg("Rate:REAL")
	if err != nil {
		t.Fatalf("ParseCLIArg: %v", err)
	}
	if tag.Name != "Rate" || tag.Type != REAL || len(tag.Dims) != 0 {
		t.Fatalf("unexpected tag: %+v", tag)
	}
}

func TestParseCLIArgArrayDims(t *testing.T) {
	tag, err := ParseCLIArg("Grid:DINT[2][3]")
	if err != nil {
		t.Fatalf("ParseCLIArg: %v", err)
	}
	if len(tag.Dims) != 2 || tag.Dims[0] != 2 || tag.Dims[1] != 3 {
		t.Fatalf("Dims = %v, want [2 3]", tag.Dims)
	}
	if tag.ElementCount() != 6 {
		t.Fatalf("ElementCount = %d, want 6", tag.ElementCount())
	}
}

func TestParseCLIArgBoolArray(t *testing.T) {
	tag, err := ParseCLIArg("Flags:BOOL_ARRAY[192]")
	if err != nil {
		t.Fatalf("ParseCLIArg: %v", err)
	}
	if tag.Type != BoolArray || tag.ElementCount() != 192 {
		t.Fatalf("unexpected tag: %+v", tag)
	}
}

func TestParseCLIArgMissingColon(t *testing.T) {
	if _, err := ParseCLIArg("RateREAL"); err == nil {
		t.Fatal("expected error for missing ':'")
	}
}

func TestParseCLIArgZeroDimension(t *testing.T) {
	if _, err := ParseCLIArg("Bad:DINT[0]"); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestParseCLIArgTooManyDimensions(t *testing.T) {
	if _, err := ParseCLIArg("Bad:DINT[1][2][3][4]"); err == nil {
		t.Fatal("expected error for more than 3 dimensions")
	}
}

func TestParseCLIArgBadName(t *testing.T) {
	if _, err := ParseCLIArg(":DINT"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := ParseCLIArg("Has Space:DINT"); err == nil {
		t.Fatal("expected error for name with space")
	}
}
