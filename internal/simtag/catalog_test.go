package simtag

import "testing"

const sampleCatalog = `
tags:
  - name: TestDINTArray
    type: DINT
    dims: [3]
    initial: [1, 2, 3]
  - name: Rate
    type: REAL
  - name: Flags
    type: BOOL_ARRAY
    dims: [192]
`

func TestLoadCatalogBytes(t *testing.T) {
	tb, err := LoadCatalogBytes([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("LoadCatalogBytes: %v", err)
	}
	if tb.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tb.Len())
	}

	dintArray, ok := tb.Lookup("TestDINTArray")
	if !ok {
		t.Fatal("TestDINTArray not found")
	}
	got, err := dintArray.ReadElements(0, 3)
	if err != nil {
		t.Fatalf("ReadElements: %v", err)
	}
	want := []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeOverridesByName(t *testing.T) {
	file, _ := LoadCatalogBytes([]byte(sampleCatalog))
	cli := NewTable()
	overridden, _ := ParseCLIArg("Rate:DINT")
	cli.Put(overridden)

	merged := Merge(file, cli)
	if merged.Len() != 3 {
		t.Fatalf("Len = %d, want 3", merged.Len())
	}
	rate, _ := merged.Lookup("Rate")
	if rate.Type != DINT {
		t.Fatalf("Rate.Type = %v, want DINT (CLI override)", rate.Type)
	}
}

func TestLoadCatalogBytesUnknownType(t *testing.T) {
	_, err := LoadCatalogBytes([]byte("tags:\n  - name: Bad\n    type: WORD\n"))
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
}
