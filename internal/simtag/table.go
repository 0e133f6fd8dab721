package simtag

import "github.com/musiguello/logixsim/internal/simerr"

// Table is the process-wide, read-only-after-startup tag table. It is
// populated once (CLI args layered over an optional YAML catalog) before
// the listener starts and is never mutated afterward, so no connection
// ever needs to lock it.
type Table struct {
	byName map[string]*Tag
	order  []string
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string]*Tag)}
}

// Put inserts or replaces a tag by name (CLI definitions override file
// definitions of the same name, per the layering rule).
func (tb *Table) Put(t *Tag) {
	if _, exists := tb.byName[t.Name]; !exists {
		tb.order = append(tb.order, t.Name)
	}
	tb.byName[t.Name] = t
}

// Lookup finds a tag by name.
func (tb *Table) Lookup(name string) (*Tag, bool) {
	t, ok := tb.byName[name]
	return t, ok
}

// Len returns the number of tags in the table.
func (tb *Table) Len() int { return len(tb.order) }

// Names returns the tag names in insertion order.
func (tb *Table) Names() []string {
	return append([]string(nil), tb.order...)
}

// ReadElements returns the raw little-endian bytes for count consecutive
// elements of t starting at the given element index (or, for BoolArray,
// the given *bit* index, rounded down to a whole word boundary plus the
// whole words needed to cover count bits). It returns OutOfBounds if the
// requested range runs past the tag's storage.
func (t *Tag) ReadElements(startIndex, count int) ([]byte, error) {
	if t.Type == BoolArray {
		startWord := startIndex / 64
		endBit := startIndex + count
		endWord := (endBit + 63) / 64
		lo := startWord * 8
		hi := endWord * 8
		if lo < 0 || hi > len(t.Data) {
			return nil, simerr.New(simerr.OutOfBounds, "bool array read out of bounds")
		}
		return t.Data[lo:hi], nil
	}

	size := t.Type.ElementSize()
	lo := startIndex * size
	hi := lo + count*size
	if lo < 0 || hi > len(t.Data) {
		return nil, simerr.New(simerr.OutOfBounds, "element read out of bounds")
	}
	return t.Data[lo:hi], nil
}
