// Package simbuf implements a non-owning byte-buffer view with
// bounds-checked access, matching the shape of the original simulator's
// slice_s: a borrowed (pointer, length) window with little-endian get/put
// helpers. No other package in this module uses it; the frame reader and
// the EIP/CPF/CIP codecs work on plain byte slices.
//
// Unlike the C original, out-of-bounds access is reported through an error
// return rather than a sentinel negative length baked into the view
// itself.
package simbuf

import "github.com/musiguello/logixsim/internal/simerr"

// View is a borrowed window over a byte slice. It never copies its backing
// array; Truncate and Remainder both return views that alias the same
// storage.
type View struct {
	data []byte
}

// New wraps data in a View. The View aliases data; callers must not mutate
// data through another reference while the View is in use for writes.
func New(data []byte) View {
	return View{data: data}
}

// Len reports the number of bytes currently visible through the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the backing slice. Callers must not retain it past the
// view's lifetime if the scratch buffer will be reused.
func (v View) Bytes() []byte {
	return v.data
}

// At reads the byte at index. Out-of-bounds reads return 0, matching the
// origin's "reads out of bounds return 0" convention — callers on
// security-relevant paths must preflight bounds themselves.
func (v View) At(index int) byte {
	if index < 0 || index >= len(v.data) {
		return 0
	}
	return v.data[index]
}

// Put writes val at index. An out-of-bounds write is a no-op that returns
// OutOfBounds.
func (v View) Put(index int, val byte) error {
	if index < 0 || index >= len(v.data) {
		return simerr.New(simerr.OutOfBounds, "write beyond view length")
	}
	v.data[index] = val
	return nil
}

// Truncate returns a view over the first newLen bytes. It fails if newLen
// exceeds the current length.
func (v View) Truncate(newLen int) (View, error) {
	if newLen < 0 || newLen > len(v.data) {
		return View{}, simerr.New(simerr.OutOfBounds, "truncate beyond view length")
	}
	return View{data: v.data[:newLen]}, nil
}

// Remainder returns a view starting at offset, running to the end of the
// current view. It fails if offset exceeds the current length.
func (v View) Remainder(offset int) (View, error) {
	if offset < 0 || offset > len(v.data) {
		return View{}, simerr.New(simerr.OutOfBounds, "remainder offset beyond view length")
	}
	return View{data: v.data[offset:]}, nil
}

// GetUint16LE reads a little-endian uint16 at offset, returning 0 if the
// window is too small — the caller is expected to have verified size via
// the packet's declared length field before calling.
func (v View) GetUint16LE(offset int) uint16 {
	if offset < 0 || offset+2 > len(v.data) {
		return 0
	}
	return uint16(v.data[offset]) | uint16(v.data[offset+1])<<8
}

// GetUint32LE reads a little-endian uint32 at offset, returning 0 if the
// window is too small.
func (v View) GetUint32LE(offset int) uint32 {
	if offset < 0 || offset+4 > len(v.data) {
		return 0
	}
	return uint32(v.data[offset]) |
		uint32(v.data[offset+1])<<8 |
		uint32(v.data[offset+2])<<16 |
		uint32(v.data[offset+3])<<24
}

// GetUint64LE reads a little-endian uint64 at offset, returning 0 if the
// window is too small.
func (v View) GetUint64LE(offset int) uint64 {
	if offset < 0 || offset+8 > len(v.data) {
		return 0
	}
	var res uint64
	for i := 0; i < 8; i++ {
		res |= uint64(v.data[offset+i]) << (8 * i)
	}
	return res
}

// PutUint16LE writes a little-endian uint16 at offset, silently doing
// nothing if the window is too small.
func (v View) PutUint16LE(offset int, val uint16) {
	if offset < 0 || offset+2 > len(v.data) {
		return
	}
	v.data[offset] = byte(val)
	v.data[offset+1] = byte(val >> 8)
}

// PutUint32LE writes a little-endian uint32 at offset, silently doing
// nothing if the window is too small.
func (v View) PutUint32LE(offset int, val uint32) {
	if offset < 0 || offset+4 > len(v.data) {
		return
	}
	v.data[offset] = byte(val)
	v.data[offset+1] = byte(val >> 8)
	v.data[offset+2] = byte(val >> 16)
	v.data[offset+3] = byte(val >> 24)
}

// PutUint64LE writes a little-endian uint64 at offset, silently doing
// nothing if the window is too small.
func (v View) PutUint64LE(offset int, val uint64) {
	if offset < 0 || offset+8 > len(v.data) {
		return
	}
	for i := 0; i < 8; i++ {
		v.data[offset+i] = byte(val >> (8 * i))
	}
}
