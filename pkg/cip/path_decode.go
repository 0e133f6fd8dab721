package cip

import (
	"encoding/binary"

	"github.com/musiguello/logixsim/internal/simerr"
)

// Segment is one decoded EPATH segment: either a symbolic tag-name segment
// or a numeric subscript segment (array element index).
type Segment struct {
	Symbolic bool
	Name     string
	Numeric  uint32
}

// ParsePath decodes an IOI path made of symbolic name segments and numeric
// subscript segments, the shape the Read Tag / Read Tag Fragmented request
// addresses a tag with:
//
//	Symbolic segment: 0x91, name_length(1), name_bytes(name_length), pad
//	Numeric segment:  0x28,val(1) | 0x29,pad,val(2) | 0x2A,pad,val(4)
//
// data must hold exactly pathSizeWords*2 bytes; a short or malformed
// segment fails with BadParam.
func ParsePath(data []byte) ([]Segment, error) {
	var segs []Segment
	i := 0
	for i < len(data) {
		switch data[i] {
		case 0x91: // ANSI Extended Symbol Segment
			if i+1 >= len(data) {
				return nil, simerr.New(simerr.BadParam, "truncated symbolic segment")
			}
			nameLen := int(data[i+1])
			start := i + 2
			end := start + nameLen
			if end > len(data) {
				return nil, simerr.New(simerr.BadParam, "symbolic segment name runs past path")
			}
			segs = append(segs, Segment{Symbolic: true, Name: string(data[start:end])})
			i = end
			if nameLen%2 != 0 {
				i++ // skip pad byte
			}

		case 0x28: // 8-bit numeric segment
			if i+1 >= len(data) {
				return nil, simerr.New(simerr.BadParam, "truncated 8-bit numeric segment")
			}
			segs = append(segs, Segment{Numeric: uint32(data[i+1])})
			i += 2

		case 0x29: // 16-bit numeric segment (1 pad byte)
			if i+3 >= len(data) {
				return nil, simerr.New(simerr.BadParam, "truncated 16-bit numeric segment")
			}
			segs = append(segs, Segment{Numeric: uint32(binary.LittleEndian.Uint16(data[i+2 : i+4]))})
			i += 4

		case 0x2A: // 32-bit numeric segment (1 pad byte)
			if i+5 >= len(data) {
				return nil, simerr.New(simerr.BadParam, "truncated 32-bit numeric segment")
			}
			segs = append(segs, Segment{Numeric: binary.LittleEndian.Uint32(data[i+2 : i+6])})
			i += 6

		default:
			return nil, simerr.Newf(simerr.Unsupported, "unsupported path segment type 0x%02X", data[i])
		}
	}
	return segs, nil
}

// TagName returns the name carried by the first symbolic segment, or ""
// if none is present.
func TagName(segs []Segment) string {
	for _, s := range segs {
		if s.Symbolic {
			return s.Name
		}
	}
	return ""
}

// Subscripts returns the numeric segments in order, the array indices
// addressed after the tag name.
func Subscripts(segs []Segment) []uint32 {
	var out []uint32
	for _, s := range segs {
		if !s.Symbolic {
			out = append(out, s.Numeric)
		}
	}
	return out
}
