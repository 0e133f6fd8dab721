package simcip

import (
	"encoding/binary"

	"github.com/musiguello/logixsim/internal/simerr"
	"github.com/musiguello/logixsim/internal/simsession"
	"github.com/musiguello/logixsim/internal/simtag"
	"github.com/musiguello/logixsim/pkg/cip"
)

// Read Tag service codes.
const (
	ServiceReadTag           = 0x4C
	ServiceReadTagFragmented = 0x52
)

// pathSegmentError is the CIP general status byte returned for an
// unresolved tag name (§4.5.4).
const pathSegmentError = 0x04

// fragmentedStatus is the CIP general status byte signalling a partial,
// budget-trimmed response (§4.5.4).
const fragmentedStatus = 0x06

// readReplyOverhead is the byte count deducted from MaxResponseSize before
// whole elements are fitted into the reply. The fixed reply fields that
// precede the element payload take 6 bytes (service(1) reserved(1)
// status(1) size(1) type_code(2)); the deduction is 8, so 2 bytes of the
// budget are left unused.
const readReplyOverhead = 8

// HandleReadTag services both Read Tag (0x4C) and Read Tag Fragmented
// (0x52). data is the full CIP request starting at the service code
// byte. It returns the CIP payload bytes following the service code
// (reserved, general_status, ext_status_size, type_code(2), data; or just
// the first three for an unknown tag) — the caller prefixes service|0x80.
func HandleReadTag(ctx *simsession.Context, data []byte) ([]byte, error) {
	if !ctx.AllowedFrom(simsession.StateConnected) {
		return nil, simerr.Newf(simerr.BadParam, "read tag not allowed from state %v", ctx.State)
	}
	if len(data) < 2 {
		return nil, simerr.New(simerr.TooSmall, "read tag request truncated")
	}

	fragmented := data[0] == ServiceReadTagFragmented
	i := 1
	pathSizeWords := int(data[i])
	i++
	pathBytes := pathSizeWords * 2
	if len(data) < i+pathBytes+2 {
		return nil, simerr.New(simerr.TooSmall, "read tag path/element_count truncated")
	}

	segs, err := cip.ParsePath(data[i : i+pathBytes])
	if err != nil {
		return nil, err
	}
	i += pathBytes

	elementCount := int(binary.LittleEndian.Uint16(data[i : i+2]))
	i += 2

	byteOffset := 0
	if fragmented {
		if len(data) < i+4 {
			return nil, simerr.New(simerr.TooSmall, "read tag fragmented byte_offset truncated")
		}
		byteOffset = int(binary.LittleEndian.Uint32(data[i : i+4]))
	}

	name := cip.TagName(segs)
	tag, ok := ctx.Tags.Lookup(name)
	if !ok {
		return []byte{0, pathSegmentError, 0}, nil
	}

	startIndex := 0
	subs := cip.Subscripts(segs)
	if len(subs) > 0 {
		startIndex = int(subs[0])
	}
	if fragmented {
		if tag.Type == simtag.BoolArray {
			// ReadElements takes a bit index for BoolArray.
			startIndex += (byteOffset / 8) * 64
		} else {
			startIndex += byteOffset / tag.Type.ElementSize()
		}
	}

	payload, err := tag.ReadElements(startIndex, elementCount)
	if err != nil {
		return []byte{0, pathSegmentError, 0}, nil
	}

	budget := int(ctx.MaxResponseSize) - readReplyOverhead
	status := byte(0)
	if budget < len(payload) {
		status = fragmentedStatus
		payload = trimToWholeElements(payload, budget, tag.Type.ElementSize())
	}

	out := make([]byte, 0, 3+2+len(payload))
	out = append(out, 0, status, 0) // reserved, general_status, ext_status_size
	out = appendUint16(out, tag.Type.CIPCode())
	out = append(out, payload...)
	return out, nil
}

// trimToWholeElements truncates payload to the largest multiple of
// elementSize that fits within budget bytes (never negative).
func trimToWholeElements(payload []byte, budget, elementSize int) []byte {
	if budget < 0 {
		budget = 0
	}
	whole := (budget / elementSize) * elementSize
	if whole > len(payload) {
		whole = len(payload)
	}
	return payload[:whole]
}
