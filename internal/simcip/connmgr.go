// Package simcip implements the CIP-layer handlers: Register Session,
// Forward Open/Forward Open Extended, Forward Close, and Read Tag/Read
// Tag Fragmented, plus the dispatch tables that route a decoded CIP
// service code to its handler.
package simcip

import (
	"encoding/binary"

	"github.com/musiguello/logixsim/internal/simerr"
	"github.com/musiguello/logixsim/internal/simsession"
)

// Forward Open service codes.
const (
	ServiceForwardOpen         = 0x54
	ServiceForwardOpenExtended = 0x5B
	ServiceForwardClose        = 0x4E
)

// Magic constants this simulator validates strictly (§4.5.2).
const (
	fwOpenSecsPerTick           = 0x0A
	fwOpenTimeoutTicks          = 0x05
	fwOpenConnSerialNumber      = 0x3420
	fwOpenVendorID              = 0xF33D
	fwOpenOriginatorSerial      = 0x21504345
	fwOpenConnTimeoutMultiplier = 1
	fwOpenRPI                   = 0x000F4240
	fwOpenConnParamsClassic     = 0x43F8
	fwOpenConnParamsExtended    = 0x42000FA2
	fwOpenTransportClass        = 0xA3
	cmPathSizeWords             = 2
)

var cmPath = [4]byte{0x20, 0x06, 0x24, 0x01}
var routerPath = [6]byte{0x01, 0x06, 0x20, 0x02, 0x24, 0x01}

// HandleForwardOpen validates a Forward Open (classic, 0x54) or Forward
// Open Extended (0x5B) request against the fixed magic constants this
// simulator expects, allocates a server connection id via gen, and
// returns the 29 bytes of the 30-byte success reply that follow the
// service byte (service|0x80 is left to the caller, which owns CIP
// framing).
func HandleForwardOpen(ctx *simsession.Context, gen HandleGenerator, data []byte) ([]byte, error) {
	if !ctx.AllowedFrom(simsession.StateRegistered) {
		return nil, simerr.Newf(simerr.BadParam, "forward open not allowed from state %v", ctx.State)
	}
	if len(data) < 1 {
		return nil, simerr.New(simerr.TooSmall, "forward open request empty")
	}

	service := data[0]
	extended := service == ServiceForwardOpenExtended
	if !extended && service != ServiceForwardOpen {
		return nil, simerr.Newf(simerr.Unsupported, "unexpected forward open service 0x%02X", service)
	}

	connParamWidth := 2
	if extended {
		connParamWidth = 4
	}

	// Fixed body up to and including transport_class/path_size, sized for
	// the conditional connection-params width.
	fixedSize := 1 + 1 + 4 + 1 + 1 + 4 + 4 + 2 + 2 + 4 + 1 + 3 + 4 + connParamWidth + 4 + connParamWidth + 1 + 1
	if len(data) < fixedSize {
		return nil, simerr.New(simerr.TooSmall, "forward open request truncated")
	}

	i := 1
	if data[i] != cmPathSizeWords {
		return nil, simerr.New(simerr.BadParam, "forward open cm_path_size mismatch")
	}
	i++
	if !bytesEqual(data[i:i+4], cmPath[:]) {
		return nil, simerr.New(simerr.BadParam, "forward open cm_path mismatch")
	}
	i += 4

	if data[i] != fwOpenSecsPerTick {
		return nil, simerr.New(simerr.BadParam, "forward open secs_per_tick mismatch")
	}
	i++
	if data[i] != fwOpenTimeoutTicks {
		return nil, simerr.New(simerr.BadParam, "forward open timeout_ticks mismatch")
	}
	i++

	otConnID := binary.LittleEndian.Uint32(data[i : i+4])
	i += 4
	if otConnID != 0 {
		return nil, simerr.New(simerr.BadParam, "forward open orig_to_targ_conn_id must be 0")
	}

	toConnID := binary.LittleEndian.Uint32(data[i : i+4])
	i += 4
	if toConnID == 0 {
		return nil, simerr.New(simerr.BadParam, "forward open targ_to_orig_conn_id must be non-zero")
	}

	connSerial := binary.LittleEndian.Uint16(data[i : i+2])
	i += 2
	if connSerial != fwOpenConnSerialNumber {
		return nil, simerr.New(simerr.BadParam, "forward open conn_serial_number mismatch")
	}

	vendorID := binary.LittleEndian.Uint16(data[i : i+2])
	i += 2
	if vendorID != fwOpenVendorID {
		return nil, simerr.New(simerr.BadParam, "forward open orig_vendor_id mismatch")
	}

	origSerial := binary.LittleEndian.Uint32(data[i : i+4])
	i += 4
	if origSerial != fwOpenOriginatorSerial {
		return nil, simerr.New(simerr.BadParam, "forward open orig_serial_number mismatch")
	}

	if data[i] != fwOpenConnTimeoutMultiplier {
		return nil, simerr.New(simerr.BadParam, "forward open conn_timeout_multiplier mismatch")
	}
	i++
	i += 3 // reserved

	otRPI := binary.LittleEndian.Uint32(data[i : i+4])
	i += 4
	if otRPI != fwOpenRPI {
		return nil, simerr.New(simerr.BadParam, "forward open orig_to_targ_rpi mismatch")
	}

	if err := checkConnParams(data[i:i+connParamWidth], extended); err != nil {
		return nil, err
	}
	i += connParamWidth

	toRPI := binary.LittleEndian.Uint32(data[i : i+4])
	i += 4
	if toRPI != fwOpenRPI {
		return nil, simerr.New(simerr.BadParam, "forward open targ_to_orig_rpi mismatch")
	}

	if err := checkConnParams(data[i:i+connParamWidth], extended); err != nil {
		return nil, err
	}
	i += connParamWidth

	if data[i] != fwOpenTransportClass {
		return nil, simerr.New(simerr.BadParam, "forward open transport_class mismatch")
	}
	i++

	pathSizeWords := int(data[i])
	i++
	pathBytes := pathSizeWords * 2
	if len(data) < i+pathBytes {
		return nil, simerr.New(simerr.TooSmall, "forward open router path truncated")
	}
	if pathBytes != len(routerPath) || !bytesEqual(data[i:i+pathBytes], routerPath[:]) {
		return nil, simerr.New(simerr.BadParam, "forward open router path mismatch")
	}

	ctx.ClientConnectionID = toConnID
	ctx.ServerConnectionID = gen.Next()
	ctx.State = simsession.StateConnected

	reply := make([]byte, 0, 29)
	reply = append(reply, 0, 0, 0) // reserved, general_status, ext_status_size
	reply = appendUint32(reply, ctx.ClientConnectionID)
	reply = appendUint32(reply, ctx.ServerConnectionID)
	reply = appendUint16(reply, fwOpenConnSerialNumber)
	reply = appendUint16(reply, fwOpenVendorID)
	reply = appendUint32(reply, fwOpenOriginatorSerial)
	reply = appendUint32(reply, fwOpenRPI) // orig_to_targ_api
	reply = appendUint32(reply, fwOpenRPI) // targ_to_orig_api
	reply = append(reply, 0)               // application_reply_size
	reply = append(reply, 0)               // reserved
	return reply, nil
}

func checkConnParams(b []byte, extended bool) error {
	if extended {
		if binary.LittleEndian.Uint32(b) != fwOpenConnParamsExtended {
			return simerr.New(simerr.BadParam, "forward open extended connection params mismatch")
		}
		return nil
	}
	if binary.LittleEndian.Uint16(b) != fwOpenConnParamsClassic {
		return simerr.New(simerr.BadParam, "forward open classic connection params mismatch")
	}
	return nil
}

// HandleForwardClose marks the session done and returns a success reply
// body: reserved(1)=0, general_status(1)=0, ext_status_size(1)=0.
func HandleForwardClose(ctx *simsession.Context) ([]byte, error) {
	if !ctx.AllowedFrom(simsession.StateConnected) {
		return nil, simerr.Newf(simerr.BadParam, "forward close not allowed from state %v", ctx.State)
	}
	ctx.State = simsession.StateClosed
	ctx.Done = true
	return []byte{0, 0, 0}, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v), byte(v>>8))
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
