package eip

import (
	"github.com/musiguello/logixsim/internal/simerr"
)

// UnconnectedHeaderSize is the size, in bytes, of the interface handle and
// router timeout fields that precede the CPF item list in a SendRRData
// request/response.
const UnconnectedHeaderSize = 6

// UnconnectedEnvelope is the decoded SendRRData payload: the interface
// handle / router timeout prefix plus the two CPF items (Null Address,
// Unconnected Data) the simulator requires.
type UnconnectedEnvelope struct {
	InterfaceHandle uint32
	RouterTimeout   uint16
	CIPPayload      []byte
}

// DecodeUnconnectedEnvelope parses a SendRRData payload: interface
// handle(4)=0, router timeout(2), then a CPF with exactly two items — a
// Null Address Item (type 0x0000, length 0) and an Unconnected Data Item
// (type 0x00B2) carrying the embedded CIP request.
func DecodeUnconnectedEnvelope(data []byte) (*UnconnectedEnvelope, error) {
	if len(data) < UnconnectedHeaderSize {
		return nil, simerr.New(simerr.TooSmall, "SendRRData payload shorter than interface handle + timeout")
	}

	env := &UnconnectedEnvelope{
		InterfaceHandle: uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24,
		RouterTimeout:   uint16(data[4]) | uint16(data[5])<<8,
	}
	if env.InterfaceHandle != 0 {
		return nil, simerr.New(simerr.BadParam, "non-zero interface handle")
	}

	cpf, err := DecodeCommonPacketFormat(data[UnconnectedHeaderSize:])
	if err != nil {
		return nil, simerr.Wrap(simerr.BadData, err, "decoding unconnected CPF")
	}
	if cpf.ItemCount != 2 {
		return nil, simerr.Newf(simerr.BadParam, "expected 2 CPF items, got %d", cpf.ItemCount)
	}

	nai := cpf.FindItemByType(ItemIDNullAddress)
	if nai == nil || nai.Length != 0 {
		return nil, simerr.New(simerr.BadParam, "missing or non-empty Null Address Item")
	}

	udi := cpf.FindItemByType(ItemIDUnconnectedMessage)
	if udi == nil {
		return nil, simerr.New(simerr.BadParam, "missing Unconnected Data Item")
	}

	env.CIPPayload = udi.Data
	return env, nil
}

// EncodeUnconnectedEnvelope builds a SendRRData reply payload: zeroed
// interface handle and router timeout, followed by a two-item CPF (Null
// Address Item, Unconnected Data Item wrapping cipReply).
func EncodeUnconnectedEnvelope(cipReply []byte) ([]byte, error) {
	cpf := NewCommonPacketFormat(
		NewCPFItem(ItemIDNullAddress, nil),
		NewCPFItem(ItemIDUnconnectedMessage, cipReply),
	)
	cpfBytes, err := cpf.Encode()
	if err != nil {
		return nil, err
	}

	out := make([]byte, UnconnectedHeaderSize+len(cpfBytes))
	copy(out[UnconnectedHeaderSize:], cpfBytes)
	return out, nil
}
