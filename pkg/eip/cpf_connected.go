package eip

import (
	"github.com/musiguello/logixsim/internal/simerr"
)

// ConnectedHeaderSize mirrors UnconnectedHeaderSize for SendUnitData
// payloads.
const ConnectedHeaderSize = 6

// ConnectedEnvelope is the decoded SendUnitData payload: the Connected
// Address Item's connection id, the connection sequence (the first two
// bytes of the Connected Data Item), and the embedded CIP payload that
// follows it.
type ConnectedEnvelope struct {
	InterfaceHandle uint32
	RouterTimeout   uint16
	ConnectionID    uint32
	ConnectionSeq   uint16
	CIPPayload      []byte
}

// DecodeConnectedEnvelope parses a SendUnitData payload: interface
// handle(4)=0, router timeout(2), then a CPF with exactly two items — a
// Connected Address Item (type 0x00A1, length 4, the connection id) and a
// Connected Data Item (type 0x00B1) whose first two bytes are the
// connection sequence and whose remainder is the embedded CIP request.
func DecodeConnectedEnvelope(data []byte) (*ConnectedEnvelope, error) {
	if len(data) < ConnectedHeaderSize {
		return nil, simerr.New(simerr.TooSmall, "SendUnitData payload shorter than interface handle + timeout")
	}

	env := &ConnectedEnvelope{
		InterfaceHandle: uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24,
		RouterTimeout:   uint16(data[4]) | uint16(data[5])<<8,
	}
	if env.InterfaceHandle != 0 {
		return nil, simerr.New(simerr.BadParam, "non-zero interface handle")
	}

	cpf, err := DecodeCommonPacketFormat(data[ConnectedHeaderSize:])
	if err != nil {
		return nil, simerr.Wrap(simerr.BadData, err, "decoding connected CPF")
	}
	if cpf.ItemCount != 2 {
		return nil, simerr.Newf(simerr.BadParam, "expected 2 CPF items, got %d", cpf.ItemCount)
	}

	cai := cpf.FindItemByType(ItemIDConnectedAddress)
	if cai == nil || len(cai.Data) != 4 {
		return nil, simerr.New(simerr.BadParam, "missing or malformed Connected Address Item")
	}
	env.ConnectionID = uint32(cai.Data[0]) | uint32(cai.Data[1])<<8 | uint32(cai.Data[2])<<16 | uint32(cai.Data[3])<<24

	cdi := cpf.FindItemByType(ItemIDConnectedData)
	if cdi == nil || len(cdi.Data) < 2 {
		return nil, simerr.New(simerr.BadParam, "missing or malformed Connected Data Item")
	}
	env.ConnectionSeq = uint16(cdi.Data[0]) | uint16(cdi.Data[1])<<8
	env.CIPPayload = cdi.Data[2:]

	return env, nil
}

// EncodeConnectedEnvelope builds a SendUnitData reply payload: zeroed
// interface handle and router timeout, followed by a two-item CPF echoing
// connID and seq ahead of the CIP reply.
func EncodeConnectedEnvelope(connID uint32, seq uint16, cipReply []byte) ([]byte, error) {
	addrData := []byte{byte(connID), byte(connID >> 8), byte(connID >> 16), byte(connID >> 24)}

	dataItem := make([]byte, 2+len(cipReply))
	dataItem[0] = byte(seq)
	dataItem[1] = byte(seq >> 8)
	copy(dataItem[2:], cipReply)

	cpf := NewCommonPacketFormat(
		NewCPFItem(ItemIDConnectedAddress, addrData),
		NewCPFItem(ItemIDConnectedData, dataItem),
	)
	cpfBytes, err := cpf.Encode()
	if err != nil {
		return nil, err
	}

	out := make([]byte, ConnectedHeaderSize+len(cpfBytes))
	copy(out[ConnectedHeaderSize:], cpfBytes)
	return out, nil
}
