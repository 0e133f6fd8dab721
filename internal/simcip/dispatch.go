package simcip

import "github.com/musiguello/logixsim/internal/simerr"

// Reply wraps a handler's CIP response: the service code to echo back
// with the reply bit set, and the payload bytes following it.
type Reply struct {
	Service byte
	Payload []byte
}

// replyBit is OR'd into the request service code to mark a CIP response.
const replyBit = 0x80

// DispatchUnconnected routes a CIP service received over the unconnected
// CPF envelope (§4.4a): Forward Open and Forward Open Extended only.
func DispatchUnconnected(ctx *Context, data []byte) (Reply, error) {
	if len(data) < 1 {
		return Reply{}, simerr.New(simerr.TooSmall, "empty unconnected CIP request")
	}
	switch data[0] {
	case ServiceForwardOpen, ServiceForwardOpenExtended:
		payload, err := HandleForwardOpen(ctx.Session, ctx.HandleGen, data)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Service: data[0] | replyBit, Payload: payload}, nil
	default:
		return Reply{}, simerr.Newf(simerr.Unsupported, "unsupported unconnected service 0x%02X", data[0])
	}
}

// DispatchConnected routes a CIP service received over the connected CPF
// envelope (§4.4b): Read Tag, Read Tag Fragmented, Forward Close.
func DispatchConnected(ctx *Context, data []byte) (Reply, error) {
	if len(data) < 1 {
		return Reply{}, simerr.New(simerr.TooSmall, "empty connected CIP request")
	}
	switch data[0] {
	case ServiceReadTag, ServiceReadTagFragmented:
		payload, err := HandleReadTag(ctx.Session, data)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Service: data[0] | replyBit, Payload: payload}, nil
	case ServiceForwardClose:
		payload, err := HandleForwardClose(ctx.Session)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Service: data[0] | replyBit, Payload: payload}, nil
	default:
		return Reply{}, simerr.Newf(simerr.Unsupported, "unsupported connected service 0x%02X", data[0])
	}
}
