package simcip

import (
	"github.com/musiguello/logixsim/internal/simerr"
	"github.com/musiguello/logixsim/internal/simsession"
	"github.com/musiguello/logixsim/pkg/eip"
)

// HandleRegisterSession validates a Register Session request against ctx's
// current state, draws a fresh session handle via gen, stores it in ctx,
// advances ctx.State to REGISTERED, and returns the 4-byte payload to echo
// back (protocol_version, option_flags unchanged).
//
// sessionHandle and senderContext are the values carried in the EIP
// header that framed this request; Register Session requires both to be
// zero regardless of ctx's state.
func HandleRegisterSession(ctx *simsession.Context, gen HandleGenerator, sessionHandle uint32, senderContext uint64, payload []byte) ([]byte, error) {
	if sessionHandle != 0 {
		return nil, simerr.New(simerr.BadParam, "register session with non-zero session handle")
	}
	if senderContext != 0 {
		return nil, simerr.New(simerr.BadParam, "register session with non-zero sender context")
	}
	if !ctx.AllowedFrom(simsession.StateUnregistered) {
		return nil, simerr.Newf(simerr.BadParam, "register session not allowed from state %v", ctx.State)
	}

	reg, err := eip.DecodeRegisterSessionData(payload)
	if err != nil {
		return nil, simerr.Wrap(simerr.BadData, err, "decoding register session payload")
	}
	if reg.ProtocolVersion != 1 || reg.OptionsFlags != 0 {
		return nil, simerr.New(simerr.BadParam, "register session with unsupported protocol version or option flags")
	}

	handle := gen.Next()
	ctx.SessionHandle = handle
	ctx.State = simsession.StateRegistered

	return reg.Encode()
}
