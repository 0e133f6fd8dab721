package simcip

import (
	"testing"

	"github.com/musiguello/logixsim/internal/simsession"
	"github.com/musiguello/logixsim/internal/simtag"
	"github.com/musiguello/logixsim/pkg/eip"
)

func registerPayload(t *testing.T) []byte {
	t.Helper()
	data, err := eip.NewRegisterSessionData().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestHandleRegisterSessionSuccess(t *testing.T) {
	ctx := simsession.New(simtag.NewTable(), 0)
	gen := NewCounterHandleGenerator(42)

	reply, err := HandleRegisterSession(ctx, gen, 0, 0, registerPayload(t))
	if err != nil {
		t.Fatalf("HandleRegisterSession: %v", err)
	}
	if len(reply) != 4 {
		t.Fatalf("reply len = %d, want 4", len(reply))
	}
	if ctx.SessionHandle != 42 {
		t.Fatalf("SessionHandle = %d, want 42", ctx.SessionHandle)
	}
	if ctx.State != simsession.StateRegistered {
		t.Fatalf("State = %v, want REGISTERED", ctx.State)
	}
}

func TestHandleRegisterSessionRejectsNonZeroHandle(t *testing.T) {
	ctx := simsession.New(simtag.NewTable(), 0)
	gen := NewCounterHandleGenerator(1)
	if _, err := HandleRegisterSession(ctx, gen, 7, 0, registerPayload(t)); err == nil {
		t.Fatal("expected error for non-zero session handle")
	}
}

func TestHandleRegisterSessionRejectsNonZeroContext(t *testing.T) {
	ctx := simsession.New(simtag.NewTable(), 0)
	gen := NewCounterHandleGenerator(1)
	if _, err := HandleRegisterSession(ctx, gen, 0, 99, registerPayload(t)); err == nil {
		t.Fatal("expected error for non-zero sender context")
	}
}

func TestHandleRegisterSessionRejectsWrongState(t *testing.T) {
	ctx := simsession.New(simtag.NewTable(), 0)
	ctx.State = simsession.StateConnected
	gen := NewCounterHandleGenerator(1)
	if _, err := HandleRegisterSession(ctx, gen, 0, 0, registerPayload(t)); err == nil {
		t.Fatal("expected error for register session while already connected")
	}
}
