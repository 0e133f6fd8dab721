package simcip

import (
	"testing"

	"github.com/musiguello/logixsim/internal/simsession"
)

func TestDispatchUnconnectedForwardOpen(t *testing.T) {
	ctx := &Context{Session: registeredSession(), HandleGen: NewCounterHandleGenerator(5)}

	reply, err := DispatchUnconnected(ctx, classicForwardOpenRequest(1))
	if err != nil {
		t.Fatalf("DispatchUnconnected: %v", err)
	}
	if reply.Service != ServiceForwardOpen|replyBit {
		t.Fatalf("Service = 0x%02X, want 0x%02X", reply.Service, ServiceForwardOpen|replyBit)
	}
}

func TestDispatchUnconnectedRejectsUnsupportedService(t *testing.T) {
	ctx := &Context{Session: registeredSession(), HandleGen: NewCounterHandleGenerator(1)}
	if _, err := DispatchUnconnected(ctx, []byte{0x01}); err == nil {
		t.Fatal("expected error for unsupported unconnected service")
	}
}

func TestDispatchConnectedForwardClose(t *testing.T) {
	session := registeredSession()
	session.State = simsession.StateConnected
	ctx := &Context{Session: session}

	reply, err := DispatchConnected(ctx, []byte{ServiceForwardClose})
	if err != nil {
		t.Fatalf("DispatchConnected: %v", err)
	}
	if reply.Service != ServiceForwardClose|replyBit {
		t.Fatalf("Service = 0x%02X, want 0x%02X", reply.Service, ServiceForwardClose|replyBit)
	}
}

func TestDispatchConnectedRejectsUnsupportedService(t *testing.T) {
	session := registeredSession()
	session.State = simsession.StateConnected
	ctx := &Context{Session: session}
	if _, err := DispatchConnected(ctx, []byte{0x01}); err == nil {
		t.Fatal("expected error for unsupported connected service")
	}
}
