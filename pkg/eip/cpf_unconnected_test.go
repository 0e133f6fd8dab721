package eip

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeUnconnectedEnvelope_RoundTrip(t *testing.T) {
	cipReply := []byte{0xD4, 0x00, 0x00, 0x00}

	encoded, err := EncodeUnconnectedEnvelope(cipReply)
	if err != nil {
		t.Fatalf("EncodeUnconnectedEnvelope: %v", err)
	}

	env, err := DecodeUnconnectedEnvelope(encoded)
	if err != nil {
		t.Fatalf("DecodeUnconnectedEnvelope: %v", err)
	}
	if env.InterfaceHandle != 0 {
		t.Errorf("InterfaceHandle = %d, want 0", env.InterfaceHandle)
	}
	if !bytes.Equal(env.CIPPayload, cipReply) {
		t.Errorf("CIPPayload = %v, want %v", env.CIPPayload, cipReply)
	}
}

func TestDecodeUnconnectedEnvelope_NonZeroInterfaceHandle(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := DecodeUnconnectedEnvelope(data); err == nil {
		t.Fatal("expected error for non-zero interface handle")
	}
}

func TestDecodeUnconnectedEnvelope_TooShort(t *testing.T) {
	if _, err := DecodeUnconnectedEnvelope([]byte{0x00, 0x00}); err == nil {
		t.Fatal("expected error for short payload")
	}
}
