package eip

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeConnectedEnvelope_RoundTrip(t *testing.T) {
	cipReply := []byte{0xCC, 0x00, 0x00, 0x00, 0xC4, 0x00, 0x01, 0x00, 0x00, 0x00}

	encoded, err := EncodeConnectedEnvelope(0x80000001, 7, cipReply)
	if err != nil {
		t.Fatalf("EncodeConnectedEnvelope: %v", err)
	}

	env, err := DecodeConnectedEnvelope(encoded)
	if err != nil {
		t.Fatalf("DecodeConnectedEnvelope: %v", err)
	}
	if env.ConnectionID != 0x80000001 {
		t.Errorf("ConnectionID = 0x%08X, want 0x80000001", env.ConnectionID)
	}
	if env.ConnectionSeq != 7 {
		t.Errorf("ConnectionSeq = %d, want 7", env.ConnectionSeq)
	}
	if !bytes.Equal(env.CIPPayload, cipReply) {
		t.Errorf("CIPPayload = %v, want %v", env.CIPPayload, cipReply)
	}
}

func TestDecodeConnectedEnvelope_TooShort(t *testing.T) {
	if _, err := DecodeConnectedEnvelope([]byte{0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error for short payload")
	}
}

func TestDecodeConnectedEnvelope_BadAddressItem(t *testing.T) {
	// Interface handle(4)=0, router timeout(2)=0, item count(2)=2,
	// then a malformed address item (wrong length).
	data := []byte{
		0, 0, 0, 0, 0, 0,
		2, 0,
		0xA1, 0x00, 0x02, 0x00, 0x01, 0x02, // length 2, not 4
		0xB1, 0x00, 0x02, 0x00, 0x00, 0x00,
	}
	if _, err := DecodeConnectedEnvelope(data); err == nil {
		t.Fatal("expected error for malformed connected address item")
	}
}
