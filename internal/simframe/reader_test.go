package simframe

import (
	"bytes"
	"testing"

	"github.com/musiguello/logixsim/internal/simerr"
)

func TestReadPacketExactFrame(t *testing.T) {
	header := make([]byte, HeaderSize)
	header[2] = 0x04 // length = 4
	payload := []byte{0x01, 0x00, 0x00, 0x00}

	in := append(append([]byte{}, header...), payload...)
	r := bytes.NewReader(in)

	packet, err := ReadPacket(r)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if len(packet) != HeaderSize+4 {
		t.Fatalf("expected %d bytes, got %d", HeaderSize+4, len(packet))
	}
	if !bytes.Equal(packet[HeaderSize:], payload) {
		t.Fatalf("payload mismatch: %x", packet[HeaderSize:])
	}
}

func TestReadPacketShortConnectionCloses(t *testing.T) {
	r := bytes.NewReader(make([]byte, 10)) // less than HeaderSize
	_, err := ReadPacket(r)
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
	if simerr.CodeOf(err) != simerr.TooSmall {
		t.Fatalf("expected TooSmall, got %v", simerr.CodeOf(err))
	}
}

func TestReadPacketOversizedRejected(t *testing.T) {
	header := make([]byte, HeaderSize)
	header[2] = 0xFF
	header[3] = 0xFF // length = 65535, exceeds MaxPacketSize
	r := bytes.NewReader(header)

	_, err := ReadPacket(r)
	if err == nil {
		t.Fatal("expected error for oversized payload length")
	}
	if simerr.CodeOf(err) != simerr.TooLarge {
		t.Fatalf("expected TooLarge, got %v", simerr.CodeOf(err))
	}
}
