// Package simframe implements the frame reader: accumulating bytes off a
// stream connection until one complete EIP packet (24-byte header plus its
// declared payload) is held — read the full 24-byte header, take the
// payload length from its bytes [2..4], then read exactly that many
// payload bytes.
package simframe

import (
	"io"

	"github.com/musiguello/logixsim/internal/simerr"
)

// HeaderSize is the fixed EIP encapsulation header size in bytes.
const HeaderSize = 24

// MaxPacketSize bounds how large a single EIP packet's payload may be,
// guarding the per-packet allocation against a hostile or malformed length
// field.
const MaxPacketSize = 4096

// ReadPacket reads one complete EIP packet (header + payload) from r into a
// freshly allocated slice. It fails with ReadFailed on a transport error and
// TooSmall if the peer closes the connection before the frame completes.
func ReadPacket(r io.Reader) ([]byte, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, simerr.Wrap(simerr.TooSmall, err, "connection closed before header completed")
		}
		return nil, simerr.Wrap(simerr.ReadFailed, err, "reading EIP header")
	}

	payloadLen := uint16(header[2]) | uint16(header[3])<<8
	if int(payloadLen) > MaxPacketSize {
		return nil, simerr.Newf(simerr.TooLarge, "declared payload length %d exceeds max packet size %d", payloadLen, MaxPacketSize)
	}

	packet := make([]byte, HeaderSize+int(payloadLen))
	copy(packet, header)

	if payloadLen > 0 {
		if _, err := io.ReadFull(r, packet[HeaderSize:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, simerr.Wrap(simerr.TooSmall, err, "connection closed before payload completed")
			}
			return nil, simerr.Wrap(simerr.ReadFailed, err, "reading EIP payload")
		}
	}

	return packet, nil
}
