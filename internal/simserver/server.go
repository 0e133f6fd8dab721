// Package simserver is the TCP listener and per-connection handler that
// ties the EIP/CPF/CIP layers together: accept a connection, frame and
// decode each EIP packet, validate and dispatch it, marshal the reply,
// and repeat until Forward Close or the peer disconnects.
package simserver

import (
	"bytes"
	"context"
	"net"

	"github.com/musiguello/logixsim/internal/logging"
	"github.com/musiguello/logixsim/internal/metrics"
	"github.com/musiguello/logixsim/internal/simcip"
	"github.com/musiguello/logixsim/internal/simerr"
	"github.com/musiguello/logixsim/internal/simframe"
	"github.com/musiguello/logixsim/internal/simsession"
	"github.com/musiguello/logixsim/internal/simtag"
	"github.com/musiguello/logixsim/pkg/eip"
	"github.com/musiguello/logixsim/pkg/utils"
)

// Server accepts EIP connections and runs each one to completion.
type Server struct {
	tags            *simtag.Table
	maxResponseSize uint16
	gen             simcip.HandleGenerator
	log             logging.Logger
	metrics         *metrics.Metrics
}

// New builds a Server bound to the given tag table (read-only once the
// listener starts) and per-session fragmentation budget.
func New(tags *simtag.Table, maxResponseSize uint16, m *metrics.Metrics, log logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{
		tags:            tags,
		maxResponseSize: maxResponseSize,
		gen:             simcip.CryptoHandleGenerator{},
		log:             log,
		metrics:         m,
	}
}

// Serve listens on address and accepts connections until ctx is canceled.
// Each connection is handled synchronously end to end before the next is
// accepted; cancellation is observed between connections. There is no shared mutable state
// between connections beyond the read-only tag table and the metrics
// registry.
func (s *Server) Serve(ctx context.Context, address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return simerr.Wrap(simerr.CreateFailed, err, "binding EIP listener on "+address)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.Infof("listening for EIP connections on %s", address)
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.log.Warnf("accept failed: %v", err)
				continue
			}
		}
		s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	sessCtx := simsession.New(s.tags, s.maxResponseSize)
	cipCtx := &simcip.Context{Session: sessCtx, HandleGen: s.gen}

	for {
		packet, err := simframe.ReadPacket(conn)
		if err != nil {
			s.countError(err)
			return
		}

		header := &eip.EncapsulationHeader{}
		if err := header.Decode(bytes.NewReader(packet[:eip.HeaderSize])); err != nil {
			s.countError(simerr.Wrap(simerr.BadData, err, "decoding EIP header"))
			return
		}
		payload := packet[eip.HeaderSize:]
		if int(header.Length) != len(payload) {
			s.countError(simerr.New(simerr.BadParam, "EIP length field does not match payload size"))
			return
		}
		if header.Status != 0 {
			s.countError(simerr.New(simerr.BadParam, "non-zero status in request header"))
			return
		}
		if header.Options != 0 {
			s.countError(simerr.New(simerr.BadParam, "non-zero options in request header"))
			return
		}

		s.log.Debugf("recv %s:\n%s", header, utils.HexDump(packet))

		senderContext := uint64LE(header.SenderContext[:])

		if header.Command != eip.CommandRegisterSession {
			if header.SessionHandle != eip.SessionHandle(sessCtx.SessionHandle) {
				s.countError(simerr.New(simerr.BadParam, "session handle mismatch"))
				return
			}
			if header.Command == eip.CommandSendUnitData && senderContext != 0 {
				s.countError(simerr.New(simerr.BadParam, "non-zero sender context on a connected-data command"))
				return
			}
			sessCtx.ClientSessionContext = senderContext
		}

		replyPayload, done, err := s.dispatchCommand(cipCtx, header, senderContext, payload)
		if err != nil {
			s.countError(err)
			return
		}

		replyHeader := &eip.EncapsulationHeader{
			Command:       header.Command,
			Length:        uint16(len(replyPayload)),
			SessionHandle: eip.SessionHandle(sessCtx.SessionHandle),
			Status:        0,
			Options:       0,
		}
		putUint64LE(replyHeader.SenderContext[:], sessCtx.ClientSessionContext)

		if _, err := conn.Write(replyHeader.Bytes()); err != nil {
			return
		}
		if len(replyPayload) > 0 {
			if _, err := conn.Write(replyPayload); err != nil {
				return
			}
		}

		if done || sessCtx.Done {
			return
		}
	}
}

// dispatchCommand handles one EIP command and returns the reply payload
// (following the EIP header) plus whether the connection should close
// after this reply is sent (Unregister Session).
func (s *Server) dispatchCommand(cipCtx *simcip.Context, header *eip.EncapsulationHeader, senderContext uint64, payload []byte) ([]byte, bool, error) {
	sessCtx := cipCtx.Session

	switch header.Command {
	case eip.CommandRegisterSession:
		reply, err := simcip.HandleRegisterSession(sessCtx, cipCtx.HandleGen, uint32(header.SessionHandle), senderContext, payload)
		if err != nil {
			return nil, false, err
		}
		if s.metrics != nil {
			s.metrics.SessionsRegistered.Inc()
		}
		return reply, false, nil

	case eip.CommandUnregisterSession:
		return nil, true, nil

	case eip.CommandSendRRData:
		env, err := eip.DecodeUnconnectedEnvelope(payload)
		if err != nil {
			return nil, false, err
		}
		reply, err := simcip.DispatchUnconnected(cipCtx, env.CIPPayload)
		if err != nil {
			return nil, false, err
		}
		if s.metrics != nil && (reply.Service == (simcip.ServiceForwardOpen|0x80) || reply.Service == (simcip.ServiceForwardOpenExtended|0x80)) {
			s.metrics.ForwardOpens.Inc()
		}
		cipReply := append([]byte{reply.Service}, reply.Payload...)
		out, err := eip.EncodeUnconnectedEnvelope(cipReply)
		return out, false, err

	case eip.CommandSendUnitData:
		env, err := eip.DecodeConnectedEnvelope(payload)
		if err != nil {
			return nil, false, err
		}
		if env.ConnectionID != sessCtx.ServerConnectionID {
			return nil, false, simerr.New(simerr.BadParam, "stale or unknown connection id")
		}
		sessCtx.ClientConnectionSeq = env.ConnectionSeq

		reply, err := simcip.DispatchConnected(cipCtx, env.CIPPayload)
		if err != nil {
			return nil, false, err
		}
		s.recordConnectedMetrics(reply)

		cipReply := append([]byte{reply.Service}, reply.Payload...)
		out, err := eip.EncodeConnectedEnvelope(sessCtx.ServerConnectionID, env.ConnectionSeq, cipReply)
		return out, false, err

	default:
		return nil, false, simerr.Newf(simerr.Unsupported, "unsupported EIP command 0x%04X", uint16(header.Command))
	}
}

func (s *Server) recordConnectedMetrics(reply simcip.Reply) {
	if s.metrics == nil {
		return
	}
	switch reply.Service {
	case simcip.ServiceForwardClose | 0x80:
		s.metrics.ForwardCloses.Inc()
	case simcip.ServiceReadTag | 0x80, simcip.ServiceReadTagFragmented | 0x80:
		status := byte(0)
		if len(reply.Payload) > 1 {
			status = reply.Payload[1]
		}
		switch status {
		case 0:
			s.metrics.ReadsServed.WithLabelValues("ok").Inc()
		case 0x06:
			s.metrics.ReadsServed.WithLabelValues("fragmented").Inc()
		case 0x04:
			s.metrics.ReadsServed.WithLabelValues("unknown_tag").Inc()
		default:
			s.metrics.ReadsServed.WithLabelValues("error").Inc()
		}
	}
}

func (s *Server) countError(err error) {
	s.log.Warnf("connection terminated: %v", err)
	if s.metrics != nil {
		s.metrics.ProtocolErrors.WithLabelValues(simerr.CodeOf(err).String()).Inc()
	}
}

func uint64LE(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v)
		v >>= 8
	}
}
