// Package simsession holds the per-connection mutable state a simulated
// session carries between requests: the session handle, the active
// connection's IDs and sequence numbers, the fragmentation budget, and a
// fixed-size scratch buffer. The scratch buffer is allocated with the
// context but not used: the frame reader reads each request into a freshly
// allocated slice and the handlers build each reply in fresh slices.
package simsession

import "github.com/musiguello/logixsim/internal/simtag"

// ScratchBufferSize is the per-connection scratch buffer capacity, reused
// from the origin implementation's BUF_SIZE.
const ScratchBufferSize = 4200

// State is the explicit session state machine:
// UNREGISTERED -> REGISTERED -> CONNECTED -> CLOSED. Read/Read Fragmented
// are CONNECTED -> CONNECTED transitions (self-loops) and are not modeled
// as distinct states.
type State int

const (
	StateUnregistered State = iota
	StateRegistered
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "UNREGISTERED"
	case StateRegistered:
		return "REGISTERED"
	case StateConnected:
		return "CONNECTED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Context is the per-connection session context. One Context is created
// when a connection is accepted and discarded when it closes; nothing in
// it is shared across connections.
type Context struct {
	State State

	Scratch [ScratchBufferSize]byte

	MaxResponseSize uint16

	SessionHandle        uint32
	ClientSessionContext uint64

	ClientConnectionID  uint32
	ClientConnectionSeq uint16
	ServerConnectionID  uint32
	ServerConnectionSeq uint16

	Tags *simtag.Table

	Done bool
}

// New builds a fresh, UNREGISTERED session context for an accepted
// connection. maxResponseSize bounds CIP reply payloads (Read Tag
// fragmentation); 0 means "use the scratch buffer's own capacity".
func New(tags *simtag.Table, maxResponseSize uint16) *Context {
	c := &Context{
		State: StateUnregistered,
		Tags:  tags,
	}
	if maxResponseSize == 0 {
		maxResponseSize = ScratchBufferSize
	}
	c.MaxResponseSize = maxResponseSize
	return c
}

// AllowedFrom reports whether a handler whose permitted predecessor states
// are perms may run given the context's current state.
func (c *Context) AllowedFrom(perms ...State) bool {
	for _, p := range perms {
		if c.State == p {
			return true
		}
	}
	return false
}
