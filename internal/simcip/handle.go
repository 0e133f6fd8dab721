package simcip

import (
	"crypto/rand"
	"encoding/binary"
)

// HandleGenerator draws the random non-zero 32-bit identifiers this
// simulator hands out: session handles and server connection ids. It is
// an interface so tests can inject a deterministic generator instead of
// crypto/rand.
type HandleGenerator interface {
	Next() uint32
}

// CryptoHandleGenerator draws handles from crypto/rand, retrying on the
// vanishingly unlikely zero value (zero is reserved to mean "unassigned").
type CryptoHandleGenerator struct{}

func (CryptoHandleGenerator) Next() uint32 {
	var b [4]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			// crypto/rand failing is a platform-level emergency; a
			// simulator has no good degraded mode to fall back to.
			panic("simcip: crypto/rand unavailable: " + err.Error())
		}
		v := binary.LittleEndian.Uint32(b[:])
		if v != 0 {
			return v
		}
	}
}

// CounterHandleGenerator hands out a deterministic, strictly increasing
// sequence starting at the given seed (or 1 if seed is 0), for tests that
// need reproducible handles.
type CounterHandleGenerator struct {
	next uint32
}

// NewCounterHandleGenerator returns a generator whose first Next() call
// returns seed (or 1 if seed is 0).
func NewCounterHandleGenerator(seed uint32) *CounterHandleGenerator {
	if seed == 0 {
		seed = 1
	}
	return &CounterHandleGenerator{next: seed}
}

func (g *CounterHandleGenerator) Next() uint32 {
	v := g.next
	g.next++
	if g.next == 0 {
		g.next = 1
	}
	return v
}
