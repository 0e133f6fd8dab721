package simcip

import "testing"

func TestCounterHandleGeneratorNeverZero(t *testing.T) {
	g := NewCounterHandleGenerator(0)
	if g.Next() != 1 {
		t.Fatal("seed 0 should start at 1")
	}
	if g.Next() != 2 {
		t.Fatal("expected monotone increase")
	}
}

func TestCryptoHandleGeneratorNonZero(t *testing.T) {
	g := CryptoHandleGenerator{}
	for i := 0; i < 100; i++ {
		if g.Next() == 0 {
			t.Fatal("CryptoHandleGenerator must never return 0")
		}
	}
}
