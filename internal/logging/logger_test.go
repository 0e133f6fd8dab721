package logging

import "testing"

func TestNop(t *testing.T) {
	l := Nop()
	l.Debugf("x")
	l.Infof("x")
	l.Warnf("x")
	l.Errorf("x")
}

func TestNewConsole(t *testing.T) {
	l, err := NewConsole(true)
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	l.Infof("hello %s", "world")
}
