package terminal

import (
	"errors"
	"os"
	"testing"
)

func TestAcquireRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatalf("create temp: %v", err)
	}
	defer f.Close()
	if _, err := Acquire(int(f.Fd())); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}

func TestNilRawModeIsSafe(t *testing.T) {
	var m *RawMode
	if err := m.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	called := false
	boom := errors.New("boom")
	err := m.Suspend(func() error {
		called = true
		return boom
	})
	if !called || !errors.Is(err, boom) {
		t.Fatalf("expected fn to run and its error returned, got called=%v err=%v", called, err)
	}
}

func TestReleasedRawModeSuspendRunsFn(t *testing.T) {
	m := &RawMode{fd: -1}
	if err := m.Release(); err != nil {
		t.Fatalf("release of inactive mode: %v", err)
	}
	ran := false
	if err := m.Suspend(func() error { ran = true; return nil }); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !ran || m.raw {
		t.Fatalf("expected fn to run without re-entering raw mode")
	}
}
