// Package terminal scopes raw terminal mode so it is always restored.
package terminal

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when the descriptor is not attached to a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// RawMode is an acquired raw-mode session on one file descriptor.
// Release must be called on every exit path; it is safe to call twice.
type RawMode struct {
	mu    sync.Mutex
	fd    int
	saved *term.State
	raw   bool
}

// Acquire puts fd into raw mode and remembers the previous state.
func Acquire(fd int) (*RawMode, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d: %w", fd, ErrNotTerminal)
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	return &RawMode{fd: fd, saved: st, raw: true}, nil
}

// Release restores the terminal state captured by Acquire.
func (m *RawMode) Release() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restoreLocked()
}

func (m *RawMode) restoreLocked() error {
	if !m.raw {
		return nil
	}
	if err := term.Restore(m.fd, m.saved); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	m.raw = false
	return nil
}

// Suspend restores cooked mode while fn runs and re-enters raw mode
// afterwards, even when fn fails. A released RawMode just runs fn.
func (m *RawMode) Suspend(fn func() error) error {
	if m == nil {
		return fn()
	}
	m.mu.Lock()
	wasRaw := m.raw
	if err := m.restoreLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	ferr := fn()

	if !wasRaw {
		return ferr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := term.MakeRaw(m.fd); err != nil {
		return errors.Join(ferr, fmt.Errorf("re-entering raw mode: %w", err))
	}
	m.raw = true
	return ferr
}

// Size returns the terminal's width and height.
func Size(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}
