package app

import (
	"io"
	"strings"
	"testing"

	"example.com/gapedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(r *Runner, s string) {
	for _, ch := range s {
		r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone))
	}
}

func TestHandleKeyEvent_CtrlQ_Rune(t *testing.T) {
	r := &Runner{}
	ev := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl)
	if !r.handleKeyEvent(ev) {
		t.Fatalf("expected Ctrl+q rune event to signal quit")
	}
}

func TestHandleKeyEvent_CtrlQ_Key(t *testing.T) {
	r := &Runner{}
	if !r.handleKeyEvent(key(tcell.KeyCtrlQ)) {
		t.Fatalf("expected KeyCtrlQ event to signal quit")
	}
}

func TestHandleKeyEvent_RemapQuit(t *testing.T) {
	kb, err := config.ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse keybinding: %v", err)
	}
	r := &Runner{Keymap: config.DefaultKeymap()}
	r.Keymap["quit"] = kb

	if r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl)) {
		t.Fatalf("Ctrl+Q should not quit after remap")
	}
	if !r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)) {
		t.Fatalf("Ctrl+X should quit after remap")
	}
}

func TestHandleKeyEvent_ShowHelp(t *testing.T) {
	r := &Runner{}
	if r.handleKeyEvent(key(tcell.KeyF1)) {
		t.Fatalf("F1 should not signal quit")
	}
	if !r.ShowHelp {
		t.Fatalf("expected ShowHelp to be set after F1")
	}
}

func TestHandleKeyEvent_HelpBinding(t *testing.T) {
	r := New(openDoc(t, "ab"), nil)
	if r.handleKeyEvent(key(tcell.KeyCtrlG)) || !r.ShowHelp {
		t.Fatalf("expected default Ctrl+G to show help")
	}

	kb, err := config.ParseKeybinding("Ctrl+K")
	if err != nil {
		t.Fatalf("parse keybinding: %v", err)
	}
	r = New(openDoc(t, "ab"), nil)
	r.Keymap["help"] = kb
	r.handleKeyEvent(key(tcell.KeyCtrlG))
	if r.ShowHelp {
		t.Fatalf("Ctrl+G should not show help after remap")
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModCtrl))
	if !r.ShowHelp {
		t.Fatalf("expected Ctrl+K to show help after remap")
	}
	if got := string(r.Doc.Contents()); got != "ab" {
		t.Fatalf("help keys changed content to %q", got)
	}
}

func TestRunner_TypingEditsAtCursor(t *testing.T) {
	r := New(openDoc(t, "ac"), nil)
	r.handleKeyEvent(key(tcell.KeyLeft))
	typeText(r, "b")
	if got := string(r.Doc.Contents()); got != "abc" {
		t.Fatalf("expected 'abc', got %q", got)
	}
	r.handleKeyEvent(key(tcell.KeyEnd))
	r.handleKeyEvent(key(tcell.KeyEnter))
	r.handleKeyEvent(key(tcell.KeyTab))
	typeText(r, "é")
	if got := string(r.Doc.Contents()); got != "abc\n\té" {
		t.Fatalf("expected 'abc\\n\\té', got %q", got)
	}
	if !r.Doc.Dirty {
		t.Fatalf("expected dirty document")
	}
}

func TestRunner_BackspaceAndDelete(t *testing.T) {
	r := New(openDoc(t, "abcd"), nil)
	r.handleKeyEvent(key(tcell.KeyBackspace2))
	if got := string(r.Doc.Contents()); got != "abc" {
		t.Fatalf("expected 'abc', got %q", got)
	}
	r.handleKeyEvent(key(tcell.KeyHome))
	r.handleKeyEvent(key(tcell.KeyDelete))
	if got := string(r.Doc.Contents()); got != "bc" {
		t.Fatalf("expected 'bc', got %q", got)
	}
	// backspace at the start is a no-op
	r.handleKeyEvent(key(tcell.KeyBackspace))
	if got := string(r.Doc.Contents()); got != "bc" {
		t.Fatalf("expected 'bc' unchanged, got %q", got)
	}
}

func TestRunner_WordAndLineMotion(t *testing.T) {
	r := New(openDoc(t, "one two\nthree"), nil)
	r.handleKeyEvent(key(tcell.KeyHome))
	if c := r.Doc.Buf.Cursor(); c != 8 {
		t.Fatalf("expected line start 8, got %d", c)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl))
	if c := r.Doc.Buf.Cursor(); c != 4 {
		t.Fatalf("expected word start 4, got %d", c)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt))
	if c := r.Doc.Buf.Cursor(); c != 0 {
		t.Fatalf("expected word start 0, got %d", c)
	}
	r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl))
	if c := r.Doc.Buf.Cursor(); c != 4 {
		t.Fatalf("expected next word 4, got %d", c)
	}
	r.handleKeyEvent(key(tcell.KeyEnd))
	if c := r.Doc.Buf.Cursor(); c != 7 {
		t.Fatalf("expected line end 7, got %d", c)
	}
	// moving past either end is ignored
	r.handleKeyEvent(key(tcell.KeyHome))
	for i := 0; i < 3; i++ {
		r.handleKeyEvent(key(tcell.KeyLeft))
	}
	if c := r.Doc.Buf.Cursor(); c != 0 {
		t.Fatalf("expected cursor 0, got %d", c)
	}
	if got := string(r.Doc.Contents()); got != "one two\nthree" {
		t.Fatalf("motion changed content to %q", got)
	}
}

func TestRunner_SaveAndQuitGuard(t *testing.T) {
	r := New(openDoc(t, "x"), nil)
	typeText(r, "y")
	if r.handleKeyEvent(key(tcell.KeyCtrlQ)) {
		t.Fatalf("first quit with unsaved changes should be refused")
	}
	if !strings.Contains(r.Message, "Unsaved changes") {
		t.Fatalf("expected unsaved warning, got %q", r.Message)
	}
	if !r.handleKeyEvent(key(tcell.KeyCtrlQ)) {
		t.Fatalf("second quit should exit")
	}

	r = New(openDoc(t, "x"), nil)
	typeText(r, "y")
	r.handleKeyEvent(key(tcell.KeyCtrlS))
	if r.Doc.Dirty {
		t.Fatalf("expected clean document after save")
	}
	if got := readFile(t, r.Doc.Path); got != "xy" {
		t.Fatalf("expected saved 'xy', got %q", got)
	}
	if !r.handleKeyEvent(key(tcell.KeyCtrlQ)) {
		t.Fatalf("quit after save should exit at once")
	}
}

func TestRunner_OtherKeyDisarmsQuit(t *testing.T) {
	r := New(openDoc(t, ""), nil)
	typeText(r, "z")
	r.handleKeyEvent(key(tcell.KeyCtrlQ))
	r.handleKeyEvent(key(tcell.KeyLeft))
	if r.handleKeyEvent(key(tcell.KeyCtrlQ)) {
		t.Fatalf("quit guard should re-arm after another key")
	}
}

func TestLineBounds(t *testing.T) {
	r := New(openDoc(t, "ab\ncd\n"), nil)
	if _, err := r.Doc.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if s := lineStart(r.Doc.Buf, 4); s != 3 {
		t.Fatalf("expected 3, got %d", s)
	}
	if e := lineEnd(r.Doc.Buf, 4); e != 5 {
		t.Fatalf("expected 5, got %d", e)
	}
}
