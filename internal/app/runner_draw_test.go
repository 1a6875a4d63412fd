package app

import (
	"strings"
	"testing"

	"example.com/gapedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing screen failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawUI(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	width, height := s.Size()
	drawUI(s)
	msg := "gapedit: No File"
	msgX := (width - len(msg)) / 2
	msgY := height / 2
	for i, r := range msg {
		cr, _, _, _ := s.GetContent(msgX+i, msgY)
		if cr != r {
			t.Fatalf("content mismatch at (%d,%d): expected %q got %q", msgX+i, msgY, string(r), string(cr))
		}
	}
}

func TestDraw_RendersBytesAndStatus(t *testing.T) {
	s := newSimScreen(t, 40, 5)
	r := New(openDoc(t, "hi\n\x01x"), nil)
	r.Screen = s
	r.draw()

	if got := rowText(s, 0, 40); got != "hi" {
		t.Fatalf("row 0: expected 'hi', got %q", got)
	}
	ch, _, _, _ := s.GetContent(0, 1)
	if ch != placeholderGlyph {
		t.Fatalf("expected placeholder for control byte, got %q", ch)
	}
	status := rowText(s, 4, 40)
	if !strings.Contains(status, "doc.txt") || !strings.Contains(status, "5/5") {
		t.Fatalf("unexpected status %q", status)
	}
	// cursor sits after the last byte
	_, _, st, _ := s.GetContent(2, 1)
	if st != r.Theme.Cursor() {
		t.Fatalf("expected cursor style at (2,1)")
	}
}

func TestDraw_ScrollsToCursor(t *testing.T) {
	s := newSimScreen(t, 20, 4)
	r := New(openDoc(t, "1\n2\n3\n4\n5\n6"), nil)
	r.Screen = s
	r.draw()
	if r.TopLine != 3 {
		t.Fatalf("expected top line 3 with 3 text rows, got %d", r.TopLine)
	}
	if got := rowText(s, 2, 20); got != "6" {
		t.Fatalf("expected last row '6', got %q", got)
	}
	r.seekTo(0)
	r.draw()
	if r.TopLine != 0 {
		t.Fatalf("expected scroll back to top, got %d", r.TopLine)
	}
}

func TestDraw_ScrollsLongLineToCursor(t *testing.T) {
	s := newSimScreen(t, 5, 3)
	r := New(openDoc(t, "abcdefghij\nxy"), nil)
	r.Screen = s
	r.seekTo(10)
	r.draw()
	if r.LeftCol != 6 {
		t.Fatalf("expected left column 6, got %d", r.LeftCol)
	}
	if got := rowText(s, 0, 5); got != "ghij" {
		t.Fatalf("row 0: expected 'ghij', got %q", got)
	}
	if _, _, st, _ := s.GetContent(4, 0); st != r.Theme.Cursor() {
		t.Fatalf("expected cursor style at (4,0)")
	}
	// other rows shift with the view
	if got := rowText(s, 1, 5); got != "" {
		t.Fatalf("row 1: expected blank, got %q", got)
	}
	r.seekTo(0)
	r.draw()
	if r.LeftCol != 0 {
		t.Fatalf("expected scroll back to column 0, got %d", r.LeftCol)
	}
	if got := rowText(s, 0, 5); got != "abcde" {
		t.Fatalf("row 0: expected 'abcde', got %q", got)
	}
}

func TestDrawHelp_ListsBindings(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	drawHelp(s, config.DefaultKeymap())
	var all strings.Builder
	for y := 0; y < 24; y++ {
		all.WriteString(rowText(s, y, 80))
		all.WriteByte('\n')
	}
	for _, want := range []string{"Ctrl+S: Save", "F1 or Ctrl+G: Show this help"} {
		if !strings.Contains(all.String(), want) {
			t.Fatalf("expected help to list %q, got:\n%s", want, all.String())
		}
	}
}
