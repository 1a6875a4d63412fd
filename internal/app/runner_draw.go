package app

import (
	"fmt"
	"path/filepath"

	"example.com/gapedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

// placeholderGlyph stands in for bytes that have no single-cell rendering.
const placeholderGlyph = '·'

// drawUI renders the empty-state UI: a centered message and a status bar.
func drawUI(s tcell.Screen) {
	width, height := s.Size()
	msg := "gapedit: No File"
	msgX := (width - len(msg)) / 2
	msgY := height / 2
	for i, r := range msg {
		s.SetContent(msgX+i, msgY, r, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	status := "Press Ctrl+Q to exit"
	sbX := (width - len(status)) / 2
	sbY := height - 1
	for i, r := range status {
		s.SetContent(sbX+i, sbY, r, nil, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite))
	}
	s.Show()
}

func drawHelp(s tcell.Screen, bindings map[string]config.Keybinding) {
	keymap := config.DefaultKeymap()
	for name, kb := range bindings {
		keymap[name] = kb
	}
	width, height := s.Size()
	s.Clear()
	s.SetStyle(tcell.StyleDefault)
	lines := []string{
		"Help:",
		fmt.Sprintf("- F1 or %s: Show this help", keymap["help"]),
		fmt.Sprintf("- %s: Quit (twice if there are unsaved changes)", keymap["quit"]),
		fmt.Sprintf("- %s: Save", keymap["save"]),
		"- Typing: Inserts characters at the cursor",
		"- Enter/Tab: Insert newline/tab",
		"- Backspace/Delete: Remove before/after the cursor",
		"- Left/Right: Move cursor by one byte",
		"- Ctrl+Left/Right or Alt+B/F: Move by word",
		"- Home/End or Ctrl+A/Ctrl+E: Line start/end",
		"Press any key to return.",
	}
	y := (height - len(lines)) / 2
	for i, line := range lines {
		x := (width - len(line)) / 2
		for j, r := range []rune(line) {
			s.SetContent(x+j, y+i, r, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		}
	}
	s.Show()
}

// glyph maps a raw byte to the rune drawn in its cell.
func glyph(c byte) (rune, bool) {
	switch {
	case c == '\t':
		return ' ', true
	case c >= 0x20 && c < 0x7f:
		return rune(c), true
	}
	return placeholderGlyph, false
}

// cursorRow returns the zero-based line the cursor is on.
func cursorRow(text []byte, cursor int) int {
	row := 0
	for _, c := range text[:cursor] {
		if c == '\n' {
			row++
		}
	}
	return row
}

// draw renders the document one byte per cell, scrolled so the cursor cell
// is visible, followed by the status line. Long lines are not wrapped.
func (r *Runner) draw() {
	s := r.Screen
	if s == nil {
		return
	}
	if r.ShowHelp {
		drawHelp(s, r.Keymap)
		return
	}
	if r.Doc == nil {
		s.Clear()
		drawUI(s)
		return
	}
	s.SetStyle(r.Theme.Text())
	s.Clear()
	width, height := s.Size()
	rows := height - 1
	if rows < 1 {
		rows = 1
	}

	text := r.Doc.Contents()
	cursor := r.Doc.Buf.Cursor()
	if cr := cursorRow(text, cursor); cr < r.TopLine {
		r.TopLine = cr
	} else if cr >= r.TopLine+rows {
		r.TopLine = cr - rows + 1
	}

	if col := cursor - lineStart(r.Doc.Buf, cursor); col < r.LeftCol {
		r.LeftCol = col
	} else if col >= r.LeftCol+width {
		r.LeftCol = col - width + 1
	}

	row, x := 0, 0
	put := func(ch rune, st tcell.Style) {
		y, sx := row-r.TopLine, x-r.LeftCol
		if y >= 0 && y < rows && sx >= 0 && sx < width {
			s.SetContent(sx, y, ch, nil, st)
		}
	}
	for i, c := range text {
		if i == cursor {
			ch, _ := glyph(c)
			if c == '\n' {
				ch = ' '
			}
			put(ch, r.Theme.Cursor())
		} else if c != '\n' {
			ch, ok := glyph(c)
			st := r.Theme.Text()
			if !ok {
				st = r.Theme.Raw()
			}
			put(ch, st)
		}
		if c == '\n' {
			row++
			x = 0
			continue
		}
		x++
	}
	if cursor == len(text) {
		put(' ', r.Theme.Cursor())
	}
	r.drawStatus(width, height)
	s.Show()
}

func (r *Runner) drawStatus(width, height int) {
	st := r.Theme.Status()
	for i := 0; i < width; i++ {
		r.Screen.SetContent(i, height-1, ' ', nil, st)
	}
	name := "[No Name]"
	if r.Doc.Path != "" {
		name = filepath.Base(r.Doc.Path)
	}
	if r.Doc.Dirty {
		name += " [+]"
	}
	status := fmt.Sprintf(" %s  %d/%d  cap %d", name, r.Doc.Buf.Cursor(), r.Doc.Buf.Len(), r.Doc.Buf.Cap())
	if r.Message != "" {
		status += "  " + r.Message
	}
	for i, ch := range []rune(status) {
		if i >= width {
			break
		}
		r.Screen.SetContent(i, height-1, ch, nil, st)
	}
}
