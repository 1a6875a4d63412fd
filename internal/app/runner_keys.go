package app

import (
	"fmt"
	"io"
	"unicode/utf8"

	"example.com/gapedit/pkg/buffer"
	"github.com/gdamore/tcell/v2"
)

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	if r.binding("quit").Matches(ev) {
		if r.Doc != nil && r.Doc.Dirty && !r.quitArmed {
			r.quitArmed = true
			r.Message = fmt.Sprintf("Unsaved changes; press %s again to quit", r.binding("quit"))
			return false
		}
		return true
	}
	r.quitArmed = false
	r.Message = ""

	if ev.Key() == tcell.KeyF1 || r.binding("help").Matches(ev) {
		r.ShowHelp = true
		return false
	}
	if r.Doc == nil {
		return false
	}
	if r.binding("save").Matches(ev) {
		r.save()
		return false
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			r.handleAltRune(ev)
			return false
		}
		r.insertRune(ev.Rune())
	case tcell.KeyEnter:
		r.insertRune('\n')
	case tcell.KeyTab:
		r.insertRune('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r.Doc.DeleteChar() {
			r.logEdit("delete")
		}
	case tcell.KeyDelete:
		if r.Doc.Buf.Cursor() < r.Doc.Buf.Len() {
			_, _ = r.Doc.Seek(1, io.SeekCurrent)
			r.Doc.DeleteChar()
			r.logEdit("delete.forward")
		}
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			r.seekTo(buffer.WordStart(r.Doc.Buf, r.Doc.Buf.Cursor()))
		} else {
			_, _ = r.Doc.Seek(-1, io.SeekCurrent)
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			r.seekTo(buffer.NextWordStart(r.Doc.Buf, r.Doc.Buf.Cursor()))
		} else {
			_, _ = r.Doc.Seek(1, io.SeekCurrent)
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		r.seekTo(lineStart(r.Doc.Buf, r.Doc.Buf.Cursor()))
	case tcell.KeyEnd, tcell.KeyCtrlE:
		r.seekTo(lineEnd(r.Doc.Buf, r.Doc.Buf.Cursor()))
	}
	return false
}

// handleAltRune maps Alt+b / Alt+f to word motions, as shells do.
func (r *Runner) handleAltRune(ev *tcell.EventKey) {
	if ev.Modifiers()&tcell.ModAlt == 0 {
		return
	}
	switch ev.Rune() {
	case 'b':
		r.seekTo(buffer.WordStart(r.Doc.Buf, r.Doc.Buf.Cursor()))
	case 'f':
		r.seekTo(buffer.NextWordStart(r.Doc.Buf, r.Doc.Buf.Cursor()))
	}
}

// insertRune stores ch as its UTF-8 bytes; the buffer itself is byte-oriented.
func (r *Runner) insertRune(ch rune) {
	if ch < utf8.RuneSelf {
		r.Doc.InsertChar(byte(ch))
	} else {
		r.Doc.InsertString(string(ch))
	}
	r.logEdit("insert")
}

func (r *Runner) seekTo(pos int) {
	_, _ = r.Doc.Seek(int64(pos), io.SeekStart)
}

func (r *Runner) save() {
	if err := r.Doc.Save(); err != nil {
		r.Message = "Save failed: " + err.Error()
		return
	}
	r.Message = fmt.Sprintf("Saved %d bytes to %s", r.Doc.Buf.Len(), r.Doc.Path)
	r.Logger.Event("action", map[string]any{"name": "save", "file": r.Doc.Path})
}

func (r *Runner) logEdit(name string) {
	r.Logger.Debug("action", map[string]any{
		"name":       name,
		"cursor":     r.Doc.Buf.Cursor(),
		"buffer_len": r.Doc.Buf.Len(),
		"capacity":   r.Doc.Buf.Cap(),
	})
}

// lineStart returns the offset just after the previous '\n' before pos.
func lineStart(s buffer.Storage, pos int) int {
	for pos > 0 && s.At(pos-1) != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset of the next '\n' at or after pos, or Len().
func lineEnd(s buffer.Storage, pos int) int {
	for pos < s.Len() && s.At(pos) != '\n' {
		pos++
	}
	return pos
}
