package app

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"example.com/gapedit/pkg/editor"
	"example.com/gapedit/pkg/logs"
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// ErrSaveFailed is returned by LineSession.Run when the final save fails.
var ErrSaveFailed = errors.New("save failed")

// RawTerminal is the part of terminal.RawMode the line driver needs.
type RawTerminal interface {
	Suspend(fn func() error) error
}

// LineSession is the single-keystroke command loop:
//
//	i  read one line in cooked mode and insert it at the cursor
//	x  delete the byte before the cursor
//	:  save and exit
//	q  exit without saving
type LineSession struct {
	Doc    *editor.Document
	In     *bufio.Reader
	Out    io.Writer
	Err    io.Writer // falls back to Out
	Term   RawTerminal
	Logger *logs.Logger
}

// NewLineSession wires a session; term may be nil when input is not a terminal.
func NewLineSession(doc *editor.Document, in io.Reader, out io.Writer, term RawTerminal) *LineSession {
	l := &LineSession{Doc: doc, In: bufio.NewReader(in), Out: out, Term: term}
	if doc != nil {
		l.Logger = doc.Logger
	}
	return l
}

// Run processes commands until q, :, or end of input.
func (l *LineSession) Run() error {
	l.Logger.Event("run.start", map[string]any{"file": l.Doc.Path, "driver": "line"})
	defer l.Logger.Event("run.end", map[string]any{"file": l.Doc.Path})

	if err := l.render(); err != nil {
		return err
	}
	for {
		c, err := l.In.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch c {
		case 'q':
			l.Logger.Event("action", map[string]any{"name": "quit"})
			return nil
		case 'i':
			if err := l.suspend(l.insertLine); err != nil {
				return err
			}
		case 'x':
			l.Doc.DeleteChar()
		case ':':
			return l.saveAndExit()
		}
		if err := l.render(); err != nil {
			return err
		}
	}
}

func (l *LineSession) suspend(fn func() error) error {
	if l.Term == nil {
		return fn()
	}
	return l.Term.Suspend(fn)
}

func (l *LineSession) insertLine() error {
	line, err := l.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	l.Doc.InsertString(line)
	l.Logger.Debug("action", map[string]any{"name": "insert.line", "bytes": len(line), "cursor": l.Doc.Buf.Cursor()})
	return nil
}

// saveAndExit reports success on Out and failure on Err.
func (l *LineSession) saveAndExit() error {
	return l.suspend(func() error {
		if err := l.Doc.Save(); err != nil {
			w := l.Err
			if w == nil {
				w = l.Out
			}
			if _, werr := fmt.Fprintln(w, "Unable to save changes to file."); werr != nil {
				return werr
			}
			return fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		_, err := fmt.Fprintln(l.Out, "Changes saved to file. Exiting...")
		return err
	})
}

func (l *LineSession) render() error {
	var b bytes.Buffer
	b.WriteString(clearScreen)
	if _, err := l.Doc.WriteTo(&b); err != nil {
		return err
	}
	b.WriteByte('\n')
	out := b.Bytes()
	if l.Term != nil {
		// raw mode turns off output post-processing
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	_, err := l.Out.Write(out)
	return err
}
