package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"example.com/gapedit/pkg/buffer"
	"example.com/gapedit/pkg/logs"
)

// ErrNoPath is returned when saving a document that has no file path.
var ErrNoPath = errors.New("document has no file path")

// Document is one editing session's text: a file path and the buffer that
// exclusively owns its contents.
type Document struct {
	Path   string
	Buf    *buffer.GapBuffer
	Dirty  bool
	Logger *logs.Logger
}

// Open reads path into a new buffer sized at twice the file length (never
// below minCapacity). The cursor is left at the end of the text. A missing
// file gives an empty document that is created on first save.
func Open(path string, minCapacity int, logger *logs.Logger) (*Document, error) {
	if minCapacity < 1 {
		minCapacity = 1
	}
	logger.Event("open.attempt", map[string]any{"file": path})
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		buf, _ := buffer.New(minCapacity)
		logger.Event("open.new", map[string]any{"file": path, "capacity": buf.Cap()})
		return &Document{Path: path, Buf: buf, Logger: logger}, nil
	}
	if err != nil {
		logger.Error("open.error", err, map[string]any{"file": path})
		return nil, err
	}
	defer f.Close()

	capacity := minCapacity
	if fi, err := f.Stat(); err == nil && 2*fi.Size() > int64(capacity) {
		capacity = int(2 * fi.Size())
	}
	buf, err := buffer.New(capacity)
	if err != nil {
		return nil, err
	}
	if _, err := buf.ReadFrom(f); err != nil {
		logger.Error("open.error", err, map[string]any{"file": path})
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Event("open.success", map[string]any{"file": path, "bytes": buf.Len(), "capacity": buf.Cap()})
	return &Document{Path: path, Buf: buf, Logger: logger}, nil
}

// Save writes the buffer to a temporary file beside Path and renames it into
// place, then clears Dirty.
func (d *Document) Save() error {
	if d.Path == "" {
		return ErrNoPath
	}
	err := d.writeFile()
	if err != nil {
		d.Logger.Error("save.error", err, map[string]any{"file": d.Path})
		return err
	}
	d.Dirty = false
	d.Logger.Event("save.success", map[string]any{"file": d.Path, "bytes": d.Buf.Len()})
	return nil
}

func (d *Document) writeFile() error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(d.Path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(d.Path), "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := d.Buf.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	if err := os.Rename(tmp.Name(), d.Path); err != nil {
		return fmt.Errorf("saving %s: %w", d.Path, err)
	}
	return nil
}

// InsertChar inserts c at the cursor and marks the document dirty.
func (d *Document) InsertChar(c byte) {
	grows := d.Buf.Grows()
	d.Buf.InsertChar(c)
	d.changed(grows)
}

// InsertString inserts s at the cursor and marks the document dirty.
func (d *Document) InsertString(s string) {
	if s == "" {
		return
	}
	grows := d.Buf.Grows()
	d.Buf.InsertString(s)
	d.changed(grows)
}

// DeleteChar removes the byte before the cursor. It reports whether
// anything was removed.
func (d *Document) DeleteChar() bool {
	if d.Buf.Cursor() == 0 {
		return false
	}
	d.Buf.DeleteChar()
	d.Dirty = true
	return true
}

// Seek moves the cursor; see buffer.GapBuffer.Seek.
func (d *Document) Seek(offset int64, whence int) (int64, error) {
	return d.Buf.Seek(offset, whence)
}

// Contents returns the materialized text.
func (d *Document) Contents() []byte {
	return d.Buf.Bytes()
}

// WriteTo writes the materialized text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.Buf.WriteTo(w)
}

func (d *Document) changed(grows int) {
	d.Dirty = true
	if d.Buf.Grows() != grows {
		d.Logger.Event("buffer.grow", map[string]any{"capacity": d.Buf.Cap(), "buffer_len": d.Buf.Len()})
	}
}
