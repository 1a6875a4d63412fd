package buffer

import "io"

// Storage is the editing surface the drivers work against.
// Offsets are logical byte offsets unless a method says otherwise.
type Storage interface {
	io.Writer
	io.WriterTo
	io.Seeker
	InsertChar(c byte)
	DeleteChar()
	MoveCursorTo(index int) error
	At(i int) byte
	Bytes() []byte
	Cursor() int
	Len() int
	Cap() int
}

var _ Storage = (*GapBuffer)(nil)
