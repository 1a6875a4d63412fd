package buffer

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by buffer operations.
var (
	ErrOutOfRange       = errors.New("position out of range")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrInvalidWhence    = errors.New("invalid whence")
	ErrCapacityOverflow = errors.New("capacity overflow")
)

// placeholder fills fresh storage. It is never part of the logical text.
const placeholder = ' '

// GapBuffer is a byte-oriented gap buffer.
// The logical text is buf[:gapStart] followed by buf[gapEnd:]; the bytes in
// [gapStart, gapEnd) are free space. The cursor is always gapStart.
type GapBuffer struct {
	buf      []byte
	gapStart int
	gapEnd   int

	// grows counts reallocations; read by tests and the status line.
	grows int
}

// New creates an empty GapBuffer whose storage holds exactly capacity bytes.
func New(capacity int) (*GapBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	b := make([]byte, capacity)
	for i := range b {
		b[i] = placeholder
	}
	return &GapBuffer{buf: b, gapStart: 0, gapEnd: capacity}, nil
}

// NewFromBytes initializes a GapBuffer holding p with the cursor at the end.
// Capacity is twice the content length so early edits do not reallocate.
func NewFromBytes(p []byte) *GapBuffer {
	capacity := 2 * len(p)
	if capacity < 1 {
		capacity = 1
	}
	g, _ := New(capacity)
	g.InsertBytes(p)
	return g
}

// Len returns the logical length (excluding the gap).
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// Cap returns the size of the backing storage.
func (g *GapBuffer) Cap() int {
	return len(g.buf)
}

// Cursor returns the logical offset of the edit point.
func (g *GapBuffer) Cursor() int {
	return g.gapStart
}

// Gap returns the half-open storage range [start, end) occupied by the gap.
func (g *GapBuffer) Gap() (start, end int) {
	return g.gapStart, g.gapEnd
}

// Grows reports how many times the storage has been reallocated.
func (g *GapBuffer) Grows() int {
	return g.grows
}

func (g *GapBuffer) gapSize() int {
	return g.gapEnd - g.gapStart
}

// At returns the byte at logical index i, or 0 if i is out of bounds.
func (g *GapBuffer) At(i int) byte {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// MoveCursorTo moves the gap using a raw storage index in [0, Cap()).
//
// An index before the gap makes it the new cursor. An index after the gap
// drags the gap past that slot, so the cursor lands just after the byte that
// was stored there. An index inside the gap leaves the buffer untouched.
func (g *GapBuffer) MoveCursorTo(index int) error {
	if index < 0 || index >= len(g.buf) {
		return fmt.Errorf("%w: index %d not in [0,%d)", ErrOutOfRange, index, len(g.buf))
	}
	g.moveGap(index)
	return nil
}

func (g *GapBuffer) moveGap(index int) {
	size := g.gapSize()
	switch {
	case index < g.gapStart:
		shift := g.gapStart - index
		copy(g.buf[g.gapEnd-shift:g.gapEnd], g.buf[index:g.gapStart])
		g.gapStart = index
		g.gapEnd = index + size
	case index >= g.gapEnd:
		copy(g.buf[g.gapStart:], g.buf[g.gapEnd:index+1])
		g.gapStart = index - size + 1
		g.gapEnd = index + 1
	}
}

// setCursor moves the gap so that gapStart == pos, pos in [0, Len()].
func (g *GapBuffer) setCursor(pos int) {
	if pos == g.gapStart {
		return
	}
	if pos < g.gapStart {
		g.moveGap(pos)
		return
	}
	// the byte at logical pos-1 sits after the gap
	g.moveGap(g.gapEnd + (pos - g.gapStart) - 1)
}

// InsertChar inserts c at the cursor and advances the cursor past it.
func (g *GapBuffer) InsertChar(c byte) {
	if g.gapSize() == 0 {
		g.grow(1)
	}
	g.buf[g.gapStart] = c
	g.gapStart++
}

// InsertBytes inserts p at the cursor, leaving the cursor after it.
func (g *GapBuffer) InsertBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	if g.gapSize() < len(p) {
		g.grow(len(p))
	}
	g.gapStart += copy(g.buf[g.gapStart:g.gapEnd], p)
}

// InsertString inserts s at the cursor, leaving the cursor after it.
func (g *GapBuffer) InsertString(s string) {
	if len(s) == 0 {
		return
	}
	if g.gapSize() < len(s) {
		g.grow(len(s))
	}
	g.gapStart += copy(g.buf[g.gapStart:g.gapEnd], s)
}

// DeleteChar removes the byte before the cursor. At offset 0 it does nothing.
func (g *GapBuffer) DeleteChar() {
	if g.gapStart > 0 {
		g.gapStart--
	}
}

// grow doubles the capacity until the gap holds at least need bytes.
// The suffix after the gap is moved to the tail of the new storage so all
// new space joins the gap.
func (g *GapBuffer) grow(need int) {
	oldCap := len(g.buf)
	newCap := oldCap
	if newCap < 1 {
		newCap = 1
	}
	for newCap-g.Len() < need {
		if newCap > math.MaxInt/2 {
			panic(fmt.Errorf("%w: cannot grow past %d bytes", ErrCapacityOverflow, newCap))
		}
		newCap *= 2
	}
	suffix := oldCap - g.gapEnd
	nb := make([]byte, newCap)
	copy(nb, g.buf[:g.gapStart])
	copy(nb[newCap-suffix:], g.buf[g.gapEnd:])
	for i := g.gapStart; i < newCap-suffix; i++ {
		nb[i] = placeholder
	}
	g.buf, g.gapEnd = nb, newCap-suffix
	g.grows++
}

// Bytes returns a fresh copy of the logical text.
func (g *GapBuffer) Bytes() []byte {
	out := make([]byte, 0, g.Len())
	out = append(out, g.buf[:g.gapStart]...)
	return append(out, g.buf[g.gapEnd:]...)
}

// String returns the logical text.
func (g *GapBuffer) String() string {
	return string(g.Bytes())
}
