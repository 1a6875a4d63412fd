package buffer

import (
	"fmt"
	"io"
)

// minRead is the gap ReadFrom asks for once the current one is full.
const minRead = 512

// Seek moves the cursor to a logical offset in [0, Len()].
// Unlike MoveCursorTo it never depends on where the gap currently is.
func (g *GapBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(g.gapStart) + offset
	case io.SeekEnd:
		abs = int64(g.Len()) + offset
	default:
		return int64(g.gapStart), fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	if abs < 0 || abs > int64(g.Len()) {
		return int64(g.gapStart), fmt.Errorf("%w: offset %d not in [0,%d]", ErrOutOfRange, abs, g.Len())
	}
	g.setCursor(int(abs))
	return abs, nil
}

// Write inserts p at the cursor. It always consumes all of p.
func (g *GapBuffer) Write(p []byte) (int, error) {
	g.InsertBytes(p)
	return len(p), nil
}

// WriteTo writes the logical text to w without materializing a copy.
func (g *GapBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(g.buf[:g.gapStart])
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(g.buf[g.gapEnd:])
	return total + int64(n), err
}

// ReadFrom inserts everything read from r at the cursor, reading straight
// into the gap. io.EOF is not reported as an error.
func (g *GapBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if g.gapSize() == 0 {
			g.grow(minRead)
		}
		n, err := r.Read(g.buf[g.gapStart:g.gapEnd])
		g.gapStart += n
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
