package gapbuffer

import (
	"bytes"
	"fmt"
)

// Find returns the logical index of the count-th occurrence of c, counting
// from 1 and scanning from the start of the content. It returns NotFound if
// there are fewer than count occurrences. A count of zero returns 0 without
// scanning.
func (g *GapBuffer) Find(c byte, count int) int {
	if count == 0 {
		return 0
	}
	if count < 0 {
		return NotFound
	}

	seen := 0
	for i, b := range g.All() {
		if b == c {
			seen++
			if seen == count {
				return i
			}
		}
	}
	return NotFound
}

// Line returns the line containing logical position pos: everything after
// the closest '\n' before pos, up to and including the next '\n' at or after
// pos. The start and end of the content bound the line when there is no
// such delimiter. pos may equal Len(), which selects the last line.
func (g *GapBuffer) Line(pos int) (string, error) {
	if pos < 0 || pos > g.Len() {
		return "", fmt.Errorf("%w: line position %d with length %d", ErrOutOfRange, pos, g.Len())
	}
	if g.Empty() {
		return "", fmt.Errorf("%w: no lines", ErrEmpty)
	}

	start := 0
	for i := pos; i > 0; i-- {
		if g.Index(i-1) == '\n' {
			start = i
			break
		}
	}

	end := g.Len()
	for i := pos; i < g.Len(); i++ {
		if g.Index(i) == '\n' {
			end = i + 1 // Include the delimiter
			break
		}
	}

	return g.slice(start, end), nil
}

// slice copies logical range [start, end) out of the buffer.
func (g *GapBuffer) slice(start, end int) string {
	p := make([]byte, 0, end-start)
	if start < g.gapStart {
		p = append(p, g.buf[start:min(end, g.gapStart)]...)
	}
	if end > g.gapStart {
		p = append(p, g.buf[g.physical(max(start, g.gapStart)):g.physical(end-1)+1]...)
	}
	return string(p)
}

// Slice returns a copy of the content in logical range [start, end).
func (g *GapBuffer) Slice(start, end int) (string, error) {
	if start < 0 || end > g.Len() || start > end {
		return "", fmt.Errorf("%w: slice [%d, %d) with length %d", ErrOutOfRange, start, end, g.Len())
	}
	if start == end {
		return "", nil
	}
	return g.slice(start, end), nil
}

// LineCount returns the number of lines. An empty buffer has none;
// otherwise every '\n' ends a line and trailing content without one counts
// as a final line.
func (g *GapBuffer) LineCount() int {
	if g.Empty() {
		return 0
	}
	n := bytes.Count(g.buf[:g.gapStart], []byte{'\n'}) + bytes.Count(g.buf[g.gapEnd:], []byte{'\n'})
	if last, _ := g.Back(); last != '\n' {
		n++
	}
	return n
}
