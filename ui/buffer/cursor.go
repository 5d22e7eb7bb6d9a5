package buffer

import (
	"math"
	"unicode"
)

// So why is the code for moving the cursor in the buffer package, and not in the
// TextEdit component? Well, it used to be, but it sucked that way. The cursor
// needs to have a reference to the buffer to know where lines end and how it can
// move. The buffer is the city, and the Cursor is the car.

type position struct {
	line int
	col  int
}

// A Region represents a part of the buffer selected for text editing purposes.
// The Anchor is where the selection began and the Head is where it currently
// ends; either may come first in the buffer. The start is inclusive and the
// end is exclusive, so an empty Region has Anchor == Head. As a Region spans
// multiple lines, the connecting line delimiters are part of the selection.
type Region struct {
	Anchor Cursor
	Head   Cursor
}

func NewRegion(in Buffer) Region {
	return Region{
		NewCursor(in),
		NewCursor(in),
	}
}

// Start returns the line and col of whichever end of the region comes first.
func (r Region) Start() (line, col int) {
	if r.Head.Before(r.Anchor) {
		return r.Head.GetLineCol()
	}
	return r.Anchor.GetLineCol()
}

// End returns the line and col of whichever end of the region comes last.
func (r Region) End() (line, col int) {
	if r.Head.Before(r.Anchor) {
		return r.Anchor.GetLineCol()
	}
	return r.Head.GetLineCol()
}

// Contains reports whether line, col lies inside the region.
func (r Region) Contains(line, col int) bool {
	startLine, startCol := r.Start()
	endLine, endCol := r.End()
	p := position{line, col}
	return !p.before(position{startLine, startCol}) && p.before(position{endLine, endCol})
}

// Empty reports whether the region selects nothing.
func (r Region) Empty() bool {
	return r.Anchor.position == r.Head.position
}

func (p position) before(other position) bool {
	return p.line < other.line || (p.line == other.line && p.col < other.col)
}

// A Cursor's functions emulate common cursor actions. Cursors are values: every
// motion returns the moved Cursor and leaves the receiver untouched.
type Cursor struct {
	buffer  Buffer
	prevCol int // Column to return to when moving vertically through short lines
	position
}

func NewCursor(in Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = c.buffer.RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= c.buffer.RunesInLine(c.line) && c.line < c.buffer.Lines()-1 {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line, c.col+1)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
		c.prevCol = 0
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line-1, max(c.col, c.prevCol))
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == c.buffer.Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = c.buffer.ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
		c.prevCol = c.col
	} else {
		c.line, c.col = c.buffer.ClampLineCol(c.line+1, max(c.col, c.prevCol))
	}
	return c
}

// NextWordStart proceeds to the first character of the next word to the right
// of the Cursor. A word is any sequence of same-classed characters (letters and
// digits, or symbols). Whitespace is skipped. With no word ahead, the Cursor
// goes to the end of the buffer.
func (c Cursor) NextWordStart() Cursor {
	pos := c.buffer.LineColToPos(c.line, c.col)
	prevClass := getRuneCharclass(c.buffer.RuneAtPos(pos))

	end := c.buffer.Len()
	c.buffer.EachRuneAtPos(pos, func(rpos int, r rune) bool {
		class := getRuneCharclass(r)
		if class != prevClass && class != charwhitespace {
			end = rpos
			return true
		}
		prevClass = class
		return false
	})

	c.line, c.col = c.buffer.PosToLineCol(end)
	c.prevCol = c.col
	return c
}

// PrevWordStart goes back to the first character of the word before the
// Cursor, skipping any whitespace in between.
func (c Cursor) PrevWordStart() Cursor {
	pos := c.buffer.LineColToPos(c.line, c.col)

	start := 0
	class := charwhitespace
	c.buffer.EachRuneBeforePos(pos, func(rpos int, r rune) bool {
		rc := getRuneCharclass(r)
		if class == charwhitespace { // Still skipping whitespace
			class = rc
			start = rpos
			return false
		}
		if rc != class {
			return true
		}
		start = rpos
		return false
	})

	c.line, c.col = c.buffer.PosToLineCol(start)
	c.prevCol = c.col
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// Pos returns the byte offset of the Cursor in its buffer.
func (c Cursor) Pos() int {
	return c.buffer.LineColToPos(c.line, c.col)
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = c.buffer.ClampLineCol(line, col)
	c.prevCol = c.col
	return c
}

// Before reports whether c comes before other in the buffer.
func (c Cursor) Before(other Cursor) bool {
	return c.position.before(other.position)
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

type charclass uint8

const (
	charwhitespace charclass = iota
	charword
	charsymbol
)

func getRuneCharclass(r rune) charclass {
	if unicode.IsSpace(r) {
		return charwhitespace
	} else if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return charword
	} else {
		return charsymbol
	}
}
