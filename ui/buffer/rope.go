package buffer

import (
	"io"

	"github.com/zyedidia/rope"
)

// RopeBuffer is a Buffer backed by a rope. It does not favor any edit
// position, which makes it a useful reference for the gap backend.
type RopeBuffer rope.Node

func NewRopeBuffer(contents []byte) *RopeBuffer {
	return (*RopeBuffer)(rope.New(contents))
}

func (b *RopeBuffer) node() *rope.Node {
	return (*rope.Node)(b)
}

// lineStart returns the first byte index of the given line (starting from zero).
// The returned index can be equal to the length of the buffer, not pointing to any byte,
// which means the byte is on the last, and empty, line of the buffer. If line is greater
// than or equal to the number of lines in the buffer, a panic is issued.
func (b *RopeBuffer) lineStart(line int) int {
	_rope := b.node()
	var pos int

	if line > 0 {
		_rope.IndexAllFunc(0, _rope.Len(), []byte{'\n'}, func(idx int) bool {
			line--
			pos = idx + 1 // idx+1 = start of line after delimiter
			return line <= 0 // Stop indexing once pos is the start of the line we want
		})
	}

	if line > 0 || line < 0 { // If there aren't enough lines to reach line...
		panic("lineStart: not enough lines in buffer to reach position")
	}

	return pos
}

func (b *RopeBuffer) bytesBetween(start, end int) []byte {
	if start >= end {
		return []byte{}
	}
	return b.node().Slice(start, end)
}

// Line returns a slice of the data at the given line, including the ending line-
// delimiter. line starts from zero. Data returned may or may not be a copy: do not
// write it.
func (b *RopeBuffer) Line(line int) []byte {
	return lineBytes(b, line)
}

func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	start, end := sliceRange(b, startLine, startCol, endLine, endCol)
	return b.bytesBetween(start, end)
}

// Bytes returns all of the bytes in the buffer. This function is very likely
// to copy all of the data in the buffer. Use sparingly. Try using other methods,
// where possible.
func (b *RopeBuffer) Bytes() []byte {
	return b.node().Value()
}

func (b *RopeBuffer) Insert(line, col int, value []byte) {
	b.node().Insert(b.LineColToPos(line, col), value)
}

func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start, end := sliceRange(b, startLine, startCol, endLine, endCol)
	if start < end {
		b.node().Remove(start, end)
	}
}

func (b *RopeBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	startPos := b.LineColToPos(startLine, startCol)
	endPos := b.LineColToPos(endLine, endCol)
	if endPos <= startPos {
		return 0
	}
	return b.node().Count(startPos, endPos, sequence)
}

func (b *RopeBuffer) Len() int {
	return b.node().Len()
}

func (b *RopeBuffer) Lines() int {
	_rope := b.node()
	return _rope.Count(0, _rope.Len(), []byte{'\n'}) + 1
}

func (b *RopeBuffer) RunesInLineWithDelim(line int) int {
	return runesInLine(b.Line(line), true)
}

func (b *RopeBuffer) RunesInLine(line int) int {
	return runesInLine(b.Line(line), false)
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	return clampLineCol(b, line, col)
}

func (b *RopeBuffer) LineColToPos(line, col int) int {
	return lineColToPos(b, line, col)
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	return posToLineCol(b, pos)
}

func (b *RopeBuffer) RuneAtPos(pos int) rune {
	return runeAtPos(b, pos)
}

func (b *RopeBuffer) EachRuneAtPos(pos int, f func(rpos int, r rune) bool) {
	eachRuneAtPos(b, pos, f)
}

func (b *RopeBuffer) EachRuneBeforePos(pos int, f func(rpos int, r rune) bool) {
	eachRuneBeforePos(b, pos, f)
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.node().WriteTo(w)
}
