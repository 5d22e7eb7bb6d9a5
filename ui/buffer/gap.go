package buffer

import (
	"bytes"
	"io"

	"github.com/fivemoreminix/gapedit/pkg/gapbuffer"
)

// GapBuffer is a Buffer backed by a gapbuffer.GapBuffer. Edits move the gap
// to the edited position first, so a run of edits at the same place (typing,
// backspacing) only moves text once.
type GapBuffer struct {
	gb *gapbuffer.GapBuffer
}

// NewGapBuffer copies contents into a new GapBuffer. The gap starts at the
// end of the contents.
func NewGapBuffer(contents []byte) *GapBuffer {
	return &GapBuffer{gb: gapbuffer.FromBytes(contents)}
}

// Gap exposes the underlying gap buffer, mostly for inspecting its layout.
func (b *GapBuffer) Gap() *gapbuffer.GapBuffer {
	return b.gb
}

func (b *GapBuffer) Len() int {
	return b.gb.Len()
}

// lineStart finds the line-th newline and returns the offset after it.
// Line zero always starts at zero, which is also what Find returns for a
// count of zero.
func (b *GapBuffer) lineStart(line int) int {
	if line < 0 {
		panic("lineStart: negative line")
	}
	idx := b.gb.Find('\n', line)
	if idx == gapbuffer.NotFound {
		panic("lineStart: not enough lines in buffer to reach position")
	}
	if line == 0 {
		return 0
	}
	return idx + 1
}

func (b *GapBuffer) bytesBetween(start, end int) []byte {
	s, err := b.gb.Slice(start, end)
	if err != nil {
		panic(err)
	}
	return []byte(s)
}

// Line returns a copy of the given line, including its delimiter.
func (b *GapBuffer) Line(line int) []byte {
	start := b.lineStart(line)
	if start == b.gb.Len() {
		return []byte{}
	}
	s, err := b.gb.Line(start)
	if err != nil {
		panic(err)
	}
	return []byte(s)
}

func (b *GapBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	start, end := sliceRange(b, startLine, startCol, endLine, endCol)
	return b.bytesBetween(start, end)
}

func (b *GapBuffer) Bytes() []byte {
	return b.gb.Bytes()
}

// Insert moves the gap to line, col and writes value into it.
func (b *GapBuffer) Insert(line, col int, value []byte) {
	b.gb.MoveTo(b.LineColToPos(line, col))
	b.gb.InsertBytes(value)
}

// Remove moves the gap to the end of the range and erases backwards to its
// start.
func (b *GapBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start, end := sliceRange(b, startLine, startCol, endLine, endCol)
	b.gb.MoveTo(end)
	if _, err := b.gb.Erase(end - start); err != nil {
		panic(err)
	}
}

func (b *GapBuffer) Count(startLine, startCol, endLine, endCol int, sequence []byte) int {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)
	if end <= start {
		return 0
	}
	return bytes.Count(b.bytesBetween(start, end), sequence)
}

// Lines is LineCount plus the empty line that follows a trailing newline.
func (b *GapBuffer) Lines() int {
	if b.gb.Empty() {
		return 1
	}
	lines := b.gb.LineCount()
	if last, _ := b.gb.Back(); last == '\n' {
		lines++
	}
	return lines
}

func (b *GapBuffer) RunesInLineWithDelim(line int) int {
	return runesInLine(b.Line(line), true)
}

func (b *GapBuffer) RunesInLine(line int) int {
	return runesInLine(b.Line(line), false)
}

func (b *GapBuffer) ClampLineCol(line, col int) (int, int) {
	return clampLineCol(b, line, col)
}

func (b *GapBuffer) LineColToPos(line, col int) int {
	return lineColToPos(b, line, col)
}

func (b *GapBuffer) PosToLineCol(pos int) (int, int) {
	return posToLineCol(b, pos)
}

func (b *GapBuffer) RuneAtPos(pos int) rune {
	return runeAtPos(b, pos)
}

func (b *GapBuffer) EachRuneAtPos(pos int, f func(rpos int, r rune) bool) {
	eachRuneAtPos(b, pos, f)
}

func (b *GapBuffer) EachRuneBeforePos(pos int, f func(rpos int, r rune) bool) {
	eachRuneBeforePos(b, pos, f)
}

func (b *GapBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.gb.WriteTo(w)
}
