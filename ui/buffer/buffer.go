package buffer

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// A Buffer is wrapper around any buffer data structure like ropes or a gap buffer
// that can be used for text editors. One way this interface helps is by making
// all API function parameters line and column indexes, so it is simple and easy
// to index and use like a text editor. All lines and columns start at zero, and
// all "end" ranges are inclusive.
//
// Any bounds out of range are panics! If you are unsure your position or range
// may be out of bounds, use ClampLineCol() or compare with Lines() or ColsInLine().
type Buffer interface {
	// Line returns a slice of the data at the given line, including the ending line-
	// delimiter. line starts from zero. Data returned may or may not be a copy: do not
	// write to it.
	Line(line int) []byte

	// Returns a slice of the buffer from startLine, startCol, to endLine, endCol,
	// inclusive bounds. The returned value may or may not be a copy of the data,
	// so do not write to it.
	Slice(startLine, startCol, endLine, endCol int) []byte

	// Bytes returns all of the bytes in the buffer. This function is very likely
	// to copy all of the data in the buffer. Use sparingly. Try using other methods,
	// where possible.
	Bytes() []byte

	// Insert copies a byte slice (inserting it) into the position at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes any characters between startLine, startCol, and endLine,
	// endCol, inclusive bounds.
	Remove(startLine, startCol, endLine, endCol int)

	// Returns the number of occurrences of 'sequence' in the buffer, within the range
	// of start line and col, to end line and col. [start, end) (exclusive end).
	Count(startLine, startCol, endLine, endCol int, sequence []byte) int

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. If the buffer is empty,
	// 1 is returned, because there is always at least one line. This function
	// basically counts the number of newline ('\n') characters in a buffer.
	Lines() int

	// RunesInLine returns the number of runes in the given line. That is, the
	// number of Utf-8 codepoints in the line, not bytes. Includes the line delimiter
	// in the count. If that line delimiter is CRLF ('\r\n'), then it adds two.
	RunesInLineWithDelim(line int) int

	// RunesInLine returns the number of runes in the given line. That is, the
	// number of Utf-8 codepoints in the line, not bytes. Excludes line delimiters.
	RunesInLine(line int) int

	// ClampLineCol is a utility function to clamp any provided line and col to
	// only possible values within the buffer, pointing to runes. It first clamps
	// the line, then clamps the column. The column is clamped between zero and
	// the last rune before the line delimiter.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the index of the byte at line, col. If line is less than
	// zero, or more than the number of available lines, the function will panic. If
	// col is less than zero, the function will panic. If col is greater than the
	// length of the line, the position of the last byte of the line is returned,
	// instead.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset (position) of the buffer's bytes, into
	// a line and column. Unless you are working with the Bytes() function, this
	// is unlikely to be useful to you. Position will be clamped.
	PosToLineCol(pos int) (int, int)

	// RuneAtPos returns the rune starting at byte offset pos, or utf8.RuneError
	// if pos is outside the buffer.
	RuneAtPos(pos int) rune

	// EachRuneAtPos calls f with every rune from byte offset pos to the end of the
	// buffer, along with the rune's offset, until f returns true.
	EachRuneAtPos(pos int, f func(rpos int, r rune) bool)

	// EachRuneBeforePos is EachRuneAtPos in reverse: it starts with the rune that
	// ends right before byte offset pos and walks toward the start of the buffer.
	EachRuneBeforePos(pos int, f func(rpos int, r rune) bool)

	WriteTo(w io.Writer) (int64, error)
}

// Backend names accepted by New.
const (
	BackendGap  = "gap"
	BackendRope = "rope"
)

// New returns a Buffer holding contents, using the named backend.
func New(backend string, contents []byte) (Buffer, error) {
	switch backend {
	case BackendGap, "":
		return NewGapBuffer(contents), nil
	case BackendRope:
		return NewRopeBuffer(contents), nil
	}
	return nil, fmt.Errorf("unknown buffer backend %q", backend)
}

// storage is what a backend has to provide for the line/column logic in this
// file to work on top of it. Offsets are in bytes.
type storage interface {
	Len() int
	// lineStart returns the offset of the first byte of line, and panics if
	// the buffer does not have that many lines.
	lineStart(line int) int
	// bytesBetween returns the bytes in [start, end). It may not be a copy.
	bytesBetween(start, end int) []byte
}

// lineBytes returns the line including its delimiter.
func lineBytes(s storage, line int) []byte {
	start := s.lineStart(line)
	rest := s.bytesBetween(start, s.Len())
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i+1]
	}
	return rest
}

// runesInLine counts the runes of a line returned by lineBytes, optionally
// excluding the LF or CRLF delimiter.
func runesInLine(line []byte, withDelim bool) int {
	n := utf8.RuneCount(line)
	if withDelim {
		return n
	}
	if bytes.HasSuffix(line, []byte("\r\n")) {
		return n - 2
	} else if bytes.HasSuffix(line, []byte{'\n'}) {
		return n - 1
	}
	return n
}

func clampLineCol(b Buffer, line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func lineColToPos(s storage, line, col int) int {
	if col < 0 {
		panic("LineColToPos: negative column")
	}

	pos := s.lineStart(line)
	data := lineBytes(s, line)

	// Walk col runes forward without crossing the line delimiter.
	var i int
	for col > 0 && i < len(data) && data[i] != '\n' {
		_, size := utf8.DecodeRune(data[i:])
		i += size
		col--
	}
	return pos + i
}

func posToLineCol(s storage, pos int) (int, int) {
	if pos <= 0 {
		return 0, 0
	}
	pos = min(pos, s.Len())

	before := s.bytesBetween(0, pos)
	line := bytes.Count(before, []byte{'\n'})
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCount(before[lineStart:])
}

// sliceRange converts an inclusive line/col range to byte offsets [start, end).
func sliceRange(s storage, startLine, startCol, endLine, endCol int) (int, int) {
	start := lineColToPos(s, startLine, startCol)
	end := lineColToPos(s, endLine, endCol)
	if end < s.Len() {
		_, size := utf8.DecodeRune(s.bytesBetween(end, min(end+utf8.UTFMax, s.Len())))
		end += size // Make the end inclusive of the whole rune
	}
	if start > end {
		start = end
	}
	return start, end
}

func runeAtPos(s storage, pos int) rune {
	if pos < 0 || pos >= s.Len() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(s.bytesBetween(pos, min(pos+utf8.UTFMax, s.Len())))
	return r
}

func eachRuneAtPos(s storage, pos int, f func(rpos int, r rune) bool) {
	if pos < 0 {
		pos = 0
	}
	if pos >= s.Len() {
		return
	}
	data := s.bytesBetween(pos, s.Len())
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if f(pos+i, r) {
			return
		}
		i += size
	}
}

func eachRuneBeforePos(s storage, pos int, f func(rpos int, r rune) bool) {
	pos = min(pos, s.Len())
	if pos <= 0 {
		return
	}
	data := s.bytesBetween(0, pos)
	for i := len(data); i > 0; {
		r, size := utf8.DecodeLastRune(data[:i])
		i -= size
		if f(i, r) {
			return
		}
	}
}
