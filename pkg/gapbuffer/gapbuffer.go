// Package gapbuffer implements a gap buffer: a byte sequence stored in one
// contiguous allocation with a movable hole (the gap) at the edit cursor.
// Insertions and deletions at the cursor are O(1) amortized, and moving the
// cursor costs one copy per byte travelled.
//
// The logical content of a GapBuffer is always the bytes before the gap
// followed by the bytes after it. Nothing inside the gap is ever visible.
//
// A GapBuffer is not safe for concurrent use.
package gapbuffer

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

const (
	// DefaultCapacity is the capacity of a buffer made with New.
	DefaultCapacity = 32

	// SeedGap is the size of the gap left after the content of a buffer
	// constructed from existing bytes.
	SeedGap = 8

	// NotFound is returned by Find when there are not enough occurrences.
	NotFound = -1
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange indicates an index or count beyond the available content.
	ErrOutOfRange = errors.New("index out of range")

	// ErrEmpty indicates an operation that needs content was used on an empty buffer.
	ErrEmpty = errors.New("buffer is empty")

	// ErrInvalidIterator is the panic value when an iterator is used after
	// the buffer was reallocated or its gap moved.
	ErrInvalidIterator = errors.New("use of invalidated iterator")
)

// GapBuffer is a gap buffer of bytes. The zero value is an empty buffer
// with no allocation, ready to use; it allocates on first insertion.
//
// Physically the buffer is buf[0:gapStart] ++ gap ++ buf[gapEnd:len(buf)].
type GapBuffer struct {
	buf      []byte
	gapStart int // One past the last byte of the left segment
	gapEnd   int // First byte of the right segment

	gen uint64 // Bumped whenever iterators must be re-derived
}

// New returns an empty buffer with DefaultCapacity slots.
func New() *GapBuffer {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity returns an empty buffer whose gap spans all n slots.
func NewWithCapacity(n int) *GapBuffer {
	if n < 0 {
		n = 0
	}
	return &GapBuffer{
		buf:      make([]byte, n),
		gapStart: 0,
		gapEnd:   n,
	}
}

// FromBytes returns a buffer holding a copy of p, with the cursor placed
// right after it and a gap of SeedGap slots.
func FromBytes(p []byte) *GapBuffer {
	g := &GapBuffer{buf: make([]byte, len(p)+SeedGap)}
	g.gapStart = copy(g.buf, p)
	g.gapEnd = g.gapStart + SeedGap
	return g
}

// FromString is FromBytes for a string.
func FromString(s string) *GapBuffer {
	g := &GapBuffer{buf: make([]byte, len(s)+SeedGap)}
	g.gapStart = copy(g.buf, s)
	g.gapEnd = g.gapStart + SeedGap
	return g
}

// Of returns a buffer holding the listed bytes, laid out like FromBytes.
func Of(b ...byte) *GapBuffer {
	return FromBytes(b)
}

// FromSeq drains seq into a new buffer, laid out like FromBytes.
func FromSeq(seq iter.Seq[byte]) *GapBuffer {
	var p []byte
	for b := range seq {
		p = append(p, b)
	}
	return FromBytes(p)
}

// FromReader reads r until EOF into a new buffer, laid out like FromBytes.
func FromReader(r io.Reader) (*GapBuffer, error) {
	p, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading buffer contents: %w", err)
	}
	return FromBytes(p), nil
}

// Clone returns a deep copy of g. The copy has the same capacity and the gap
// in the same place, so the two are physically identical and independent.
func (g *GapBuffer) Clone() *GapBuffer {
	c := &GapBuffer{}
	c.CopyFrom(g)
	return c
}

// CopyFrom replaces the contents of g with a deep copy of src.
func (g *GapBuffer) CopyFrom(src *GapBuffer) {
	if g == src {
		return
	}
	g.buf = make([]byte, len(src.buf))
	copy(g.buf, src.buf)
	g.gapStart, g.gapEnd = src.gapStart, src.gapEnd
	g.gen++
}

// Take moves the allocation of g into a new buffer and returns it. g is left
// empty, with no allocation of its own.
func (g *GapBuffer) Take() *GapBuffer {
	m := &GapBuffer{}
	m.MoveFrom(g)
	return m
}

// MoveFrom transfers the allocation of src to g, dropping whatever g held
// before. src is left empty, with no allocation. The backing array is never
// shared between the two afterwards.
func (g *GapBuffer) MoveFrom(src *GapBuffer) {
	if g == src {
		return
	}
	g.buf, g.gapStart, g.gapEnd = src.buf, src.gapStart, src.gapEnd
	g.gen++
	src.Release()
}

// Release drops the allocation. The buffer stays usable as an empty buffer
// of zero capacity.
func (g *GapBuffer) Release() {
	g.buf = nil
	g.gapStart, g.gapEnd = 0, 0
	g.gen++
}

// Len returns the number of bytes of content, excluding the gap.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// Cap returns the number of slots in the allocation, gap included.
func (g *GapBuffer) Cap() int {
	return len(g.buf)
}

// GapLen returns the number of free slots at the cursor.
func (g *GapBuffer) GapLen() int {
	return g.gapEnd - g.gapStart
}

// Empty reports whether the buffer has no content.
func (g *GapBuffer) Empty() bool {
	return g.Len() == 0
}

// Cursor returns the logical index of the gap, which is also the length of
// the content before it.
func (g *GapBuffer) Cursor() int {
	return g.gapStart
}

// Reserve grows the allocation to n slots if it is smaller. The content
// before the gap moves to the front of the new allocation and the content
// after the gap moves to its back, so only the gap gets wider.
func (g *GapBuffer) Reserve(n int) {
	if n <= len(g.buf) {
		return
	}

	newBuf := make([]byte, n)
	copy(newBuf, g.buf[:g.gapStart])

	rightLen := len(g.buf) - g.gapEnd
	copy(newBuf[n-rightLen:], g.buf[g.gapEnd:])

	g.buf = newBuf
	g.gapEnd = n - rightLen
	g.gen++
}

// Grow makes sure the gap has room for at least n more bytes, doubling
// the capacity as many times as needed.
func (g *GapBuffer) Grow(n int) {
	for g.GapLen() < n {
		g.grow()
	}
}

// grow doubles the capacity. A buffer with no allocation jumps straight to
// SeedGap slots, since doubling zero would never make room.
func (g *GapBuffer) grow() {
	newCap := len(g.buf) * 2
	if newCap == 0 {
		newCap = SeedGap
	}
	g.Reserve(newCap)
}

// Advance moves the gap one byte to the right: the byte just after the
// cursor ends up just before it. Content is unchanged. It returns false,
// doing nothing, when the cursor is already at the end.
func (g *GapBuffer) Advance() bool {
	if g.gapEnd == len(g.buf) {
		return false
	}
	g.buf[g.gapStart] = g.buf[g.gapEnd]
	g.buf[g.gapEnd] = 0
	g.gapStart++
	g.gapEnd++
	g.gen++
	return true
}

// Retreat moves the gap one byte to the left: the byte just before the
// cursor ends up just after it. Content is unchanged. It returns false,
// doing nothing, when the cursor is already at the start.
func (g *GapBuffer) Retreat() bool {
	if g.gapStart == 0 {
		return false
	}
	g.gapStart--
	g.gapEnd--
	g.buf[g.gapEnd] = g.buf[g.gapStart]
	g.buf[g.gapStart] = 0
	g.gen++
	return true
}

// MoveTo places the cursor at logical index pos, clamped to [0, Len()].
// The result is the same as stepping with Advance or Retreat, but the bytes
// in between are moved with a single copy.
func (g *GapBuffer) MoveTo(pos int) {
	pos = max(0, min(pos, g.Len()))
	if pos == g.gapStart {
		return
	}

	if pos < g.gapStart { // Shift the tail of the left segment over the gap
		n := g.gapStart - pos
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[pos:g.gapStart])
		clear(g.buf[pos:min(g.gapStart, g.gapEnd-n)])
		g.gapStart -= n
		g.gapEnd -= n
	} else { // Shift the head of the right segment over the gap
		n := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+n], g.buf[g.gapEnd:g.gapEnd+n])
		clear(g.buf[max(g.gapEnd, g.gapStart+n) : g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
	g.gen++
}

// PushBack inserts b at the cursor and moves the cursor past it. When this
// fills the gap, the capacity is doubled.
func (g *GapBuffer) PushBack(b byte) {
	if g.gapStart == g.gapEnd {
		g.grow()
	}
	g.buf[g.gapStart] = b
	g.gapStart++
	if g.gapStart == g.gapEnd {
		g.grow()
	}
	g.gen++
}

// PopBack removes and returns the byte just before the cursor.
func (g *GapBuffer) PopBack() (byte, error) {
	if g.gapStart == 0 {
		return 0, ErrEmpty
	}
	g.gapStart--
	b := g.buf[g.gapStart]
	g.buf[g.gapStart] = 0
	g.gen++
	return b, nil
}

// Insert inserts text at the cursor, leaving the cursor after it.
func (g *GapBuffer) Insert(text string) {
	for i := 0; i < len(text); i++ {
		g.PushBack(text[i])
	}
}

// InsertBytes is Insert for a byte slice.
func (g *GapBuffer) InsertBytes(p []byte) {
	for _, b := range p {
		g.PushBack(b)
	}
}

// Write implements io.Writer by inserting p at the cursor. It never fails.
func (g *GapBuffer) Write(p []byte) (int, error) {
	g.InsertBytes(p)
	return len(p), nil
}

// Erase removes count bytes before the cursor, as if by count calls to
// PopBack, and returns them in the order they were popped. That is the
// reverse of how they read: erasing 2 from "hello|" returns "ol".
//
// If count is larger than the content before the cursor, nothing is
// removed and ErrOutOfRange is returned.
func (g *GapBuffer) Erase(count int) (string, error) {
	if count < 0 || count > g.gapStart {
		return "", fmt.Errorf("%w: erase %d with %d before cursor", ErrOutOfRange, count, g.gapStart)
	}

	var sb strings.Builder
	sb.Grow(count)
	for i := 0; i < count; i++ {
		b, _ := g.PopBack()
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// Delete removes count bytes after the cursor and returns them in reading
// order. Like Erase, it removes nothing when count is too large.
func (g *GapBuffer) Delete(count int) (string, error) {
	if count < 0 || count > len(g.buf)-g.gapEnd {
		return "", fmt.Errorf("%w: delete %d with %d after cursor", ErrOutOfRange, count, len(g.buf)-g.gapEnd)
	}

	s := string(g.buf[g.gapEnd : g.gapEnd+count])
	clear(g.buf[g.gapEnd : g.gapEnd+count])
	g.gapEnd += count
	g.gen++
	return s, nil
}

// Clear removes all content. The capacity is unchanged and the gap spans
// the whole allocation.
func (g *GapBuffer) Clear() {
	clear(g.buf)
	g.gapStart = 0
	g.gapEnd = len(g.buf)
	g.gen++
}

// physical translates logical index i into an index of g.buf, skipping
// over the gap.
func (g *GapBuffer) physical(i int) int {
	if i < g.gapStart {
		return i
	}
	return g.gapEnd + (i - g.gapStart)
}

// At returns the byte at logical index i.
func (g *GapBuffer) At(i int) (byte, error) {
	if i < 0 || i >= g.Len() {
		return 0, fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, g.Len())
	}
	return g.buf[g.physical(i)], nil
}

// Set overwrites the byte at logical index i.
func (g *GapBuffer) Set(i int, b byte) error {
	if i < 0 || i >= g.Len() {
		return fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, i, g.Len())
	}
	g.buf[g.physical(i)] = b
	return nil
}

// Index returns the byte at logical index i without checking it against
// Len. The caller must ensure 0 <= i < Len(); an index outside that range
// panics with a runtime bounds error, it never reads a gap slot.
func (g *GapBuffer) Index(i int) byte {
	return g.buf[g.physical(i)]
}

// SetIndex is the unchecked counterpart of Set, with the same contract as Index.
func (g *GapBuffer) SetIndex(i int, b byte) {
	g.buf[g.physical(i)] = b
}

// Front returns the first byte of content.
func (g *GapBuffer) Front() (byte, error) {
	if g.Empty() {
		return 0, fmt.Errorf("%w: front", ErrEmpty)
	}
	if g.gapStart == 0 { // Cursor is at the start
		return g.buf[g.gapEnd], nil
	}
	return g.buf[0], nil
}

// Back returns the last byte of content.
func (g *GapBuffer) Back() (byte, error) {
	if g.Empty() {
		return 0, fmt.Errorf("%w: back", ErrEmpty)
	}
	if g.gapEnd == len(g.buf) { // Cursor is at the end
		return g.buf[g.gapStart-1], nil
	}
	return g.buf[len(g.buf)-1], nil
}

// Bytes returns a copy of the content.
func (g *GapBuffer) Bytes() []byte {
	p := make([]byte, 0, g.Len())
	p = append(p, g.buf[:g.gapStart]...)
	return append(p, g.buf[g.gapEnd:]...)
}

// String returns the content as a string.
func (g *GapBuffer) String() string {
	var sb strings.Builder
	sb.Grow(g.Len())
	sb.Write(g.buf[:g.gapStart])
	sb.Write(g.buf[g.gapEnd:])
	return sb.String()
}

// WriteTo implements io.WriterTo, writing the content without copying it first.
func (g *GapBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(g.buf[:g.gapStart])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(g.buf[g.gapEnd:])
	return int64(n + m), err
}

// GoString renders the physical layout for debugging: the content with one
// blank per gap slot, in brackets. Left "ab", a gap of 3 and right "cd"
// print as "[ab   cd]".
func (g *GapBuffer) GoString() string {
	var sb strings.Builder
	sb.Grow(len(g.buf) + 2)
	sb.WriteByte('[')
	sb.Write(g.buf[:g.gapStart])
	sb.WriteString(strings.Repeat(" ", g.GapLen()))
	sb.Write(g.buf[g.gapEnd:])
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether g and other hold the same content. Capacity and
// cursor position are not compared.
func (g *GapBuffer) Equal(other *GapBuffer) bool {
	if g.Len() != other.Len() {
		return false
	}
	return g.String() == other.String()
}
