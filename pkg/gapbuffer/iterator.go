package gapbuffer

import "iter"

// position is the logic shared by every iterator kind: a logical index into
// a buffer plus the generation of the buffer it was derived from. The
// buffer reference is only used to resolve and check positions; an iterator
// never owns the buffer.
type position struct {
	gb  *GapBuffer
	idx int
	gen uint64
}

func (p position) check() {
	if p.gb == nil || p.gen != p.gb.gen {
		panic(ErrInvalidIterator)
	}
}

func (p position) get() byte {
	p.check()
	return p.gb.Index(p.idx)
}

func (p position) moved(n int) position {
	p.idx += n
	return p
}

// Valid reports whether the iterator still refers to the state of the
// buffer it was taken from. Reallocation, cursor motion and any insertion
// or removal invalidate iterators.
func (p position) Valid() bool {
	return p.gb != nil && p.gen == p.gb.gen
}

// Pos returns the logical index the iterator refers to.
func (p position) Pos() int {
	return p.idx
}

func (g *GapBuffer) at(idx int) position {
	return position{gb: g, idx: idx, gen: g.gen}
}

// Iterator is a random-access iterator over the content of a GapBuffer.
// It walks logical positions, so stepping past the last byte before the gap
// lands on the first byte after it.
//
// Iterators are values; Next, Prev, Add and Sub return new iterators.
type Iterator struct{ position }

// Begin returns an iterator at the first byte.
func (g *GapBuffer) Begin() Iterator { return Iterator{g.at(0)} }

// End returns an iterator one past the last byte.
func (g *GapBuffer) End() Iterator { return Iterator{g.at(g.Len())} }

// Get returns the byte under the iterator.
func (it Iterator) Get() byte { return it.get() }

// Set overwrites the byte under the iterator. This does not invalidate
// other iterators.
func (it Iterator) Set(b byte) {
	it.check()
	it.gb.SetIndex(it.idx, b)
}

// At returns the byte n positions away from the iterator.
func (it Iterator) At(n int) byte { return it.moved(n).get() }

func (it Iterator) Next() Iterator          { return Iterator{it.moved(1)} }
func (it Iterator) Prev() Iterator          { return Iterator{it.moved(-1)} }
func (it Iterator) Add(n int) Iterator      { return Iterator{it.moved(n)} }
func (it Iterator) Sub(n int) Iterator      { return Iterator{it.moved(-n)} }
func (it Iterator) Diff(other Iterator) int { return it.idx - other.idx }
func (it Iterator) Equal(other Iterator) bool {
	return it.gb == other.gb && it.idx == other.idx
}
func (it Iterator) Less(other Iterator) bool { return it.idx < other.idx }

// Const returns a read-only iterator at the same position.
func (it Iterator) Const() ConstIterator { return ConstIterator{it.position} }

// ConstIterator is an Iterator that cannot write.
type ConstIterator struct{ position }

// CBegin returns a read-only iterator at the first byte.
func (g *GapBuffer) CBegin() ConstIterator { return ConstIterator{g.at(0)} }

// CEnd returns a read-only iterator one past the last byte.
func (g *GapBuffer) CEnd() ConstIterator { return ConstIterator{g.at(g.Len())} }

func (it ConstIterator) Get() byte                    { return it.get() }
func (it ConstIterator) At(n int) byte                { return it.moved(n).get() }
func (it ConstIterator) Next() ConstIterator          { return ConstIterator{it.moved(1)} }
func (it ConstIterator) Prev() ConstIterator          { return ConstIterator{it.moved(-1)} }
func (it ConstIterator) Add(n int) ConstIterator      { return ConstIterator{it.moved(n)} }
func (it ConstIterator) Sub(n int) ConstIterator      { return ConstIterator{it.moved(-n)} }
func (it ConstIterator) Diff(other ConstIterator) int { return it.idx - other.idx }
func (it ConstIterator) Equal(other ConstIterator) bool {
	return it.gb == other.gb && it.idx == other.idx
}
func (it ConstIterator) Less(other ConstIterator) bool { return it.idx < other.idx }

// ReverseIterator walks the content from the last byte to the first. Like
// the standard library's reverse iterators in other languages, it wraps a
// forward iterator and dereferences the byte just before it, so RBegin wraps
// End and REnd wraps Begin wherever the gap happens to be.
type ReverseIterator struct{ base Iterator }

// RBegin returns a reverse iterator at the last byte.
func (g *GapBuffer) RBegin() ReverseIterator { return ReverseIterator{g.End()} }

// REnd returns a reverse iterator one before the first byte.
func (g *GapBuffer) REnd() ReverseIterator { return ReverseIterator{g.Begin()} }

// Base returns the forward iterator one position after the reversed one.
func (it ReverseIterator) Base() Iterator { return it.base }

func (it ReverseIterator) Get() byte                      { return it.base.Prev().Get() }
func (it ReverseIterator) Set(b byte)                     { it.base.Prev().Set(b) }
func (it ReverseIterator) At(n int) byte                  { return it.base.Sub(n + 1).Get() }
func (it ReverseIterator) Next() ReverseIterator          { return ReverseIterator{it.base.Prev()} }
func (it ReverseIterator) Prev() ReverseIterator          { return ReverseIterator{it.base.Next()} }
func (it ReverseIterator) Add(n int) ReverseIterator      { return ReverseIterator{it.base.Sub(n)} }
func (it ReverseIterator) Sub(n int) ReverseIterator      { return ReverseIterator{it.base.Add(n)} }
func (it ReverseIterator) Diff(other ReverseIterator) int { return other.base.idx - it.base.idx }
func (it ReverseIterator) Equal(other ReverseIterator) bool {
	return it.base.Equal(other.base)
}
func (it ReverseIterator) Less(other ReverseIterator) bool { return other.base.Less(it.base) }
func (it ReverseIterator) Valid() bool                     { return it.base.Valid() }

// ConstReverseIterator is a ReverseIterator that cannot write.
type ConstReverseIterator struct{ base ConstIterator }

// CRBegin returns a read-only reverse iterator at the last byte.
func (g *GapBuffer) CRBegin() ConstReverseIterator { return ConstReverseIterator{g.CEnd()} }

// CREnd returns a read-only reverse iterator one before the first byte.
func (g *GapBuffer) CREnd() ConstReverseIterator { return ConstReverseIterator{g.CBegin()} }

func (it ConstReverseIterator) Base() ConstIterator { return it.base }
func (it ConstReverseIterator) Get() byte           { return it.base.Prev().Get() }
func (it ConstReverseIterator) At(n int) byte       { return it.base.Sub(n + 1).Get() }
func (it ConstReverseIterator) Next() ConstReverseIterator {
	return ConstReverseIterator{it.base.Prev()}
}
func (it ConstReverseIterator) Prev() ConstReverseIterator {
	return ConstReverseIterator{it.base.Next()}
}
func (it ConstReverseIterator) Add(n int) ConstReverseIterator {
	return ConstReverseIterator{it.base.Sub(n)}
}
func (it ConstReverseIterator) Sub(n int) ConstReverseIterator {
	return ConstReverseIterator{it.base.Add(n)}
}
func (it ConstReverseIterator) Diff(other ConstReverseIterator) int {
	return other.base.idx - it.base.idx
}
func (it ConstReverseIterator) Equal(other ConstReverseIterator) bool {
	return it.base.Equal(other.base)
}
func (it ConstReverseIterator) Less(other ConstReverseIterator) bool {
	return other.base.Less(it.base)
}
func (it ConstReverseIterator) Valid() bool { return it.base.Valid() }

// All returns an iterator over logical indexes and bytes, front to back.
// The buffer must not be modified during iteration.
func (g *GapBuffer) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, b := range g.buf[:g.gapStart] {
			if !yield(i, b) {
				return
			}
		}
		for i, b := range g.buf[g.gapEnd:] {
			if !yield(g.gapStart+i, b) {
				return
			}
		}
	}
}

// Backward is All in reverse order.
func (g *GapBuffer) Backward() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i := len(g.buf) - 1; i >= g.gapEnd; i-- {
			if !yield(g.gapStart+i-g.gapEnd, g.buf[i]) {
				return
			}
		}
		for i := g.gapStart - 1; i >= 0; i-- {
			if !yield(i, g.buf[i]) {
				return
			}
		}
	}
}
