package buffer

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

// backends lists every Buffer implementation; each test runs against all of them.
var backends = []struct {
	name string
	new  func(contents []byte) Buffer
}{
	{BackendGap, func(c []byte) Buffer { return NewGapBuffer(c) }},
	{BackendRope, func(c []byte) Buffer { return NewRopeBuffer(c) }},
}

func TestPosToLineCol(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("line0\nline1\n\nline3\n"))
		//line0
		//line1
		//
		//line3
		//

		startLine, startCol := buf.PosToLineCol(0)
		if startLine != 0 || startCol != 0 {
			t.Errorf("%s: Expected 0,0 got %v,%v", be.name, startLine, startCol)
		}

		endPos := buf.Len() - 1
		endLine, endCol := buf.PosToLineCol(endPos)
		if endLine != 3 || endCol != 5 {
			t.Errorf("%s: Expected end at 3,5 got %v,%v", be.name, endLine, endCol)
		}

		line1Pos := 11 // Byte index of the delim separating line1 and line 2
		line1Line, line1Col := buf.PosToLineCol(line1Pos)
		if line1Line != 1 || line1Col != 5 {
			t.Errorf("%s: Expected 1,5 got %v,%v", be.name, line1Line, line1Col)
		}

		if pos := buf.LineColToPos(line1Line, line1Col); pos != line1Pos {
			t.Errorf("%s: LineColToPos(1, 5) = %v, expected %v", be.name, pos, line1Pos)
		}
	}
}

func TestInserting(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("some"))
		buf.Insert(0, 4, []byte(" text\n")) // Insert " text" after "some"
		buf.Insert(0, 0, []byte("with\n\t"))
		//with
		//	some text
		//

		buf.Remove(0, 4, 1, 5) // Delete from line 0, col 4, to line 1, col 5 "\n\tsome "

		if str := string(buf.Bytes()); str != "withtext\n" {
			t.Errorf("%s: string does not match \"withtext\\n\", got %#v", be.name, str)
		}
	}
}

func TestBounds(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("this\nis (は)\n\tsome\ntext\n"))
		//this
		//is (は)
		//	some
		//text
		//

		if buf.Lines() != 5 {
			t.Errorf("%s: Expected buf.Lines() == 5, got %v", be.name, buf.Lines())
		}

		if n := buf.RunesInLine(1); n != 6 { // "is" in English and in japanese
			t.Errorf("%s: Expected 6 runes in line 2, found %v", be.name, n)
		}

		if n := buf.RunesInLineWithDelim(1); n != 7 {
			t.Errorf("%s: Expected 7 runes with delimiter in line 2, found %v", be.name, n)
		}

		if n := buf.RunesInLineWithDelim(4); n != 0 {
			t.Errorf("%s: Expected 0 runes in line 5, found %v", be.name, n)
		}

		line, col := buf.ClampLineCol(15, 5) // Should become last line, first column
		if line != 4 || col != 0 {
			t.Errorf("%s: Expected to clamp line col to 4,0 got %v,%v", be.name, line, col)
		}

		line, col = buf.ClampLineCol(4, -1)
		if line != 4 || col != 0 {
			t.Errorf("%s: Expected to clamp line col to 4,0 got %v,%v", be.name, line, col)
		}

		line, col = buf.ClampLineCol(2, 5) // Should be third line, pointing at the newline char
		if line != 2 || col != 5 {
			t.Errorf("%s: Expected to clamp line, col to 2,5 got %v,%v", be.name, line, col)
		}

		if line := string(buf.Line(2)); line != "\tsome\n" {
			t.Errorf("%s: Expected line 3 to equal \"\\tsome\\n\", got %#v", be.name, line)
		}

		if line := string(buf.Line(4)); line != "" {
			t.Errorf("%s: Got %#v", be.name, line)
		}
	}
}

func TestLinePanicsPastEnd(t *testing.T) {
	for _, be := range backends {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: Expected Line(2) on a one-line buffer to panic", be.name)
				}
			}()
			be.new([]byte("one line")).Line(2)
		}()
	}
}

func TestCount(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("\t\tlot of\n\ttabs"))

		tabsAtOf := buf.Count(0, 0, 0, 7, []byte{'\t'})
		if tabsAtOf != 2 {
			t.Errorf("%s: Expected 2 tabs before 'of', got %#v", be.name, tabsAtOf)
		}

		tabs := buf.Count(0, 0, 0, 0, []byte{'\t'})
		if tabs != 0 {
			t.Errorf("%s: Expected no tabs at column zero, got %v", be.name, tabs)
		}

		if all := buf.Count(0, 0, 1, 5, []byte{'\t'}); all != 3 {
			t.Errorf("%s: Expected 3 tabs in the buffer, got %v", be.name, all)
		}
	}
}

func TestSlice(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("abc\ndef\n"))

		wholeSlice := buf.Slice(0, 0, 2, 0) // Position points to after the newline char
		if string(wholeSlice) != "abc\ndef\n" {
			t.Errorf("%s: Whole slice was not equal, got \"%s\"", be.name, wholeSlice)
		}

		secondLine := buf.Slice(1, 0, 1, 3)
		if string(secondLine) != "def\n" {
			t.Errorf("%s: Second line and slice were not equal, got \"%s\"", be.name, secondLine)
		}
	}
}

func TestRunes(t *testing.T) {
	for _, be := range backends {
		var buf Buffer = be.new([]byte("aé b"))

		if r := buf.RuneAtPos(1); r != 'é' {
			t.Errorf("%s: RuneAtPos(1) = %q", be.name, r)
		}

		var got []rune
		var offsets []int
		buf.EachRuneAtPos(1, func(rpos int, r rune) bool {
			got = append(got, r)
			offsets = append(offsets, rpos)
			return r == ' '
		})
		if string(got) != "é " || offsets[1] != 3 {
			t.Errorf("%s: EachRuneAtPos gave %q at %v", be.name, string(got), offsets)
		}

		got = got[:0]
		buf.EachRuneBeforePos(buf.Len(), func(rpos int, r rune) bool {
			got = append(got, r)
			return false
		})
		if string(got) != "b éa" {
			t.Errorf("%s: EachRuneBeforePos gave %q", be.name, string(got))
		}
	}
}

func TestWriteTo(t *testing.T) {
	for _, be := range backends {
		buf := be.new([]byte("first\n"))
		buf.Insert(1, 0, []byte("second\n"))
		var out bytes.Buffer
		if _, err := buf.WriteTo(&out); err != nil {
			t.Fatalf("%s: WriteTo: %v", be.name, err)
		}
		if out.String() != "first\nsecond\n" {
			t.Errorf("%s: WriteTo wrote %#v", be.name, out.String())
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := mustNew(t, BackendGap).(*GapBuffer); !ok {
		t.Errorf("Expected a *GapBuffer")
	}
	if _, ok := mustNew(t, BackendRope).(*RopeBuffer); !ok {
		t.Errorf("Expected a *RopeBuffer")
	}
	if _, err := New("piece-table", nil); err == nil {
		t.Errorf("Expected an error for an unknown backend")
	}
}

func mustNew(t *testing.T, backend string) Buffer {
	t.Helper()
	buf, err := New(backend, []byte("x"))
	if err != nil {
		t.Fatalf("New(%q): %v", backend, err)
	}
	return buf
}

// TestGapMatchesRope applies the same random edits to both backends and
// expects identical results.
func TestGapMatchesRope(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pieces := []string{"a", "bc", "\n", "\t", "é", "word ", "\r\n"}

	gap := NewGapBuffer([]byte("start\n"))
	rope := NewRopeBuffer([]byte("start\n"))

	randomPos := func() (int, int) {
		return gap.ClampLineCol(rng.IntN(gap.Lines()+1), rng.IntN(12))
	}

	for step := 0; step < 500; step++ {
		if rng.IntN(3) > 0 {
			line, col := randomPos()
			text := []byte(pieces[rng.IntN(len(pieces))])
			gap.Insert(line, col, text)
			rope.Insert(line, col, text)
		} else {
			startLine, startCol := randomPos()
			endLine, endCol := randomPos()
			gap.Remove(startLine, startCol, endLine, endCol)
			rope.Remove(startLine, startCol, endLine, endCol)
		}

		if !bytes.Equal(gap.Bytes(), rope.Bytes()) {
			t.Fatalf("step %d: gap %#v != rope %#v", step, string(gap.Bytes()), string(rope.Bytes()))
		}
		if gap.Lines() != rope.Lines() {
			t.Fatalf("step %d: gap has %d lines, rope %d", step, gap.Lines(), rope.Lines())
		}
		for line := 0; line < gap.Lines(); line++ {
			if !bytes.Equal(gap.Line(line), rope.Line(line)) {
				t.Fatalf("step %d: line %d differs: %#v vs %#v", step, line, string(gap.Line(line)), string(rope.Line(line)))
			}
		}
	}
}
