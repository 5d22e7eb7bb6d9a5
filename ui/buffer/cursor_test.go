package buffer

import "testing"

func TestCursorMovement(t *testing.T) {
	for _, be := range backends {
		buf := be.new([]byte("foo bar\nbaz"))
		c := NewCursor(buf)

		c = c.Right().Right()
		if line, col := c.GetLineCol(); line != 0 || col != 2 {
			t.Errorf("%s: Expected 0,2 got %v,%v", be.name, line, col)
		}

		c = c.SetLineCol(0, 7).Right() // Wraps to the next line
		if line, col := c.GetLineCol(); line != 1 || col != 0 {
			t.Errorf("%s: Expected 1,0 got %v,%v", be.name, line, col)
		}

		c = c.Left() // Wraps back to the end of the line above
		if line, col := c.GetLineCol(); line != 0 || col != 7 {
			t.Errorf("%s: Expected 0,7 got %v,%v", be.name, line, col)
		}

		c = c.SetLineCol(0, 5).Down()
		if line, col := c.GetLineCol(); line != 1 || col != 3 {
			t.Errorf("%s: Expected Down to clamp to 1,3 got %v,%v", be.name, line, col)
		}
		c = c.Up() // Returns to the column we came from
		if line, col := c.GetLineCol(); line != 0 || col != 5 {
			t.Errorf("%s: Expected Up to restore 0,5 got %v,%v", be.name, line, col)
		}

		c = c.Up()
		if line, col := c.GetLineCol(); line != 0 || col != 0 {
			t.Errorf("%s: Expected Up on the first line to go to 0,0 got %v,%v", be.name, line, col)
		}

		c = c.SetLineCol(1, 0).Down()
		if line, col := c.GetLineCol(); line != 1 || col != 3 {
			t.Errorf("%s: Expected Down on the last line to go to its end, got %v,%v", be.name, line, col)
		}

		if pos := c.SetLineCol(1, 1).Pos(); pos != 9 {
			t.Errorf("%s: Expected Pos() == 9, got %v", be.name, pos)
		}
	}
}

func TestCursorWords(t *testing.T) {
	for _, be := range backends {
		buf := be.new([]byte("foo bar\nbaz.qux"))
		c := NewCursor(buf)

		stops := [][2]int{{0, 4}, {1, 0}, {1, 3}, {1, 4}, {1, 7}}
		for _, stop := range stops {
			c = c.NextWordStart()
			if line, col := c.GetLineCol(); line != stop[0] || col != stop[1] {
				t.Errorf("%s: NextWordStart: expected %v,%v got %v,%v", be.name, stop[0], stop[1], line, col)
			}
		}

		c = c.SetLineCol(1, 0).PrevWordStart()
		if line, col := c.GetLineCol(); line != 0 || col != 4 {
			t.Errorf("%s: PrevWordStart: expected 0,4 got %v,%v", be.name, line, col)
		}
		c = c.PrevWordStart().PrevWordStart()
		if line, col := c.GetLineCol(); line != 0 || col != 0 {
			t.Errorf("%s: PrevWordStart: expected 0,0 got %v,%v", be.name, line, col)
		}
	}
}

func TestRegion(t *testing.T) {
	buf := NewGapBuffer([]byte("one\ntwo\nthree"))
	r := NewRegion(buf)
	r.Anchor = r.Anchor.SetLineCol(2, 1)
	r.Head = r.Head.SetLineCol(0, 2)

	if line, col := r.Start(); line != 0 || col != 2 {
		t.Errorf("Expected region start 0,2 got %v,%v", line, col)
	}
	if line, col := r.End(); line != 2 || col != 1 {
		t.Errorf("Expected region end 2,1 got %v,%v", line, col)
	}
	if !r.Contains(0, 2) || !r.Contains(1, 0) || !r.Contains(2, 0) || r.Contains(2, 1) || r.Contains(0, 1) {
		t.Errorf("Region.Contains is wrong")
	}
	if r.Empty() {
		t.Errorf("Expected a non-empty region")
	}
	r.Head = r.Anchor
	if !r.Empty() {
		t.Errorf("Expected an empty region when Head == Anchor")
	}
}
