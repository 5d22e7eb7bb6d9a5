package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivemoreminix/gapedit/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

var backends = []string{buffer.BackendGap, buffer.BackendRope}

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func newTextEdit(t *testing.T, s tcell.Screen, path, contents, backend string) *TextEdit {
	t.Helper()
	te, err := NewTextEdit(s, path, []byte(contents), backend, nil)
	if err != nil {
		t.Fatalf("NewTextEdit: %v", err)
	}
	te.SetPos(0, 0)
	te.SetSize(s.Size())
	te.SetFocused(true)
	return te
}

func press(te *TextEdit, key tcell.Key, mod tcell.ModMask) {
	te.HandleEvent(tcell.NewEventKey(key, 0, mod))
}

func typeRunes(te *TextEdit, text string) {
	for _, r := range text {
		te.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func checkText(t *testing.T, te *TextEdit, want string) {
	t.Helper()
	if got := string(te.Buffer.Bytes()); got != want {
		t.Errorf("Expected buffer %#v, got %#v", want, got)
	}
}

func checkCursor(t *testing.T, te *TextEdit, wantLine, wantCol int) {
	t.Helper()
	if line, col := te.GetCursor().GetLineCol(); line != wantLine || col != wantCol {
		t.Errorf("Expected cursor at %v,%v got %v,%v", wantLine, wantCol, line, col)
	}
}

func TestTextEditTyping(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			te := newTextEdit(t, newScreen(t, 40, 10), "", "hello\nworld", backend)

			press(te, tcell.KeyEnd, tcell.ModNone)
			typeRunes(te, "!")
			checkText(t, te, "hello!\nworld")
			checkCursor(t, te, 0, 6)

			press(te, tcell.KeyEnter, tcell.ModNone)
			checkText(t, te, "hello!\n\nworld")
			checkCursor(t, te, 1, 0)

			press(te, tcell.KeyBackspace2, tcell.ModNone)
			checkText(t, te, "hello!\nworld")
			checkCursor(t, te, 0, 6)

			press(te, tcell.KeyDelete, tcell.ModNone) // Joins the lines
			checkText(t, te, "hello!world")
			checkCursor(t, te, 0, 6)

			press(te, tcell.KeyBackspace2, tcell.ModNone)
			checkText(t, te, "helloworld")
			checkCursor(t, te, 0, 5)

			if !te.Dirty {
				t.Errorf("Expected the TextEdit to be dirty after edits")
			}
		})
	}
}

func TestTextEditBoundaries(t *testing.T) {
	te := newTextEdit(t, newScreen(t, 40, 10), "", "ab", buffer.BackendGap)

	te.Delete(false) // Nothing before the cursor
	checkText(t, te, "ab")

	press(te, tcell.KeyEnd, tcell.ModNone)
	te.Delete(true) // Nothing after the cursor
	checkText(t, te, "ab")
	if te.Dirty {
		t.Errorf("Expected no-op deletes to leave the TextEdit clean")
	}
}

func TestTextEditSoftTabs(t *testing.T) {
	te := newTextEdit(t, newScreen(t, 40, 10), "", "x", buffer.BackendGap)
	te.UseHardTabs = false
	te.TabSize = 2

	press(te, tcell.KeyTab, tcell.ModNone)
	checkText(t, te, "  x")
	checkCursor(t, te, 0, 2)

	te.UseHardTabs = true
	te.Insert("\t")
	checkText(t, te, "  \tx")
}

func TestTextEditCRLF(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			te := newTextEdit(t, newScreen(t, 40, 10), "", "a\r\nb", backend)
			if !te.IsCRLF {
				t.Fatalf("Expected CRLF to be detected")
			}

			press(te, tcell.KeyEnd, tcell.ModNone)
			checkCursor(t, te, 0, 1)

			te.Insert("\n")
			checkText(t, te, "a\r\n\r\nb")
			checkCursor(t, te, 1, 0)

			te.Delete(false)
			checkText(t, te, "a\r\nb")
			checkCursor(t, te, 0, 1)

			te.Delete(true) // Removes both runes of the delimiter
			checkText(t, te, "ab")
		})
	}
}

func TestTextEditSelection(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			te := newTextEdit(t, newScreen(t, 40, 10), "", "one two", backend)

			for range 3 {
				press(te, tcell.KeyRight, tcell.ModShift)
			}
			if got := string(te.GetSelectedBytes()); got != "one" {
				t.Errorf("Expected \"one\" to be selected, got %#v", got)
			}
			if got := te.CutText(); got != "one" {
				t.Errorf("Expected to cut \"one\", got %#v", got)
			}
			checkText(t, te, " two")
			checkCursor(t, te, 0, 0)
			if len(te.GetSelectedBytes()) != 0 {
				t.Errorf("Expected the selection to be gone after cutting")
			}

			te.SetContents([]byte("ab\ncd"), backend)
			press(te, tcell.KeyDown, tcell.ModShift)
			if got := string(te.GetSelectedBytes()); got != "ab\n" {
				t.Errorf("Expected the first line to be selected, got %#v", got)
			}
			typeRunes(te, "X") // Replaces the selection
			checkText(t, te, "Xcd")
			checkCursor(t, te, 0, 1)

			press(te, tcell.KeyRight, tcell.ModShift)
			press(te, tcell.KeyRight, tcell.ModNone) // Moving without shift drops the selection
			if len(te.GetSelectedBytes()) != 0 {
				t.Errorf("Expected no selection after an unshifted motion")
			}
		})
	}
}

func TestTextEditCopyLine(t *testing.T) {
	te := newTextEdit(t, newScreen(t, 40, 10), "", "first\nsecond", buffer.BackendGap)

	if got := te.CopyText(); got != "first\n" {
		t.Errorf("Expected to copy the first line, got %#v", got)
	}
	press(te, tcell.KeyDown, tcell.ModNone)
	if got := te.CopyText(); got != "second" {
		t.Errorf("Expected to copy the last line, got %#v", got)
	}

	press(te, tcell.KeyUp, tcell.ModNone)
	if got := te.CutText(); got != "first\n" {
		t.Errorf("Expected to cut the first line, got %#v", got)
	}
	checkText(t, te, "second")
	checkCursor(t, te, 0, 0)
}

func TestTextEditWordMotion(t *testing.T) {
	te := newTextEdit(t, newScreen(t, 40, 10), "", "foo bar", buffer.BackendRope)

	press(te, tcell.KeyRight, tcell.ModCtrl)
	checkCursor(t, te, 0, 4)
	press(te, tcell.KeyLeft, tcell.ModCtrl)
	checkCursor(t, te, 0, 0)
}

func TestTextEditScroll(t *testing.T) {
	te := newTextEdit(t, newScreen(t, 20, 2), "", "1\n2\n3\n4\n5", buffer.BackendGap)

	for range 3 {
		press(te, tcell.KeyDown, tcell.ModNone)
	}
	if line, _ := te.GetScroll(); line != 2 {
		t.Errorf("Expected to scroll to line 2, got %v", line)
	}

	press(te, tcell.KeyPgUp, tcell.ModNone)
	checkCursor(t, te, 1, 0)
	if line, _ := te.GetScroll(); line != 1 {
		t.Errorf("Expected to scroll back to line 1, got %v", line)
	}
}

func TestTextEditDraw(t *testing.T) {
	s := newScreen(t, 20, 3)
	te := newTextEdit(t, s, "main.go", "func\tx", buffer.BackendGap)
	te.Draw(s)
	s.Show()

	cells, width, _ := s.GetContents()
	cellRune := func(x, y int) rune {
		if runes := cells[y*width+x].Runes; len(runes) > 0 {
			return runes[0]
		}
		return 0
	}

	// " 1│" then the text
	if cellRune(1, 0) != '1' || cellRune(2, 0) != '│' {
		t.Errorf("Expected the line number column on row 0")
	}
	if cellRune(3, 0) != 'f' || cellRune(6, 0) != 'c' {
		t.Errorf("Expected \"func\" to be drawn after the column")
	}
	if cellRune(11, 0) != 'x' { // The tab fills cells 7 through 10
		t.Errorf("Expected 'x' after the tab stop, got %q", cellRune(11, 0))
	}
	if cells[3].Style != buffer.DefaultColorscheme[buffer.Keyword] {
		t.Errorf("Expected \"func\" to be highlighted as a keyword")
	}
	if cellRune(1, 1) == '2' {
		t.Errorf("Expected no line number past the end of the buffer")
	}

	press(te, tcell.KeyEnd, tcell.ModNone)
	if x, y, visible := s.GetCursor(); x != 12 || y != 0 || !visible {
		t.Errorf("Expected the cursor at 12,0 got %v,%v (visible %v)", x, y, visible)
	}

	press(te, tcell.KeyHome, tcell.ModShift)
	te.Draw(s)
	s.Show()
	cells, _, _ = s.GetContents()
	if cells[3].Style != DefaultTheme["TextEditSelected"] {
		t.Errorf("Expected the selected text to use the selection style")
	}
}

func TestTextEditSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	te := newTextEdit(t, newScreen(t, 40, 10), path, "text", buffer.BackendGap)
	typeRunes(te, "my ")

	if err := te.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "my text" {
		t.Errorf("Expected the file to contain \"my text\", got %#v", string(data))
	}
	if te.Dirty {
		t.Errorf("Expected Save to clear Dirty")
	}

	te.FilePath = ""
	if err := te.Save(); err == nil {
		t.Errorf("Expected an error saving without a path")
	}
}

func TestNewTextEditUnknownBackend(t *testing.T) {
	if _, err := NewTextEdit(newScreen(t, 10, 10), "", nil, "piece-table", nil); err == nil {
		t.Errorf("Expected an error for an unknown backend")
	}
}
