package ui

import (
	"fmt"
	"path/filepath"

	"github.com/fivemoreminix/gapedit/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar is a one-line Component describing a TextEdit: its file, the cursor
// position, and how the text is laid out in its buffer.
type StatusBar struct {
	TextEdit *TextEdit
	Message  string // Shown after the file name until cleared

	baseComponent
}

func NewStatusBar(te *TextEdit, theme *Theme) *StatusBar {
	return &StatusBar{
		TextEdit:      te,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

// SetMessage formats a message to show on the bar. An empty format clears it.
func (b *StatusBar) SetMessage(format string, a ...any) {
	b.Message = fmt.Sprintf(format, a...)
}

// FileLabel returns the file name, marked with an asterisk when unsaved.
func (b *StatusBar) FileLabel() string {
	name := "untitled"
	if b.TextEdit.FilePath != "" {
		name = filepath.Base(b.TextEdit.FilePath)
	}
	if b.TextEdit.Dirty {
		name += "*"
	}
	return name
}

// BufferLabel describes the buffer layout. For a gap buffer that is the gap
// length, the capacity and the gap's offset.
func (b *StatusBar) BufferLabel() string {
	if gb, ok := b.TextEdit.Buffer.(*buffer.GapBuffer); ok {
		g := gb.Gap()
		return fmt.Sprintf("gap %d/%d @%d", g.GapLen(), g.Cap(), g.Cursor())
	}
	return fmt.Sprintf("rope %d", b.TextEdit.Buffer.Len())
}

// PositionLabel is the one-based line and column of the cursor, and the line ending.
func (b *StatusBar) PositionLabel() string {
	line, col := b.TextEdit.GetCursor().GetLineCol()
	ending := "LF"
	if b.TextEdit.IsCRLF {
		ending = "CRLF"
	}
	return fmt.Sprintf("Ln %d, Col %d  %s", line+1, col+1, ending)
}

func (b *StatusBar) GetMinSize() (int, int) {
	return 0, 1
}

// Draw renders the file label and message on the left, and the cursor and
// buffer labels on the right when there is room.
func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)

	x := b.x + 1
	x += DrawStr(s, x, b.y, b.FileLabel(), style)
	if b.Message != "" {
		x += 1
		x += DrawStr(s, x, b.y, " "+b.Message+" ", b.theme.GetOrDefault("StatusBarMessage"))
	}

	right := b.PositionLabel() + " | " + b.BufferLabel()
	rightX := b.x + b.width - runewidth.StringWidth(right) - 1
	if rightX > x {
		DrawStr(s, Clamp(rightX, x+1, b.x+b.width), b.y, right, style)
	}
}

func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}
