package ui

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/gapedit/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextEdit is a field for line-based editing. It features syntax highlighting
// tools, and contains the various information about content being edited.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many spaces to indent by
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	screen           tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	selection  buffer.Region // Selection: selectMode determines if it should be used
	selectMode bool          // Whether the user is actively selecting text

	baseComponent
}

// NewTextEdit will initialize the buffer using the given 'contents', stored in the
// named backend (see buffer.New). If the 'filePath' is empty, it can be assumed that
// the TextEdit has no file association, or it is unsaved.
func NewTextEdit(screen tcell.Screen, filePath string, contents []byte, backend string, theme *Theme) (*TextEdit, error) {
	te := &TextEdit{
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	if err := te.SetContents(contents, backend); err != nil {
		return nil, err
	}
	return te, nil
}

// SetContents replaces the buffer of the TextEdit component with one holding contents.
// The contents are determined to be either CRLF or LF based on the first line-ending.
func (t *TextEdit) SetContents(contents []byte, backend string) error {
	buf, err := buffer.New(backend, contents)
	if err != nil {
		return err
	}

	t.IsCRLF = false
	if i := bytes.IndexByte(contents, '\n'); i > 0 && contents[i-1] == '\r' {
		t.IsCRLF = true
	}

	t.Buffer = buf
	t.cursor = buffer.NewCursor(buf)
	t.selection = buffer.NewRegion(buf)
	t.selectMode = false
	t.scrollx, t.scrolly = 0, 0
	t.Highlighter = buffer.NewHighlighter(buf, buffer.LanguageForPath(t.FilePath), &buffer.DefaultColorscheme)
	return nil
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	} else {
		return "\n"
	}
}

// Save writes the buffer to FilePath, creating the file if it does not exist.
func (t *TextEdit) Save() error {
	if t.FilePath == "" {
		return fmt.Errorf("no file path to save to")
	}
	file, err := os.Create(t.FilePath)
	if err != nil {
		return err
	}
	if _, err := t.Buffer.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", t.FilePath, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	t.Dirty = false
	return nil
}

// selectedRange returns the selection as the inclusive range Slice and Remove
// expect. ok is false when nothing is selected.
func (t *TextEdit) selectedRange() (startLine, startCol, endLine, endCol int, ok bool) {
	if !t.selectMode || t.selection.Empty() {
		return 0, 0, 0, 0, false
	}
	startLine, startCol = t.selection.Start()
	endLine, endCol = t.selection.End()
	if endCol == 0 { // The last selected rune is the delimiter of the line above
		endLine--
		endCol = t.Buffer.RunesInLineWithDelim(endLine) - 1
	} else {
		endCol--
	}
	return startLine, startCol, endLine, endCol, true
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// With a selection, the whole selection is deleted regardless of `forwards`.
func (t *TextEdit) Delete(forwards bool) {
	if startLine, startCol, endLine, endCol, ok := t.selectedRange(); ok {
		t.selectMode = false
		t.Buffer.Remove(startLine, startCol, endLine, endCol)
		t.cursor = t.cursor.SetLineCol(startLine, startCol) // Set cursor to start of region
		t.afterEdit(startLine, startLine != endLine)
		return
	}
	t.selectMode = false

	line, col := t.cursor.GetLineCol()
	if !forwards {
		if line == 0 && col == 0 {
			return // Nothing before the cursor
		}
		t.cursor = t.cursor.Left() // Back up to that character
		line, col = t.cursor.GetLineCol()
	}

	lineLen := t.Buffer.RunesInLine(line)
	if col >= lineLen && line == t.Buffer.Lines()-1 {
		return // Nothing after the cursor
	}

	endCol := col
	deletedLine := col >= lineLen
	if deletedLine { // Cursor is on the delimiter; remove all of it (CRLF is two runes)
		endCol = t.Buffer.RunesInLineWithDelim(line) - 1
	}
	t.Buffer.Remove(line, col, line, endCol)
	t.cursor = t.cursor.SetLineCol(line, col)
	t.afterEdit(line, deletedLine)
}

// Writes `contents` at the cursor position. Line delimiters and tab character supported.
// Any other control characters will be printed. Overwrites any active selection.
func (t *TextEdit) Insert(contents string) {
	if _, _, _, _, ok := t.selectedRange(); ok {
		t.Delete(true) // The parameter doesn't matter with selection
	}
	t.selectMode = false

	var lineInserted bool // True if contents contains a line delimiter
	data := make([]byte, 0, len(contents))

	for i := 0; i < len(contents); {
		ch, size := utf8.DecodeRuneInString(contents[i:])
		i += size
		switch ch {
		case '\r':
			if i < len(contents) && contents[i] == '\n' {
				i++ // Consume '\n' after
			}
			fallthrough
		case '\n':
			data = append(data, t.GetLineDelimiter()...)
			lineInserted = true
		case '\t':
			if !t.UseHardTabs { // If this file does not use hard tabs...
				data = append(data, strings.Repeat(" ", t.TabSize)...)
				break
			}
			data = append(data, '\t')
		default:
			data = utf8.AppendRune(data, ch)
		}
	}
	if len(data) == 0 {
		return
	}

	line, col := t.cursor.GetLineCol()
	pos := t.cursor.Pos()
	t.Buffer.Insert(line, col, data)
	t.cursor = t.cursor.SetLineCol(t.Buffer.PosToLineCol(pos + len(data))) // Advance past the inserted text
	t.afterEdit(line, lineInserted)
}

// afterEdit marks the buffer dirty, follows the cursor, and schedules lines for
// rehighlighting. When the line count may have changed every line from
// startingLine down is invalidated.
func (t *TextEdit) afterEdit(startingLine int, linesChanged bool) {
	t.Dirty = true
	t.ScrollToCursor()
	t.updateCursorVisibility()

	if linesChanged {
		t.Highlighter.InvalidateLines(startingLine, t.Buffer.Lines()-1)
	} else {
		t.Highlighter.InvalidateLines(startingLine, startingLine)
	}
}

// runeWidth returns how many cells r takes when drawn at visual column x of its line.
// Tabs reach to the next tab stop.
func (t *TextEdit) runeWidth(r rune, x int) int {
	if r == '\t' {
		return t.TabSize - x%t.TabSize
	}
	return max(runewidth.RuneWidth(r), 1)
}

// visualCol returns the cell offset of col within line, accounting for tabs
// and wide runes.
func (t *TextEdit) visualCol(line, col int) int {
	var x int
	data := t.Buffer.Line(line)
	for ; col > 0 && len(data) > 0; col-- {
		r, size := utf8.DecodeRune(data)
		x += t.runeWidth(r, x)
		data = data[size:]
	}
	return x
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Sends a signal to show the cursor if the TextEdit
// is focused and not in select mode.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && !t.selectMode {
		columnWidth := t.getColumnWidth()
		line, col := t.cursor.GetLineCol()
		t.screen.ShowCursor(t.x+columnWidth+t.visualCol(line, col)-t.scrollx, t.y+line-t.scrolly)
	} else if t.focused {
		t.screen.HideCursor()
	}
}

// Scroll the screen if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()
	x := t.visualCol(line, col)

	// Scroll the screen when going to lines out of view
	if line >= t.scrolly+t.height { // If the new line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}

	textWidth := t.width - t.getColumnWidth()

	// Scroll the screen horizontally when going to columns out of view
	if x >= t.scrollx+textWidth { // If the new column is right of view
		t.scrollx = x - textWidth + 1 // Scroll just enough to view that column
	} else if x < t.scrollx { // If the new column is left of view
		t.scrollx = x // Scroll left enough to view that column
	}
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// GetScroll returns the line and cell scrolled to the top left of the view.
func (t *TextEdit) GetScroll() (line, col int) {
	return t.scrolly, t.scrollx
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(3, 1+len(strconv.Itoa(t.Buffer.Lines()))) // Column has minimum width of 2
	}
	return columnWidth
}

// GetSelectedBytes returns a byte slice of the region of the buffer that is currently selected.
// If the returned slice is empty, then nothing was selected. The slice returned may or may not
// be a copy of the buffer, so do not write to it.
func (t *TextEdit) GetSelectedBytes() []byte {
	if startLine, startCol, endLine, endCol, ok := t.selectedRange(); ok {
		return t.Buffer.Slice(startLine, startCol, endLine, endCol)
	}
	return []byte{}
}

// CopyText returns the selection, or the line under the cursor with its
// delimiter when nothing is selected.
func (t *TextEdit) CopyText() string {
	if selected := t.GetSelectedBytes(); len(selected) > 0 {
		return string(selected)
	}
	line, _ := t.cursor.GetLineCol()
	return string(t.Buffer.Line(line))
}

// CutText removes and returns what CopyText would return.
func (t *TextEdit) CutText() string {
	if selected := t.GetSelectedBytes(); len(selected) > 0 {
		text := string(selected)
		t.Delete(true)
		return text
	}

	line, _ := t.cursor.GetLineCol()
	text := string(t.Buffer.Line(line))
	if text == "" {
		return ""
	}
	t.Buffer.Remove(line, 0, line, t.Buffer.RunesInLineWithDelim(line)-1)
	t.cursor = t.cursor.SetLineCol(line, 0)
	t.afterEdit(line, true)
	return text
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.Lines()

	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	columnStyle := t.Highlighter.Colorscheme.GetStyle(buffer.Column)
	defaultStyle := t.Highlighter.Colorscheme.GetStyle(buffer.Default)

	t.Highlighter.UpdateInvalidatedLines(t.scrolly, t.scrolly+(t.height-1))

	textX := t.x + columnWidth
	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, textX, lineY, t.width-columnWidth, 1, ' ', defaultStyle)

		lineNumStr := "" // Line number as a string
		if line < bufferLines {
			lineNumStr = strconv.Itoa(line + 1) // Only set for lines within the buffer (not view)
			t.drawLine(s, line, textX, lineY, defaultStyle, selectedStyle)
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", columnWidth-len(lineNumStr)-1), lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, columnStr, columnStyle) // Draw column
		}
	}

	t.updateCursorVisibility()
}

// drawLine draws the visible part of one buffer line starting at screen column textX.
func (t *TextEdit) drawLine(s tcell.Screen, line, textX, lineY int, defaultStyle, selectedStyle tcell.Style) {
	right := t.x + t.width
	var x, col int // Visual offset and rune index into the line

	data := t.Buffer.Line(line)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == '\r' || r == '\n' {
			break
		}

		width := t.runeWidth(r, x)
		if drawX := textX + x - t.scrollx; x >= t.scrollx && drawX+width <= right {
			style := t.Highlighter.StyleAt(line, col)
			if t.selectMode && t.selection.Contains(line, col) {
				style = selectedStyle
			}
			if r == '\t' {
				DrawRect(s, drawX, lineY, width, 1, ' ', style)
			} else {
				s.SetContent(drawX, lineY, r, nil, style)
			}
		}
		x += width
		col++
	}

	// A selected line delimiter is shown as one selected cell
	if t.selectMode && line < t.Buffer.Lines()-1 && t.selection.Contains(line, col) {
		if drawX := textX + x - t.scrollx; x >= t.scrollx && drawX < right {
			s.SetContent(drawX, lineY, ' ', nil, selectedStyle)
		}
	}
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else {
		t.screen.HideCursor()
	}
}

// moveCursor applies a motion. With shift held the selection follows the
// cursor, otherwise any selection is dropped.
func (t *TextEdit) moveCursor(to buffer.Cursor, selecting bool) {
	if selecting {
		if !t.selectMode { // Start a selection where the cursor was
			t.selection.Anchor = t.cursor
			t.selectMode = true
		}
		t.selection.Head = to
	} else {
		t.selectMode = false
	}
	t.SetCursor(to)
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		selecting := ev.Modifiers()&tcell.ModShift != 0
		byWord := ev.Modifiers()&tcell.ModCtrl != 0

		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.moveCursor(t.cursor.Up(), selecting)
		case tcell.KeyDown:
			t.moveCursor(t.cursor.Down(), selecting)
		case tcell.KeyLeft:
			if byWord {
				t.moveCursor(t.cursor.PrevWordStart(), selecting)
			} else {
				t.moveCursor(t.cursor.Left(), selecting)
			}
		case tcell.KeyRight:
			if byWord {
				t.moveCursor(t.cursor.NextWordStart(), selecting)
			} else {
				t.moveCursor(t.cursor.Right(), selecting)
			}
		case tcell.KeyHome:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, 0), selecting)
		case tcell.KeyEnd:
			cursLine, _ := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32), selecting) // Max column
		case tcell.KeyPgUp:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine-t.height, cursCol), selecting) // Go a page up
		case tcell.KeyPgDn:
			cursLine, cursCol := t.cursor.GetLineCol()
			t.moveCursor(t.cursor.SetLineCol(cursLine+t.height, cursCol), selecting) // Go a page down

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
