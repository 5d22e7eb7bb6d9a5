package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`. Wide runes
// take two cells. Returns the number of cells drawn.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	var col int
	for _, r := range str {
		s.SetContent(x+col, y, r, nil, style)
		col += max(runewidth.RuneWidth(r), 1)
	}
	return col
}
