package buffer

import (
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.DefaultStyle` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val // Try to return the requested value
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val // Use default colorscheme value, instead
			}
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// DefaultColorscheme is a dark scheme using the first 16 terminal colors.
var DefaultColorscheme = Colorscheme{
	Default: tcell.Style{}.Foreground(tcell.ColorLightGray).Background(tcell.ColorBlack),
	Column:  tcell.Style{}.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack),
	Comment: tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	String:  tcell.Style{}.Foreground(tcell.ColorOlive).Background(tcell.ColorBlack),
	Keyword: tcell.Style{}.Foreground(tcell.ColorNavy).Background(tcell.ColorBlack),
	Type:    tcell.Style{}.Foreground(tcell.ColorPurple).Background(tcell.ColorBlack),
	Number:  tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
	Builtin: tcell.Style{}.Foreground(tcell.ColorBlue).Background(tcell.ColorBlack),
	Special: tcell.Style{}.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack),
}

// A Match is a highlighted run of runes within one line.
type Match struct {
	Col    int
	EndCol int // Inclusive
	Syntax Syntax
}

// ByCol implements sort.Interface for []Match based on the Col field.
type ByCol []Match

func (c ByCol) Len() int           { return len(c) }
func (c ByCol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c ByCol) Less(i, j int) bool { return c[i].Col < c[j].Col }

// A Highlighter can answer how to color any part of a provided Buffer. It does so
// by applying regular expressions to each line of the buffer, and caches the
// results until lines are invalidated.
type Highlighter struct {
	Buffer      Buffer
	Language    *Language
	Colorscheme *Colorscheme

	lineMatches [][]Match // nil entries are invalidated lines
}

func NewHighlighter(buffer Buffer, lang *Language, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		buffer,
		lang,
		colorscheme,
		make([][]Match, buffer.Lines()),
	}
}

// UpdateLines forces the highlighting matches for lines between startLine to
// endLine, inclusively, to be updated. It is more efficient to mark lines as
// invalidated when changes occur and call UpdateInvalidatedLines(...).
func (h *Highlighter) UpdateLines(startLine, endLine int) {
	h.resize()
	endLine = min(endLine, len(h.lineMatches)-1)

	for line := max(startLine, 0); line <= endLine; line++ {
		matches := h.lineMatches[line][:0]
		if h.Language != nil {
			matches = h.matchLine(h.Buffer.Line(line), matches)
		}
		if matches == nil {
			matches = make([]Match, 0) // Marks the line as valid
		}
		sort.Sort(ByCol(matches))
		h.lineMatches[line] = matches
	}
}

// matchLine appends the matches of every rule in data, skipping any match that
// overlaps one found by an earlier rule.
func (h *Highlighter) matchLine(data []byte, matches []Match) []Match {
	taken := make([]bool, len(data))
	for _, rule := range h.Language.Rules {
	next:
		for _, idx := range rule.Pattern.FindAllIndex(data, -1) {
			if idx[0] == idx[1] {
				continue
			}
			for i := idx[0]; i < idx[1]; i++ {
				if taken[i] {
					continue next
				}
			}
			for i := idx[0]; i < idx[1]; i++ {
				taken[i] = true
			}
			col := utf8.RuneCount(data[:idx[0]])
			matches = append(matches, Match{
				Col:    col,
				EndCol: col + utf8.RuneCount(data[idx[0]:idx[1]]) - 1,
				Syntax: rule.Syntax,
			})
		}
	}
	return matches
}

// resize keeps one entry per buffer line. New lines start invalidated.
func (h *Highlighter) resize() {
	if lines := h.Buffer.Lines(); len(h.lineMatches) < lines {
		h.lineMatches = append(h.lineMatches, make([][]Match, lines-len(h.lineMatches))...) // Extend
	} else {
		h.lineMatches = h.lineMatches[:lines]
	}
}

// UpdateInvalidatedLines only updates the highlighting for lines that are invalidated
// between lines startLine and endLine, inclusively.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) {
	h.resize()
	for line := max(startLine, 0); line <= endLine && line < len(h.lineMatches); line++ {
		if h.lineMatches[line] == nil {
			h.UpdateLines(line, line)
		}
	}
}

func (h *Highlighter) HasInvalidatedLines(startLine, endLine int) bool {
	for i := startLine; i <= endLine && i < len(h.lineMatches); i++ {
		if h.lineMatches[i] == nil {
			return true
		}
	}
	return false
}

// InvalidateLines marks lines startLine through endLine for rehighlighting. Lines
// past the end of the buffer are ignored.
func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	h.resize()
	for i := max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		h.lineMatches[i] = nil
	}
}

// GetLineMatches returns the matches of a line, ordered by column.
func (h *Highlighter) GetLineMatches(line int) []Match {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	return h.lineMatches[line]
}

// StyleAt returns the style of the rune at line, col.
func (h *Highlighter) StyleAt(line, col int) tcell.Style {
	for _, m := range h.GetLineMatches(line) {
		if m.Col > col {
			break
		}
		if col <= m.EndCol {
			return h.GetStyle(m)
		}
	}
	return h.Colorscheme.GetStyle(Default)
}

func (h *Highlighter) GetStyle(match Match) tcell.Style {
	return h.Colorscheme.GetStyle(match.Syntax)
}
