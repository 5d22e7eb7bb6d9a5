package buffer

import (
	"path/filepath"
	"regexp"
	"slices"
)

type Syntax uint8

const (
	Default Syntax = iota
	Column // Not necessarily a Syntax; useful for Colorscheming editor column
	Keyword
	String
	Special
	Type
	Number
	Builtin
	Comment
	DocComment
)

// A Rule colors every match of Pattern within a line as Syntax.
type Rule struct {
	Pattern *regexp.Regexp
	Syntax  Syntax
}

type Language struct {
	Name      string
	Filetypes []string // .go, .c, etc.
	Rules     []Rule   // Earlier rules win where matches overlap
}

// GoLanguage highlights Go source files.
var GoLanguage = &Language{
	Name:      "Go",
	Filetypes: []string{".go"},
	Rules: []Rule{
		{regexp.MustCompile(`//.*`), Comment},
		{regexp.MustCompile(`"(\\.|[^"\\])*"|` + "`[^`]*`"), String},
		{regexp.MustCompile(`'(\\.|[^'\\])+'`), String},
		{regexp.MustCompile(`\b(var|const|if|else|range|for|switch|fallthrough|case|default|break|continue|go|goto|select|chan|map|interface|func|return|defer|import|type|package|struct)\b`), Keyword},
		{regexp.MustCompile(`\b(u?int(8|16|32|64)?|uintptr|float(32|64)|complex(64|128)|rune|byte|string|bool|error|any)\b`), Type},
		{regexp.MustCompile(`\b([1-9][0-9]*|0[0-7]*|0[Xx][0-9A-Fa-f]+|0[Bb][01]+)\b`), Number},
		{regexp.MustCompile(`\b(len|cap|panic|recover|make|new|copy|append|delete|close|min|max|clear|print|println)\b`), Builtin},
		{regexp.MustCompile(`\b(nil|true|false|iota)\b`), Special},
	},
}

// Languages lists every language LanguageForPath can pick.
var Languages = []*Language{GoLanguage}

// LanguageForPath picks a language by the file extension of path, returning
// nil when none matches.
func LanguageForPath(path string) *Language {
	ext := filepath.Ext(path)
	for _, lang := range Languages {
		if slices.Contains(lang.Filetypes, ext) {
			return lang
		}
	}
	return nil
}
