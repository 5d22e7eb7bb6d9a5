// Package config loads the editor settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")
)

// Buffer backends a Config may name. Kept in step with ui/buffer.
const (
	BackendGap  = "gap"
	BackendRope = "rope"
)

// Clipboard methods.
const (
	ClipboardExternal = "external"
	ClipboardInternal = "internal"
)

// Config holds every setting the editor reads at startup.
type Config struct {
	Backend     string `toml:"backend"`      // "gap" or "rope"
	TabSize     int    `toml:"tab_size"`     // Columns per tab stop
	HardTabs    bool   `toml:"hard_tabs"`    // Insert '\t' instead of spaces
	LineNumbers bool   `toml:"line_numbers"` // Draw the line number column
	InitialGap  int    `toml:"initial_gap"`  // Extra bytes reserved when a file is opened with the gap backend
	Clipboard   string `toml:"clipboard"`    // "external" or "internal"

	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"` // Empty discards log output
	LogFormat string `toml:"log_format"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Backend:     BackendGap,
		TabSize:     4,
		HardTabs:    true,
		LineNumbers: true,
		InitialGap:  64,
		Clipboard:   ClipboardExternal,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DefaultPath is $XDG_CONFIG_HOME/gapedit/config.toml, or the equivalent for
// the platform. It returns an empty string when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gapedit", "config.toml")
}

// Load reads the file at path over the defaults. A missing file (or an empty
// path) is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, bytes.NewReader(data))
}

// LoadFromReader decodes a config from r over the defaults.
func LoadFromReader(r io.Reader) (Config, error) {
	return parse("<reader>", r)
}

func parse(source string, r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Config{}, perr
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks every field that has a restricted set of values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendGap, BackendRope:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.TabSize < 1 {
		return fmt.Errorf("%w: tab_size must be at least 1, got %d", ErrInvalid, c.TabSize)
	}
	if c.InitialGap < 0 {
		return fmt.Errorf("%w: initial_gap must not be negative, got %d", ErrInvalid, c.InitialGap)
	}
	switch c.Clipboard {
	case ClipboardExternal, ClipboardInternal:
	default:
		return fmt.Errorf("%w: unknown clipboard method %q", ErrInvalid, c.Clipboard)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
