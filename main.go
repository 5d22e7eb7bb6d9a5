package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fivemoreminix/gapedit/pkg/config"
	"github.com/fivemoreminix/gapedit/pkg/logging"
	"github.com/fivemoreminix/gapedit/ui"
	"github.com/fivemoreminix/gapedit/ui/buffer"
	"github.com/gdamore/tcell/v2"
)

var theme = ui.Theme{}

var focusedComponent ui.Component = nil

func changeFocus(to ui.Component) {
	if focusedComponent != nil {
		focusedComponent.SetFocused(false)
	}
	focusedComponent = to
	to.SetFocused(true)
}

// editor is the single-document screen: a TextEdit above a StatusBar.
type editor struct {
	screen    tcell.Screen
	textEdit  *ui.TextEdit
	statusBar *ui.StatusBar
	quitArmed bool // Set after a first Ctrl+Q with unsaved changes
}

func newEditor(s tcell.Screen, cfg config.Config, path string, contents []byte) (*editor, error) {
	te, err := ui.NewTextEdit(s, path, contents, cfg.Backend, &theme)
	if err != nil {
		return nil, err
	}
	te.LineNumbers = cfg.LineNumbers
	te.UseHardTabs = cfg.HardTabs
	te.TabSize = cfg.TabSize

	if gb, ok := te.Buffer.(*buffer.GapBuffer); ok {
		gb.Gap().Grow(cfg.InitialGap) // Room to type before the first reallocation
	}

	e := &editor{screen: s, textEdit: te, statusBar: ui.NewStatusBar(te, &theme)}
	e.layout()
	return e, nil
}

// layout sizes the components to the screen.
func (e *editor) layout() {
	width, height := e.screen.Size()
	e.textEdit.SetPos(0, 0)
	e.textEdit.SetSize(width, max(height-1, 0))
	e.statusBar.SetPos(0, height-1)
	e.statusBar.SetSize(width, 1)
}

func (e *editor) draw() {
	e.screen.Clear()
	e.textEdit.Draw(e.screen)
	e.statusBar.Draw(e.screen)
	e.screen.Show()
}

// handleKey applies the editor shortcuts, and passes anything else to the
// focused component. It returns true when the editor should exit.
func (e *editor) handleKey(ev *tcell.EventKey) bool {
	te := e.textEdit
	e.statusBar.SetMessage("")

	quitArmed := e.quitArmed
	e.quitArmed = false

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		if te.Dirty && !quitArmed {
			e.quitArmed = true
			e.statusBar.SetMessage("Unsaved changes; quit again to discard them")
			return false
		}
		return true
	case tcell.KeyCtrlS:
		if err := te.Save(); err != nil {
			slog.Error("save failed", "path", te.FilePath, "err", err)
			e.statusBar.SetMessage("Save failed: %v", err)
		} else {
			slog.Info("saved", "path", te.FilePath, "bytes", te.Buffer.Len())
			e.statusBar.SetMessage("Saved")
		}
	case tcell.KeyCtrlC:
		if err := ClipWrite(te.CopyText()); err != nil {
			slog.Warn("clipboard write failed", "err", err)
			e.statusBar.SetMessage("Copy failed: %v", err)
		}
	case tcell.KeyCtrlX:
		if err := ClipWrite(te.CutText()); err != nil {
			slog.Warn("clipboard write failed", "err", err)
			e.statusBar.SetMessage("Cut failed: %v", err)
		}
	case tcell.KeyCtrlV:
		contents, err := ClipRead()
		if err != nil {
			slog.Warn("clipboard read failed", "err", err)
			e.statusBar.SetMessage("Paste failed: %v", err)
			break
		}
		te.Insert(contents)
	default:
		focusedComponent.HandleEvent(ev)
	}
	return false
}

// readFile returns the contents of path, or nothing when the file does not exist yet.
func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return contents, err
}

func fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("%v", err)
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		Format:     cfg.LogFormat,
	})
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	path := flag.Arg(0)
	contents, err := readFile(path)
	if err != nil {
		fatal("File could not be opened at path %s: %v", path, err)
	}

	method, err := ClipInitialize(ParseClipMethod(cfg.Clipboard))
	if err != nil {
		slog.Warn("system clipboard unavailable, using the internal one", "err", err)
	}
	slog.Debug("clipboard ready", "method", method)

	s, e := tcell.NewScreen()
	if e != nil {
		fatal("%v", e)
	}
	if e := s.Init(); e != nil {
		fatal("%v", e)
	}
	defer s.Fini() // Useful for handling panics

	ed, err := newEditor(s, cfg, path, contents)
	if err != nil {
		s.Fini()
		fatal("%v", err)
	}
	slog.Info("opened", "path", path, "backend", cfg.Backend, "bytes", len(contents))

	changeFocus(ed.textEdit)

main_loop:
	for {
		ed.draw()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			ed.layout()
			s.Sync() // Redraw everything
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				break main_loop
			}
		}
	}
}
