package app

import (
	"errors"

	"example.com/gapedit/pkg/config"
	"example.com/gapedit/pkg/editor"
	"example.com/gapedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// ErrInterrupted is returned by Run when an interrupt event arrives.
var ErrInterrupted = errors.New("interrupted")

// Runner owns the terminal screen and a minimal event loop around one document.
type Runner struct {
	Screen   tcell.Screen
	Doc      *editor.Document
	ShowHelp bool
	Logger   *logs.Logger
	Keymap   map[string]config.Keybinding
	Theme    config.Theme
	TopLine  int
	LeftCol  int
	Message  string

	quitArmed bool
}

// New creates a Runner for doc using cfg's keymap and theme.
func New(doc *editor.Document, cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{Doc: doc, Keymap: cfg.Keymap, Theme: cfg.Theme}
	if doc != nil {
		r.Logger = doc.Logger
	}
	return r
}

func (r *Runner) binding(name string) config.Keybinding {
	if kb, ok := r.Keymap[name]; ok {
		return kb
	}
	return config.DefaultKeymap()[name]
}

// InitScreen initializes a tcell screen if one is not already set.
// tcell puts the terminal into raw mode here and Fini restores it.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(r.Theme.Text())
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user requests quit.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	path := ""
	if r.Doc != nil {
		path = r.Doc.Path
	}
	r.Logger.Event("run.start", map[string]any{"file": path, "driver": "screen"})
	defer r.Logger.Event("run.end", map[string]any{"file": path})

	r.draw()
	for {
		ev := r.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized underneath us
			return nil
		case *tcell.EventKey:
			r.Logger.Debug("key", map[string]any{
				"key":       int(ev.Key()),
				"rune":      string(ev.Rune()),
				"modifiers": int(ev.Modifiers()),
			})
			// If help is currently shown, consume this key to dismiss it
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw()
				continue
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
			r.draw()
		case *tcell.EventInterrupt:
			r.Logger.Event("action", map[string]any{"name": "interrupt"})
			return ErrInterrupted
		case *tcell.EventResize:
			r.Screen.Sync()
			r.draw()
		}
	}
}
