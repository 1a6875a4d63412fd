package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/gapedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// DefaultMinCapacity is the smallest buffer a document is opened with.
const DefaultMinCapacity = 64

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	MinCapacity int
	Log         logs.Options
	Keymap      map[string]Keybinding
	Theme       Theme
}

// file mirrors the on-disk TOML layout. Pointers tell unset from zero.
type file struct {
	Buffer struct {
		MinCapacity *int `toml:"min_capacity"`
	} `toml:"buffer"`
	Log struct {
		Enabled *bool  `toml:"enabled"`
		File    string `toml:"file"`
		Level   string `toml:"level"`
	} `toml:"log"`
	Keymap map[string]string `toml:"keymap"`
	Theme  struct {
		Name     string `toml:"name"`
		StatusFG string `toml:"status_fg"`
		StatusBG string `toml:"status_bg"`
		CursorBG string `toml:"cursor_bg"`
	} `toml:"theme"`
}

// Default returns a Config with default key mappings.
func Default() *Config {
	return &Config{MinCapacity: DefaultMinCapacity, Keymap: DefaultKeymap(), Theme: DefaultTheme()}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit": mustParse("Ctrl+Q"),
		"save": mustParse("Ctrl+S"),
		// Ctrl+H is Backspace on most terminals
		"help": mustParse("Ctrl+G"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return nil, err
	}
	cfg := Default()
	if f.Buffer.MinCapacity != nil {
		if *f.Buffer.MinCapacity < 1 {
			return nil, fmt.Errorf("buffer.min_capacity must be positive, got %d", *f.Buffer.MinCapacity)
		}
		cfg.MinCapacity = *f.Buffer.MinCapacity
	}
	if f.Log.Enabled != nil {
		cfg.Log.Enabled = *f.Log.Enabled
	}
	cfg.Log.File = f.Log.File
	cfg.Log.Level = f.Log.Level
	for cmd, binding := range f.Keymap {
		if _, ok := cfg.Keymap[cmd]; !ok {
			return nil, errors.New("unknown command in keymap: " + cmd)
		}
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("keymap.%s: %w", cmd, err)
		}
		cfg.Keymap[cmd] = kb
	}
	th, err := ThemeByName(f.Theme.Name)
	if err != nil {
		return nil, err
	}
	th.StatusForeground = ParseColor(f.Theme.StatusFG, th.StatusForeground)
	th.StatusBackground = ParseColor(f.Theme.StatusBG, th.StatusBackground)
	th.CursorBG = ParseColor(f.Theme.CursorBG, th.CursorBG)
	cfg.Theme = th
	return cfg, nil
}

// DefaultPath returns ~/.gapedit/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gapedit", "config.toml"), nil
}

// LoadDefault attempts to read ~/.gapedit/config.toml.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Currently only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, _ := ParseKeybinding(s)
	return kb
}

// String renders the binding the way ParseKeybinding reads it.
func (k Keybinding) String() string {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	return tcell.KeyNames[k.Key]
}

// Matches returns true if the binding matches the provided event.
// Terminals report Ctrl+<letter> as a control key, so both forms match.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl && 'a' <= k.Rune && k.Rune <= 'z' {
		return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
	}
	return false
}
