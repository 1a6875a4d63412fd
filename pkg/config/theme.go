package config

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme represents configurable colors for the text area, status bar and cursor.
type Theme struct {
	TextForeground tcell.Color
	TextBackground tcell.Color

	StatusBackground tcell.Color
	StatusForeground tcell.Color

	CursorText tcell.Color
	CursorBG   tcell.Color

	// Control and non-ASCII bytes are drawn as a placeholder in this color.
	RawByte tcell.Color
}

// DefaultTheme returns the built-in light-on-dark theme.
func DefaultTheme() Theme {
	return Theme{
		TextForeground:   tcell.ColorWhite,
		TextBackground:   tcell.ColorBlack,
		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,
		CursorText:       tcell.ColorBlack,
		CursorBG:         tcell.ColorGreen,
		RawByte:          tcell.ColorGray,
	}
}

// TerminalTheme follows the terminal's own default colors.
func TerminalTheme() Theme {
	return Theme{
		TextForeground:   tcell.ColorDefault,
		TextBackground:   tcell.ColorDefault,
		StatusBackground: tcell.ColorSilver,
		StatusForeground: tcell.ColorBlack,
		CursorText:       tcell.ColorBlack,
		CursorBG:         tcell.ColorTeal,
		RawByte:          tcell.ColorSilver,
	}
}

// ThemeByName returns a builtin theme; "" selects the default.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultTheme(), nil
	case "terminal":
		return TerminalTheme(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// Text is the style for ordinary buffer bytes.
func (t Theme) Text() tcell.Style {
	return tcell.StyleDefault.Foreground(t.TextForeground).Background(t.TextBackground)
}

// Status is the style for the status line.
func (t Theme) Status() tcell.Style {
	return tcell.StyleDefault.Foreground(t.StatusForeground).Background(t.StatusBackground)
}

// Cursor is the style for the cell under the cursor.
func (t Theme) Cursor() tcell.Style {
	return tcell.StyleDefault.Foreground(t.CursorText).Background(t.CursorBG)
}

// Raw is the style for placeholder cells.
func (t Theme) Raw() tcell.Style {
	return tcell.StyleDefault.Foreground(t.RawByte).Background(t.TextBackground)
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
