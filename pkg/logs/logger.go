package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how much the logger writes.
type Options struct {
	Enabled bool
	File    string
	Level   string
}

// Logger writes JSON lines with a timestamp and event fields.
// A nil or disabled Logger drops everything.
type Logger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	f       *os.File
	enabled bool
}

// OptionsFromEnv reads GAPEDIT_LOG and GAPEDIT_LOG_FILE.
// Logging is enabled when GAPEDIT_LOG is truthy or a file is provided.
func OptionsFromEnv() Options {
	var o Options
	if v := os.Getenv("GAPEDIT_LOG"); v != "" && v != "0" && v != "false" {
		o.Enabled = true
	}
	if lf := os.Getenv("GAPEDIT_LOG_FILE"); lf != "" {
		o.Enabled = true
		o.File = lf
	}
	if lv := os.Getenv("GAPEDIT_LOG_LEVEL"); lv != "" {
		o.Level = lv
	}
	return o
}

// NewFromEnv returns a logger configured from the environment. If the log
// file cannot be opened, logging is disabled silently.
func NewFromEnv() *Logger {
	l, err := Open(OptionsFromEnv())
	if err != nil {
		return &Logger{enabled: false}
	}
	return l
}

// Open returns a logger appending to o.File (./gapedit.log when empty).
func Open(o Options) (*Logger, error) {
	if !o.Enabled {
		return &Logger{enabled: false}, nil
	}
	lf := o.File
	if lf == "" {
		lf = filepath.Join(".", "gapedit.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", lf, err)
	}
	l, err := newLogger(f, o.Level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	l.f = f
	return l, nil
}

// New returns an enabled logger writing to w at info level.
func New(w io.Writer) *Logger {
	l, _ := newLogger(w, "")
	return l
}

func newLogger(w io.Writer, level string) (*Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl, enabled: true}, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Close closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
	l.enabled = false
}

// Event writes an info line with the event name and fields.
// Common fields: key, rune, modifiers, action, cursor, buffer_len, capacity, file.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info().Str("event", event).Fields(fields).Send()
}

// Debug is Event at debug level; used for per-key traces.
func (l *Logger) Debug(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Debug().Str("event", event).Fields(fields).Send()
}

// Error writes an error line for event with err attached.
func (l *Logger) Error(event string, err error, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Error().Str("event", event).Err(err).Fields(fields).Send()
}
