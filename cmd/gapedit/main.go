// Command gapedit edits one file through a gap buffer, either on a full
// screen or with the single-key line commands (-plain).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"example.com/gapedit/internal/app"
	"example.com/gapedit/internal/terminal"
	"example.com/gapedit/pkg/config"
	"example.com/gapedit/pkg/editor"
	"example.com/gapedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Version information (set via ldflags during build).
var version = "dev"

type options struct {
	ConfigPath  string
	Plain       bool
	ShowVersion bool
	File        string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gapedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (default ~/.gapedit/config.toml)")
	fs.BoolVar(&opts.Plain, "plain", false, "Use the line command loop instead of the full-screen editor")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gapedit [options] <filename>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.ShowVersion {
		return opts, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errors.New("exactly one filename is required")
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.ShowVersion {
		fmt.Printf("gapedit %s\n", version)
		return 0
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logOpts := cfg.Log
	if env := logs.OptionsFromEnv(); env.Enabled {
		logOpts = env
	}
	logger, err := logs.Open(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Close()

	doc, err := editor.Open(opts.File, cfg.MinCapacity, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if opts.Plain {
		err = runPlain(doc, signals)
	} else {
		err = runScreen(doc, cfg, signals)
	}
	if errors.Is(err, app.ErrSaveFailed) {
		// already reported on stderr
		return 1
	}
	if errors.Is(err, app.ErrInterrupted) {
		fmt.Fprintln(os.Stderr, "Interrupted; unsaved changes discarded.")
		return 130
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runScreen(doc *editor.Document, cfg *config.Config, signals <-chan os.Signal) error {
	r := app.New(doc, cfg)
	if err := r.InitScreen(); err != nil {
		return err
	}
	defer r.Fini()
	s := r.Screen
	go func() {
		if sig, ok := <-signals; ok {
			_ = s.PostEvent(tcell.NewEventInterrupt(sig))
		}
	}()
	return r.Run()
}

func runPlain(doc *editor.Document, signals <-chan os.Signal) error {
	raw, err := terminal.Acquire(int(os.Stdin.Fd()))
	if err != nil && !errors.Is(err, terminal.ErrNotTerminal) {
		return err
	}
	defer raw.Release()
	// the session blocks reading stdin, so the signal path finishes up itself
	go func() {
		if _, ok := <-signals; ok {
			interruptPlain(raw, doc.Logger, doc.Path, os.Stderr)
			os.Exit(130)
		}
	}()

	var term app.RawTerminal
	if raw != nil {
		term = raw
	}
	session := app.NewLineSession(doc, os.Stdin, os.Stdout, term)
	session.Err = os.Stderr
	return session.Run()
}

// interruptPlain restores the terminal and flushes the log before exit,
// since os.Exit skips deferred calls.
func interruptPlain(raw *terminal.RawMode, logger *logs.Logger, path string, stderr io.Writer) {
	_ = raw.Release()
	logger.Event("action", map[string]any{"name": "interrupt"})
	logger.Event("run.end", map[string]any{"file": path})
	logger.Close()
	fmt.Fprintln(stderr, "\nInterrupted; unsaved changes discarded.")
}
