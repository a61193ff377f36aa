// Package main is the entry point for keychord, a Vim key-dispatch
// workbench.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/keychord/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the flags shared by every subcommand.
type options struct {
	ConfigPath string
	Keymaps    stringList
	LogLevel   string
	Macros     string
	Metrics    bool
	NoDefaults bool
	ReadOnly   bool
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "replay":
		return runReplay(args[1:], stdout, stderr)
	case "run":
		return runInteractive(args[1:], stderr)
	case "version", "-version", "--version", "-v":
		fmt.Fprintf(stdout, "keychord %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	case "help", "-help", "--help", "-h":
		usage(stdout)
		return 0
	}

	fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "keychord - Vim key sequence dispatcher\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  keychord replay [options] <keys>   Resolve a key sequence and print the commands\n")
	fmt.Fprintf(w, "  keychord run [options]             Type keys interactively\n")
	fmt.Fprintf(w, "  keychord version                   Show version information\n")
	fmt.Fprintf(w, "\nRun 'keychord <command> -h' for the options of a command.\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  keychord replay '3c2w'\n")
	fmt.Fprintf(w, "  keychord replay -keymap leader.lua '<Space>w'\n")
	fmt.Fprintf(w, "  keychord run -config ~/.config/keychord/keychord.toml\n")
}

// newFlagSet registers the shared options on a flag set for the named
// subcommand.
func newFlagSet(name string, opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.Var(&opts.Keymaps, "keymap", "Additional keymap file (YAML, TOML or Lua); repeatable")
	fs.Var(&opts.Keymaps, "k", "Additional keymap file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	fs.StringVar(&opts.Macros, "macros", "", "Macro file to load; run saves recorded macros back to it")
	fs.BoolVar(&opts.Metrics, "metrics", false, "Collect dispatch metrics (replay prints them, run shows health)")
	fs.BoolVar(&opts.NoDefaults, "no-defaults", false, "Skip the built-in Vim keymaps")
	fs.BoolVar(&opts.ReadOnly, "readonly", false, "Reject commands that modify the document")
	fs.BoolVar(&opts.ReadOnly, "R", false, "Reject commands that modify the document (shorthand)")
	return fs
}

// validate checks the option values that the flag package cannot.
func (o *options) validate() error {
	switch o.LogLevel {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", o.LogLevel)
}

// loadConfig loads the configuration and applies the command line over it.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.NoDefaults {
		cfg.NoDefaults = true
	}
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exitCode reports err on stderr and returns the process exit code.
func exitCode(stderr io.Writer, err error) int {
	if err == nil || errors.Is(err, errQuit) {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
