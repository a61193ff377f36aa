package input

import (
	"sort"
	"unicode/utf8"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/vim"
)

// ActionFunc executes a resolved command against a target.
type ActionFunc func(d *vim.Descriptor, t *Target) error

// ActionRegistry resolves action identifiers. A binding whose action does
// not resolve is a configuration error.
type ActionRegistry interface {
	Resolve(action string) (ActionFunc, bool)
}

// Executor runs a resolved command. It may change the target's mode; the
// dispatcher reads the mode stack again after Execute returns.
type Executor interface {
	Execute(d *vim.Descriptor, t *Target) error
}

// LiteralHandler inserts or overwrites one character in Insert and
// Replace mode. It reports whether the character was accepted.
type LiteralHandler interface {
	InsertOrReplace(ch rune, t *Target) bool
}

// CommandLineEditor accumulates command-line text while a command waits
// for a command-line argument.
type CommandLineEditor interface {
	BeginCapture(t *Target)
	Input(ev key.Event, t *Target)
	EndCapture(t *Target) string
}

// Recorder receives the keys of completed, failed and fallback-handled
// input while a macro is being recorded. *macro.Recorder implements it.
type Recorder interface {
	IsRecording() bool
	Record(ev key.Event)
}

// Options is a read-only boolean option lookup.
type Options interface {
	Bool(name string) bool
}

// Host receives the side effects the dispatcher requests outside of
// command execution.
type Host interface {
	// CancelEdit is requested for a cancel key in Normal or Visual mode
	// with nothing pending.
	CancelEdit(t *Target)

	// IndicateError is requested after a malformed sequence. Configuration
	// errors satisfy IsConfigError.
	IndicateError(t *Target, err error)
}

// OptionDigraph enables erase-then-character digraph composition in
// Insert and Replace mode.
const OptionDigraph = "digraph"

// ActionSet is a map-backed ActionRegistry and Executor. An action
// registered with a nil function resolves but does nothing.
type ActionSet map[string]ActionFunc

// NewActionSet registers the given action identifiers without handlers.
func NewActionSet(actions ...string) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a] = nil
	}
	return s
}

// Handle registers fn for action.
func (s ActionSet) Handle(action string, fn ActionFunc) {
	s[action] = fn
}

// Resolve implements ActionRegistry.
func (s ActionSet) Resolve(action string) (ActionFunc, bool) {
	fn, ok := s[action]
	return fn, ok
}

// Execute implements Executor by running the handler of d.Action.
func (s ActionSet) Execute(d *vim.Descriptor, t *Target) error {
	fn, ok := s[d.Action]
	if !ok {
		return &ConfigError{Action: d.Action, Keys: key.VimString(d.Keys)}
	}
	if fn == nil {
		return nil
	}
	return fn(d, t)
}

// Actions returns the registered action identifiers, sorted.
func (s ActionSet) Actions() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// OptionSet is a map-backed Options.
type OptionSet map[string]bool

// Bool implements Options.
func (o OptionSet) Bool(name string) bool {
	return o[name]
}

// LineEditor is a minimal CommandLineEditor keeping one line of text per
// target. It understands Backspace, Ctrl-U and Ctrl-W.
type LineEditor struct {
	lines map[*Target][]rune
}

// NewLineEditor creates an empty line editor.
func NewLineEditor() *LineEditor {
	return &LineEditor{lines: make(map[*Target][]rune)}
}

// BeginCapture starts an empty line for t.
func (e *LineEditor) BeginCapture(t *Target) {
	e.lines[t] = []rune{}
}

// Input edits t's line.
func (e *LineEditor) Input(ev key.Event, t *Target) {
	line, ok := e.lines[t]
	if !ok {
		return
	}
	switch {
	case ev.Key == key.KeyBackspace:
		if len(line) > 0 {
			line = line[:len(line)-1]
		}
	case ev.IsCtrl('u'):
		line = line[:0]
	case ev.IsCtrl('w'):
		line = trimLastWord(line)
	default:
		if r, ok := ev.Literal(); ok && utf8.ValidRune(r) {
			line = append(line, r)
		}
	}
	e.lines[t] = line
}

// EndCapture returns and forgets t's line.
func (e *LineEditor) EndCapture(t *Target) string {
	line := e.lines[t]
	delete(e.lines, t)
	return string(line)
}

// Text returns t's line while it is being captured.
func (e *LineEditor) Text(t *Target) (string, bool) {
	line, ok := e.lines[t]
	return string(line), ok
}

func trimLastWord(line []rune) []rune {
	i := len(line)
	for i > 0 && line[i-1] == ' ' {
		i--
	}
	for i > 0 && line[i-1] != ' ' {
		i--
	}
	return line[:i]
}

type nopHost struct{}

func (nopHost) CancelEdit(*Target)           {}
func (nopHost) IndicateError(*Target, error) {}

type nopLiteral struct{}

func (nopLiteral) InsertOrReplace(rune, *Target) bool { return true }

type nopExecutor struct{}

func (nopExecutor) Execute(*vim.Descriptor, *Target) error { return nil }
