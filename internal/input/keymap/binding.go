package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/trie"
	"github.com/dshills/keychord/internal/input/vim"
)

// Unbind is the action that removes an earlier binding of the same keys.
const Unbind = "<Nop>"

// Binding errors.
var (
	ErrEmptyKeys   = errors.New("empty keys")
	ErrEmptyAction = errors.New("empty action")
	ErrUnknownKind = errors.New("unknown kind")
	ErrUnknownArg  = errors.New("unknown argument kind")
	ErrUnknownFlag = errors.New("unknown flag")
	ErrUnknownMode = errors.New("unknown mode")
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "g g", "<C-w>j", "Ctrl+S"
	Keys string `yaml:"keys" toml:"keys"`

	// Action is the command to execute.
	// Examples: "cursor.down", "editor.delete", "mode.insert"
	Action string `yaml:"action" toml:"action"`

	// Kind is the grammatical role: normal (default), motion, operator,
	// linewise or register.
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty"`

	// Argument declares what follows the keys: motion, character,
	// digraph or cmdline. Empty means none.
	Argument string `yaml:"argument,omitempty" toml:"argument,omitempty"`

	// Flags are capability names, see vim.ParseFlags.
	Flags []string `yaml:"flags,omitempty" toml:"flags,omitempty"`

	// Linewise is the action of the operator repeated on itself ("dd").
	Linewise string `yaml:"linewise,omitempty" toml:"linewise,omitempty"`

	// Description provides documentation for the binding.
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`

	// Category groups bindings for display purposes.
	Category string `yaml:"category,omitempty" toml:"category,omitempty"`
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithKind sets the kind for this binding.
func (b Binding) WithKind(kind vim.Kind) Binding {
	b.Kind = kind.String()
	return b
}

// WithArgument sets the argument kind for this binding.
func (b Binding) WithArgument(arg vim.ArgumentKind) Binding {
	b.Argument = arg.String()
	return b
}

// WithFlags adds capability flags to this binding.
func (b Binding) WithFlags(flags ...string) Binding {
	b.Flags = append(append([]string(nil), b.Flags...), flags...)
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// Parse converts the binding into a key sequence and a trie leaf.
func (b Binding) Parse() ([]key.Event, trie.Node, error) {
	if b.Keys == "" {
		return nil, nil, ErrEmptyKeys
	}
	if b.Action == "" {
		return nil, nil, ErrEmptyAction
	}

	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return nil, nil, err
	}
	if seq.IsEmpty() {
		return nil, nil, ErrEmptyKeys
	}

	kind, ok := vim.ParseKind(b.Kind)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownKind, b.Kind)
	}
	arg, ok := vim.ParseArgumentKind(b.Argument)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownArg, b.Argument)
	}
	flags, bad := vim.ParseFlags(b.Flags)
	if bad != "" {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownFlag, bad)
	}

	if arg == vim.ArgNone {
		return seq.Events, &trie.Command{
			Action:         b.Action,
			Kind:           kind,
			Flags:          flags,
			LinewiseAction: b.Linewise,
		}, nil
	}
	return seq.Events, &trie.Argument{
		Action:         b.Action,
		Kind:           kind,
		Flags:          flags,
		Expect:         arg,
		LinewiseAction: b.Linewise,
	}, nil
}

// ParseError reports a keymap that could not be loaded or built.
type ParseError struct {
	// Source is the keymap name or file.
	Source string

	// Binding is the offending key sequence, if any.
	Binding string

	Err error
}

func (e *ParseError) Error() string {
	if e.Binding != "" {
		return fmt.Sprintf("keymap %s: binding %q: %v", e.Source, e.Binding, e.Err)
	}
	return fmt.Sprintf("keymap %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
