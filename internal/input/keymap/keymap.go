package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/trie"
)

// Keymap holds key bindings for one mapping mode.
type Keymap struct {
	// Name is the keymap identifier.
	Name string `yaml:"name" toml:"name"`

	// Mode is the mapping mode: normal, visual, operator-pending,
	// insert or command.
	Mode string `yaml:"mode" toml:"mode"`

	// Priority orders keymaps when building; higher priority keymaps are
	// applied later and override bindings of the same keys.
	Priority int `yaml:"priority,omitempty" toml:"priority,omitempty"`

	// Source indicates where this keymap was defined.
	// Examples: "default", "user.yaml", "init.lua"
	Source string `yaml:"-" toml:"-"`

	// CountPrefixes are incomplete sequences inside which digits still
	// count, e.g. "<C-w>" for "<C-w>3j".
	CountPrefixes []string `yaml:"count_prefixes,omitempty" toml:"count_prefixes,omitempty"`

	// Bindings are the key-to-command mappings.
	Bindings []Binding `yaml:"bindings" toml:"bindings"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// ForMode sets the mapping mode for this keymap.
func (k *Keymap) ForMode(m mode.Mapping) *Keymap {
	k.Mode = m.String()
	return k
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a plain binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// AllowCount marks an incomplete sequence as accepting count digits.
func (k *Keymap) AllowCount(prefix string) *Keymap {
	k.CountPrefixes = append(k.CountPrefixes, prefix)
	return k
}

// Mapping returns the parsed mapping mode.
func (k *Keymap) Mapping() (mode.Mapping, error) {
	m, ok := mode.ParseMapping(k.Mode)
	if !ok {
		return m, fmt.Errorf("%w %q", ErrUnknownMode, k.Mode)
	}
	return m, nil
}

func (k *Keymap) source() string {
	if k.Source != "" && k.Source != k.Name {
		return k.Name + " (" + k.Source + ")"
	}
	return k.Name
}

// Validate checks that the mode and every binding parse.
func (k *Keymap) Validate() error {
	if _, err := k.Mapping(); err != nil {
		return &ParseError{Source: k.source(), Err: err}
	}
	for _, b := range k.Bindings {
		if b.Action == Unbind {
			continue
		}
		if _, _, err := b.Parse(); err != nil {
			return &ParseError{Source: k.source(), Binding: b.Keys, Err: err}
		}
	}
	return nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.CountPrefixes = append([]string(nil), k.CountPrefixes...)
	clone.Bindings = make([]Binding, len(k.Bindings))
	for i, b := range k.Bindings {
		b.Flags = append([]string(nil), b.Flags...)
		clone.Bindings[i] = b
	}
	return &clone
}

type slot struct {
	mapping mode.Mapping
	keys    string
}

type entry struct {
	slot
	seq    []key.Event
	leaf   trie.Node
	source string
}

// Build registers keymaps into a new command trie. Keymaps are applied in
// ascending priority, stable within equal priority; a later binding of the
// same keys in the same mode replaces an earlier one, and the Unbind
// action removes it.
func Build(keymaps ...*Keymap) (*trie.Trie, error) {
	ordered := make([]*Keymap, 0, len(keymaps))
	for _, km := range keymaps {
		if km != nil {
			ordered = append(ordered, km)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	var entries []*entry
	index := make(map[slot]int)

	for _, km := range ordered {
		m, err := km.Mapping()
		if err != nil {
			return nil, &ParseError{Source: km.source(), Err: err}
		}
		for _, b := range km.Bindings {
			if b.Action == Unbind {
				seq, err := key.ParseSequence(b.Keys)
				if err != nil {
					return nil, &ParseError{Source: km.source(), Binding: b.Keys, Err: err}
				}
				if i, ok := index[slot{m, key.VimString(seq.Events)}]; ok {
					entries[i] = nil
				}
				continue
			}

			seq, leaf, err := b.Parse()
			if err != nil {
				return nil, &ParseError{Source: km.source(), Binding: b.Keys, Err: err}
			}
			e := &entry{slot: slot{m, key.VimString(seq)}, seq: seq, leaf: leaf, source: km.source()}
			if i, ok := index[e.slot]; ok && entries[i] != nil {
				entries[i] = e
				continue
			}
			index[e.slot] = len(entries)
			entries = append(entries, e)
		}
	}

	builder := trie.NewBuilder()
	for _, e := range entries {
		if e == nil {
			continue
		}
		if err := builder.Add(e.mapping, e.seq, e.leaf); err != nil {
			return nil, &ParseError{Source: e.source, Binding: e.keys, Err: err}
		}
	}

	for _, km := range ordered {
		m, _ := km.Mapping()
		for _, p := range km.CountPrefixes {
			seq, err := key.ParseSequence(p)
			if err != nil {
				return nil, &ParseError{Source: km.source(), Binding: p, Err: err}
			}
			if err := builder.AllowCount(m, seq.Events); err != nil {
				return nil, &ParseError{Source: km.source(), Binding: p, Err: err}
			}
		}
	}

	return builder.Build(), nil
}

// Actions returns the sorted, de-duplicated action identifiers that the
// keymaps refer to, including linewise operator actions.
func Actions(keymaps ...*Keymap) []string {
	seen := make(map[string]bool)
	for _, km := range keymaps {
		if km == nil {
			continue
		}
		for _, b := range km.Bindings {
			if b.Action != "" && b.Action != Unbind {
				seen[b.Action] = true
			}
			if b.Linewise != "" {
				seen[b.Linewise] = true
			}
		}
	}
	actions := make([]string, 0, len(seen))
	for a := range seen {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return actions
}
