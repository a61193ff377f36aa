package trie

import (
	"errors"
	"fmt"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// Registration errors.
var (
	// ErrEmptySequence is returned for a binding with no keys.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrConflict is returned when a binding is a prefix of another one.
	ErrConflict = errors.New("key sequence conflicts with existing binding")

	// ErrDuplicate is returned when a key sequence is bound twice.
	ErrDuplicate = errors.New("key sequence already bound")

	// ErrArgumentChild is returned when a non-root branch would get a
	// second command-line Argument child.
	ErrArgumentChild = errors.New("branch already has a command-line argument")

	// ErrNotBranch is returned by AllowCount for a prefix that is not an
	// incomplete sequence.
	ErrNotBranch = errors.New("prefix is not a branch")

	// ErrBuilt is returned when a Builder is used after Build.
	ErrBuilt = errors.New("trie already built")
)

// Trie is the read-only command trie. It has one root per mapping mode.
// A Trie is safe for concurrent use by multiple input targets.
type Trie struct {
	roots map[mode.Mapping]*Branch
	size  int
}

// Root returns the root branch for a mapping mode. Modes without bindings
// get an empty branch.
func (t *Trie) Root(m mode.Mapping) *Branch {
	if t != nil {
		if r, ok := t.roots[m]; ok {
			return r
		}
	}
	return newBranch()
}

// Lookup returns the node reached from cursor by ev.
func (t *Trie) Lookup(cursor *Branch, ev key.Event) (Node, bool) {
	return cursor.Child(ev)
}

// Find walks seq from the root of m and returns the node it ends on.
func (t *Trie) Find(m mode.Mapping, seq []key.Event) (Node, bool) {
	var n Node = t.Root(m)
	for _, ev := range seq {
		b, ok := n.(*Branch)
		if !ok {
			return nil, false
		}
		if n, ok = b.Child(ev); !ok {
			return nil, false
		}
	}
	return n, true
}

// Size returns the number of bound sequences across all modes.
func (t *Trie) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Walk calls fn for every bound sequence of m in key order.
func (t *Trie) Walk(m mode.Mapping, fn func(seq []key.Event, n Node)) {
	walk(t.Root(m), nil, fn)
}

func walk(b *Branch, prefix []key.Event, fn func([]key.Event, Node)) {
	for _, ev := range b.Keys() {
		seq := append(append([]key.Event(nil), prefix...), ev)
		n := b.children[ev]
		if child, ok := n.(*Branch); ok {
			walk(child, seq, fn)
			continue
		}
		fn(seq, n)
	}
}

// Builder populates a Trie. It is not safe for concurrent use.
type Builder struct {
	roots map[mode.Mapping]*Branch
	size  int
	built bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{roots: make(map[mode.Mapping]*Branch)}
}

func (b *Builder) root(m mode.Mapping) *Branch {
	r, ok := b.roots[m]
	if !ok {
		r = newBranch()
		b.roots[m] = r
	}
	return r
}

// Add binds seq in mapping mode m to leaf, which must be a *Command or an
// *Argument. Every sequence must be prefix-unique within its mode.
func (b *Builder) Add(m mode.Mapping, seq []key.Event, leaf Node) error {
	if b.built {
		return ErrBuilt
	}
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	switch leaf.(type) {
	case *Command, *Argument:
	default:
		return fmt.Errorf("binding %s in %s: leaf must be a command or argument", key.VimString(seq), m)
	}

	node := b.root(m)

	// Navigate/create path for each key but the last.
	for i, ev := range seq[:len(seq)-1] {
		child, ok := node.children[ev]
		if !ok {
			next := newBranch()
			node.children[ev] = next
			node = next
			continue
		}
		next, ok := child.(*Branch)
		if !ok {
			return fmt.Errorf("%w: %s in %s is shadowed by %s",
				ErrConflict, key.VimString(seq), m, key.VimString(seq[:i+1]))
		}
		node = next
	}

	last := seq[len(seq)-1]
	if existing, ok := node.children[last]; ok {
		if _, isBranch := existing.(*Branch); isBranch {
			return fmt.Errorf("%w: %s in %s is a prefix of longer bindings", ErrConflict, key.VimString(seq), m)
		}
		return fmt.Errorf("%w: %s in %s", ErrDuplicate, key.VimString(seq), m)
	}
	// Roots are never entered as a pending branch, so only nested
	// branches are limited to one command-line argument.
	if a, ok := leaf.(*Argument); ok && a.Expect == vim.ArgCommandLine && len(seq) > 1 {
		if _, has := node.SoleArgument(); has {
			return fmt.Errorf("%w: %s in %s", ErrArgumentChild, key.VimString(seq), m)
		}
	}

	node.children[last] = leaf
	b.size++
	return nil
}

// AllowCount marks the branch reached by prefix in mode m as accepting
// count digits mid-sequence.
func (b *Builder) AllowCount(m mode.Mapping, prefix []key.Event) error {
	if b.built {
		return ErrBuilt
	}
	var n Node = b.root(m)
	for _, ev := range prefix {
		br, _ := n.(*Branch)
		child, ok := br.Child(ev)
		if !ok {
			return fmt.Errorf("%w: %s in %s", ErrNotBranch, key.VimString(prefix), m)
		}
		n = child
	}
	br, ok := n.(*Branch)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrNotBranch, key.VimString(prefix), m)
	}
	br.AllowCount = true
	return nil
}

// Build freezes the builder into a read-only Trie.
func (b *Builder) Build() *Trie {
	b.built = true
	for _, m := range mode.Mappings {
		b.root(m)
	}
	return &Trie{roots: b.roots, size: b.size}
}
