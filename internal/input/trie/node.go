package trie

import (
	"sort"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/vim"
)

// Node is a trie node: *Branch, *Command or *Argument.
type Node interface {
	node()
}

// Branch is an incomplete key sequence.
type Branch struct {
	children map[key.Event]Node

	// AllowCount lets digits typed inside this branch fold into the count
	// instead of being looked up as keys.
	AllowCount bool
}

// Command is a complete key sequence bound to a command.
type Command struct {
	Action string
	Kind   vim.Kind
	Flags  vim.Flags

	// LinewiseAction is set on operators; see vim.Operator.
	LinewiseAction string
}

// Argument is a complete key sequence bound to a command that reads an
// argument of kind Expect after its keys.
type Argument struct {
	Action string
	Kind   vim.Kind
	Flags  vim.Flags
	Expect vim.ArgumentKind

	// LinewiseAction is set on operators; see vim.Operator.
	LinewiseAction string
}

func (*Branch) node()   {}
func (*Command) node()  {}
func (*Argument) node() {}

func newBranch() *Branch {
	return &Branch{children: make(map[key.Event]Node)}
}

// Child returns the node reached from b by ev.
func (b *Branch) Child(ev key.Event) (Node, bool) {
	if b == nil {
		return nil, false
	}
	n, ok := b.children[ev]
	return n, ok
}

// Len returns the number of children.
func (b *Branch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.children)
}

// SoleArgument returns the branch's command-line Argument child, if it
// has one. At most one such child exists per branch.
func (b *Branch) SoleArgument() (*Argument, bool) {
	if b == nil {
		return nil, false
	}
	for _, n := range b.children {
		if a, ok := n.(*Argument); ok && a.Expect == vim.ArgCommandLine {
			return a, true
		}
	}
	return nil, false
}

// Keys returns the child edge labels in a stable order.
func (b *Branch) Keys() []key.Event {
	if b == nil {
		return nil
	}
	keys := make([]key.Event, 0, len(b.children))
	for ev := range b.children {
		keys = append(keys, ev)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].VimString() < keys[j].VimString()
	})
	return keys
}

// Descriptor instantiates a command descriptor for a leaf node. It returns
// nil for branches.
func Descriptor(n Node) *vim.Descriptor {
	switch n := n.(type) {
	case *Command:
		return &vim.Descriptor{
			Action:         n.Action,
			Kind:           n.Kind,
			Flags:          n.Flags,
			LinewiseAction: n.LinewiseAction,
		}
	case *Argument:
		return &vim.Descriptor{
			Action:         n.Action,
			Kind:           n.Kind,
			Flags:          n.Flags,
			Expect:         n.Expect,
			LinewiseAction: n.LinewiseAction,
		}
	}
	return nil
}
