package digraph

import "github.com/dshills/keychord/internal/input/key"

// Status is the outcome of feeding one key to a Machine.
type Status uint8

const (
	// NeedMore means the key was swallowed and the machine stays armed.
	NeedMore Status = iota

	// Rejected means the digraph was abandoned and the key dropped.
	Rejected

	// Resolved means a character was composed.
	Resolved
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case NeedMore:
		return "need-more"
	case Rejected:
		return "rejected"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Result is the outcome of Machine.Feed.
type Result struct {
	Status Status

	// Char is the composed character when Status is Resolved.
	Char rune

	// Replay, when non-nil, is a key that did not belong to the digraph
	// and must be dispatched again after Char is consumed.
	Replay *key.Event
}

// StartKey is the key that begins a digraph in insert mode and as a
// character argument.
var StartKey = key.NewRuneEvent('k', key.ModCtrl)

// IsStart reports whether ev begins a digraph.
func IsStart(ev key.Event) bool {
	return ev == StartKey
}

// Machine composes one character from two keys. It is armed explicitly,
// buffers the first key and resolves on the second.
//
// A Machine belongs to a single input target and is not safe for
// concurrent use.
type Machine struct {
	table *Table
	armed bool
	first rune
	has   bool
}

// NewMachine creates a machine that looks digraphs up in table.
func NewMachine(table *Table) *Machine {
	if table == nil {
		table = Default()
	}
	return &Machine{table: table}
}

// SetTable replaces the lookup table.
func (m *Machine) SetTable(table *Table) {
	m.table = table
}

// Arm starts a new digraph, discarding any partial one.
func (m *Machine) Arm() {
	m.armed = true
	m.has = false
	m.first = 0
}

// Active reports whether the machine is armed.
func (m *Machine) Active() bool {
	return m.armed
}

// Reset disarms the machine.
func (m *Machine) Reset() {
	m.armed = false
	m.has = false
	m.first = 0
}

// Feed consumes one key. Escape rejects. The first key must have a literal
// form or the digraph is rejected. When the second key has no literal form
// the first character resolves on its own and the second key is returned
// for replay. An undefined pair resolves to the second character.
func (m *Machine) Feed(ev key.Event) Result {
	if !m.armed {
		return Result{Status: Rejected}
	}
	if ev.IsEscape() {
		m.Reset()
		return Result{Status: Rejected}
	}

	lit, ok := ev.Literal()
	if !m.has {
		if !ok {
			m.Reset()
			return Result{Status: Rejected}
		}
		m.first = lit
		m.has = true
		return Result{Status: NeedMore}
	}

	first := m.first
	m.Reset()
	if !ok {
		replay := ev
		return Result{Status: Resolved, Char: first, Replay: &replay}
	}
	if r, found := m.table.Lookup(first, lit); found {
		return Result{Status: Resolved, Char: r}
	}
	return Result{Status: Resolved, Char: lit}
}
