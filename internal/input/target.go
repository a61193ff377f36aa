package input

import (
	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/input/digraph"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// Target is one logical input target, such as a document view. It owns the
// mode stack and the partially typed command. A Target must only be used
// from one goroutine at a time.
type Target struct {
	id         uuid.UUID
	name       string
	modes      *mode.Stack
	acc        accumulator
	readOnly   bool
	generation uint64
}

// NewTarget creates a target in Normal mode.
func NewTarget(name string) *Target {
	return &Target{
		id:    uuid.New(),
		name:  name,
		modes: mode.NewStack(mode.NewFrame(mode.Normal)),
		acc:   newAccumulator(nil),
	}
}

// ID returns the target's unique identifier.
func (t *Target) ID() uuid.UUID { return t.id }

// Name returns the name given at creation.
func (t *Target) Name() string { return t.name }

// Modes returns the target's mode stack.
func (t *Target) Modes() *mode.Stack { return t.modes }

// Mode returns the active mode frame.
func (t *Target) Mode() mode.Frame { return t.modes.Top() }

// SetReadOnly marks the target as non-editable. Commands flagged as
// writing are then rejected.
func (t *Target) SetReadOnly(readOnly bool) { t.readOnly = readOnly }

// ReadOnly reports whether the target is non-editable.
func (t *Target) ReadOnly() bool { return t.readOnly }

// State returns AwaitingArgument while the pending command needs an
// argument and AwaitingCommand otherwise.
func (t *Target) State() State {
	if t.acc.expect != vim.ArgNone || t.acc.digraph.Active() {
		return AwaitingArgument
	}
	return AwaitingCommand
}

// Expecting returns the argument kind the pending command waits for.
func (t *Target) Expecting() vim.ArgumentKind { return t.acc.expect }

// Idle reports whether nothing is pending.
func (t *Target) Idle() bool { return t.acc.empty() }

// PendingKeys returns the keys of the partially typed command in Vim
// notation, for display.
func (t *Target) PendingKeys() string { return key.VimString(t.acc.keys) }

// Count returns the count typed so far and whether one was typed. A count
// typed before a register prefix is included.
func (t *Target) Count() (int, bool) {
	a := &t.acc
	if a.preCount != 0 {
		return vim.CombineCounts(a.preCount, a.count.Raw()), true
	}
	return a.count.Raw(), a.count.Active
}

// Register returns the register selected for the pending command, or 0.
func (t *Target) Register() rune { return t.acc.register }

// Pending returns copies of the pending descriptors, outermost first.
func (t *Target) Pending() []*vim.Descriptor {
	out := make([]*vim.Descriptor, len(t.acc.pending))
	for i, d := range t.acc.pending {
		out[i] = d.Clone()
	}
	return out
}

func (t *Target) setDigraphs(table *digraph.Table) {
	t.acc.digraph.SetTable(table)
}
