package input

import (
	"github.com/dshills/keychord/internal/input/digraph"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/trie"
	"github.com/dshills/keychord/internal/input/vim"
)

// maxPending is the depth of the pending stack: a command and the motion
// it is waiting for.
const maxPending = 2

// State is the dispatcher state of a target between key events.
type State uint8

const (
	// AwaitingCommand means the next key is looked up as (part of) a command.
	AwaitingCommand State = iota

	// AwaitingArgument means the pending command still needs its argument.
	AwaitingArgument

	// Ready means a command resolved. It is transient: the command runs
	// and the target returns to AwaitingCommand within the same event.
	Ready

	// Malformed means the sequence was rejected. It is transient like Ready.
	Malformed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AwaitingCommand:
		return "awaiting-command"
	case AwaitingArgument:
		return "awaiting-argument"
	case Ready:
		return "ready"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// accumulator holds one target's partially typed command.
type accumulator struct {
	count    vim.CountState
	register rune

	// preCount is a count typed before a register prefix. It multiplies
	// the count of the command that follows the prefix.
	preCount int
	expect   vim.ArgumentKind
	pending  []*vim.Descriptor
	cursor   *trie.Branch // nil is the root of the current mapping
	digraph  *digraph.Machine

	// keys are the keys consumed since the last reset. mark is where the
	// keys of the next pushed descriptor begin.
	keys []key.Event
	mark int

	// branchAt is where the keys of the current trie branch begin.
	branchAt int

	// record holds the consumed keys that were typed rather than replayed.
	record []key.Event

	// pushed counts mode frames pushed for the pending command.
	pushed    int
	capturing bool

	// Insert-mode erase tracking. Not cleared by reset.
	lastWasErase bool
	lastErased   rune
	lastInserted rune
}

func newAccumulator(table *digraph.Table) accumulator {
	return accumulator{digraph: digraph.NewMachine(table)}
}

// empty reports whether nothing has been typed since the last reset.
func (a *accumulator) empty() bool {
	return len(a.keys) == 0 && len(a.pending) == 0 && !a.count.Active &&
		a.register == 0 && a.cursor == nil && !a.digraph.Active()
}

// consume appends a key. Replayed keys are not recorded again.
func (a *accumulator) consume(ev key.Event, replayed bool) {
	a.keys = append(a.keys, ev)
	if !replayed {
		a.record = append(a.record, ev)
	}
}

// top returns the innermost pending descriptor.
func (a *accumulator) top() *vim.Descriptor {
	if len(a.pending) == 0 {
		return nil
	}
	return a.pending[len(a.pending)-1]
}

// push adds d with the keys consumed since the previous push, the typed
// count, and the selected register when d is the outermost command.
func (a *accumulator) push(d *vim.Descriptor) {
	d.Count = a.count.Raw()
	d.Keys = append([]key.Event(nil), a.keys[a.mark:]...)
	if len(a.pending) == 0 {
		if a.preCount != 0 {
			d.Count = vim.CombineCounts(a.preCount, d.Count)
			a.preCount = 0
		}
		if a.register != 0 {
			d.Register = a.register
		}
	}
	a.pending = append(a.pending, d)
	a.mark = len(a.keys)
	a.count.Reset()
	a.cursor = nil
}

// pop removes the innermost descriptor.
func (a *accumulator) pop() *vim.Descriptor {
	d := a.top()
	if d != nil {
		a.pending = a.pending[:len(a.pending)-1]
	}
	return d
}

// noRecording reports whether a pending command keeps its keys out of
// macro recording.
func (a *accumulator) noRecording() bool {
	for _, d := range a.pending {
		if d.Flags.NoArgumentRecording {
			return true
		}
	}
	return false
}

// resolve folds the pending stack into a single descriptor.
func (a *accumulator) resolve() *vim.Descriptor {
	top := a.top()
	top.Keys = append(top.Keys, a.keys[a.mark:]...)
	a.mark = len(a.keys)
	for len(a.pending) > 1 {
		motion := a.pop()
		a.pending[len(a.pending)-1] = vim.MergeMotion(a.top(), motion)
	}
	return a.top()
}

// reset empties the accumulator. Mode frames and command-line capture are
// unwound by the dispatcher before calling it.
func (a *accumulator) reset() {
	a.count.Reset()
	a.register = 0
	a.preCount = 0
	a.expect = vim.ArgNone
	a.pending = a.pending[:0]
	a.cursor = nil
	a.digraph.Reset()
	a.keys = nil
	a.mark = 0
	a.branchAt = 0
	a.record = nil
	a.pushed = 0
	a.capturing = false
}
