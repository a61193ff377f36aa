package vim

import (
	"fmt"
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// DefaultRegister is the register used when none was selected.
const DefaultRegister = '"'

// Descriptor is a resolved or partially built command.
type Descriptor struct {
	// Count is the typed count; 0 means unspecified.
	Count int

	// Register is the selected register, 0 for the default register.
	Register rune

	// Action is the bound action identifier.
	Action string

	// Kind is the grammatical role of the command.
	Kind Kind

	// Flags are the command's capabilities.
	Flags Flags

	// Expect is the argument kind the command declared, ArgNone for
	// plain commands.
	Expect ArgumentKind

	// LinewiseAction is the action bound to the operator repeated on
	// itself, for operators only.
	LinewiseAction string

	// Argument is the attached argument, nil until one is read.
	Argument Argument

	// Keys are the key events consumed for this command, including its
	// count digits.
	Keys []key.Event
}

// EffectiveCount returns the count with unspecified resolved to 1.
func (d *Descriptor) EffectiveCount() int {
	if d.Count <= 0 {
		return 1
	}
	return d.Count
}

// HasCount reports whether a count was typed.
func (d *Descriptor) HasCount() bool {
	return d.Count > 0
}

// EffectiveRegister returns the selected register or DefaultRegister.
func (d *Descriptor) EffectiveRegister() rune {
	if d.Register == 0 {
		return DefaultRegister
	}
	return d.Register
}

// Motion returns the nested motion descriptor, or nil.
func (d *Descriptor) Motion() *Descriptor {
	if m, ok := d.Argument.(MotionArgument); ok {
		return m.Descriptor
	}
	return nil
}

// Character returns the character argument.
func (d *Descriptor) Character() (rune, bool) {
	if c, ok := d.Argument.(CharacterArgument); ok {
		return c.Char, true
	}
	return 0, false
}

// Text returns the command-line text argument.
func (d *Descriptor) Text() (string, bool) {
	if c, ok := d.Argument.(CommandLineArgument); ok {
		return c.Text, true
	}
	return "", false
}

// Writes reports whether the command or its motion modifies the document.
func (d *Descriptor) Writes() bool {
	if d.Flags.Writes {
		return true
	}
	if m := d.Motion(); m != nil {
		return m.Writes()
	}
	return false
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	c.Keys = append([]key.Event(nil), d.Keys...)
	if m, ok := d.Argument.(MotionArgument); ok {
		c.Argument = MotionArgument{Descriptor: m.Descriptor.Clone()}
	}
	return &c
}

// String renders the descriptor compactly, for logs.
// Example: `delete{count=_ keys=d2w motion=cursor.wordForward{count=2}}`
func (d *Descriptor) String() string {
	var sb strings.Builder
	sb.WriteString(d.Action)
	sb.WriteString("{count=")
	if d.HasCount() {
		fmt.Fprintf(&sb, "%d", d.Count)
	} else {
		sb.WriteString("_")
	}
	if d.Register != 0 {
		fmt.Fprintf(&sb, " register=%c", d.Register)
	}
	if len(d.Keys) > 0 {
		sb.WriteString(" keys=")
		sb.WriteString(key.VimString(d.Keys))
	}
	switch a := d.Argument.(type) {
	case MotionArgument:
		sb.WriteString(" motion=")
		sb.WriteString(a.Descriptor.String())
	case CharacterArgument:
		fmt.Fprintf(&sb, " char=%q", a.Char)
	case CommandLineArgument:
		fmt.Fprintf(&sb, " text=%q", a.Text)
	}
	sb.WriteString("}")
	return sb.String()
}

// Argument is the value attached to a command that declared an argument.
// It is one of CharacterArgument, MotionArgument or CommandLineArgument.
type Argument interface {
	Kind() ArgumentKind
	isArgument()
}

// CharacterArgument is a single literal character.
type CharacterArgument struct {
	Char rune
}

// MotionArgument nests a complete motion command, including its count.
type MotionArgument struct {
	Descriptor *Descriptor
}

// CommandLineArgument is text captured by the command-line editor.
type CommandLineArgument struct {
	Text string
}

func (CharacterArgument) Kind() ArgumentKind   { return ArgCharacter }
func (MotionArgument) Kind() ArgumentKind      { return ArgMotion }
func (CommandLineArgument) Kind() ArgumentKind { return ArgCommandLine }

func (CharacterArgument) isArgument()   {}
func (MotionArgument) isArgument()      {}
func (CommandLineArgument) isArgument() {}

// MergeMotion attaches motion as the argument of op and applies the count
// algebra. When neither has a count both stay unspecified. Otherwise the
// motion receives the product of both effective counts and the operator's
// count is cleared, so "3c2w" becomes a change over 6 words.
func MergeMotion(op, motion *Descriptor) *Descriptor {
	out := *op
	m := *motion
	if op.HasCount() || motion.HasCount() {
		m.Count = CombineCounts(op.Count, motion.Count)
		out.Count = 0
	}
	out.Argument = MotionArgument{Descriptor: &m}
	return &out
}
