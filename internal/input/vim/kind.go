package vim

import "strings"

// Kind classifies a bound command by the role it plays in the grammar.
type Kind uint8

const (
	// KindNormal is a self-contained command such as "x" or "p".
	KindNormal Kind = iota

	// KindMotion moves the cursor and can serve as an operator's argument.
	KindMotion

	// KindOperator acts on the range described by a motion argument.
	KindOperator

	// KindLinewise is an operator repeated on itself ("dd", "yy", "cc").
	// It cancels the pending operator and acts on whole lines.
	KindLinewise

	// KindRegister selects the register for the next command (`"x`).
	KindRegister
)

var kindNames = [...]string{
	KindNormal:   "normal",
	KindMotion:   "motion",
	KindOperator: "operator",
	KindLinewise: "linewise",
	KindRegister: "register",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the kind with the given name. The empty string is
// KindNormal.
func ParseKind(name string) (Kind, bool) {
	if name == "" {
		return KindNormal, true
	}
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), true
		}
	}
	return KindNormal, false
}

// ArgumentKind declares what a command expects after its own keys.
type ArgumentKind uint8

const (
	// ArgNone means the command takes no argument.
	ArgNone ArgumentKind = iota

	// ArgMotion means a full motion command follows ("d" then "w").
	ArgMotion

	// ArgCharacter means one literal character follows ("r", "f").
	ArgCharacter

	// ArgDigraph means a two-key digraph composes the character (<C-k>).
	ArgDigraph

	// ArgCommandLine means text is captured by the command-line editor
	// until a completing key ("/", ":").
	ArgCommandLine
)

var argumentKindNames = [...]string{
	ArgNone:        "none",
	ArgMotion:      "motion",
	ArgCharacter:   "character",
	ArgDigraph:     "digraph",
	ArgCommandLine: "cmdline",
}

// String returns the lowercase name of the argument kind.
func (a ArgumentKind) String() string {
	if int(a) < len(argumentKindNames) {
		return argumentKindNames[a]
	}
	return "unknown"
}

// ParseArgumentKind returns the argument kind with the given name.
// "commandline" is accepted as an alias for "cmdline".
func ParseArgumentKind(name string) (ArgumentKind, bool) {
	if name == "" {
		return ArgNone, true
	}
	if strings.EqualFold(name, "commandline") {
		return ArgCommandLine, true
	}
	for i, n := range argumentKindNames {
		if strings.EqualFold(n, name) {
			return ArgumentKind(i), true
		}
	}
	return ArgNone, false
}

// IsLiteral reports whether the argument is a single character.
func (a ArgumentKind) IsLiteral() bool {
	return a == ArgCharacter || a == ArgDigraph
}

// Flags are the named capabilities of a bound command.
type Flags struct {
	// NoArgumentRecording keeps the command's keys out of macro recording.
	NoArgumentRecording bool `yaml:"no_argument_recording,omitempty"`

	// OperatorPendingRequired pushes an operator-pending mode frame while
	// the motion argument is read.
	OperatorPendingRequired bool `yaml:"operator_pending,omitempty"`

	// CompletesCommandLine ends command-line capture and attaches the text.
	CompletesCommandLine bool `yaml:"completes_cmdline,omitempty"`

	// ReplayKey reinterprets the key that matched the command as the first
	// key of its argument.
	ReplayKey bool `yaml:"replay_key,omitempty"`

	// Writes marks commands that modify the document.
	Writes bool `yaml:"writes,omitempty"`
}

// flagNames maps configuration names to setters.
var flagNames = map[string]func(*Flags){
	"no_argument_recording": func(f *Flags) { f.NoArgumentRecording = true },
	"operator_pending":      func(f *Flags) { f.OperatorPendingRequired = true },
	"completes_cmdline":     func(f *Flags) { f.CompletesCommandLine = true },
	"replay_key":            func(f *Flags) { f.ReplayKey = true },
	"writes":                func(f *Flags) { f.Writes = true },
}

// ParseFlags builds Flags from configuration names such as "writes" and
// "operator_pending". It returns the first unknown name, if any.
func ParseFlags(names []string) (Flags, string) {
	var f Flags
	for _, n := range names {
		set, ok := flagNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return f, n
		}
		set(&f)
	}
	return f, ""
}

// Names returns the configuration names of the set flags.
func (f Flags) Names() []string {
	var names []string
	if f.NoArgumentRecording {
		names = append(names, "no_argument_recording")
	}
	if f.OperatorPendingRequired {
		names = append(names, "operator_pending")
	}
	if f.CompletesCommandLine {
		names = append(names, "completes_cmdline")
	}
	if f.ReplayKey {
		names = append(names, "replay_key")
	}
	if f.Writes {
		names = append(names, "writes")
	}
	return names
}
