package key

import "strings"

// Modifier is the set of modifier keys held down with a key.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt // Option on macOS
	ModMeta
)

// Has reports whether every modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool { return mod != 0 && m&mod == mod }

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool  { return m.Has(ModMeta) }

// With adds mod to m.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without removes mod from m.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// modifierOrder is the order modifiers are displayed in.
var modifierOrder = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// String joins the held modifiers with "+", as in "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNames accepts both the long names of "Ctrl+S" notation and the
// single letters of Vim's "<C-s>" notation. Vim spells Meta as D.
var modifierNames = map[string]Modifier{
	"ctrl": ModCtrl, "control": ModCtrl, "c": ModCtrl,
	"alt": ModAlt, "option": ModAlt, "a": ModAlt,
	"shift": ModShift, "s": ModShift,
	"meta": ModMeta, "cmd": ModMeta, "super": ModMeta, "m": ModMeta, "d": ModMeta,
}

// ModifierFromName looks up a modifier name case-insensitively. Unknown
// names give ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(name)]
}
