package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
// Events are comparable with == and usable as map keys.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a normalized key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize()
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}.Normalize()
}

// Normalize returns the canonical form of the event.
// Shift is folded into rune case and Shift+Tab becomes Backtab. Ctrl
// combinations use lowercase letters and KeySpace becomes the ' ' rune.
func (e Event) Normalize() Event {
	if e.Key == KeySpace {
		e.Key = KeyRune
		e.Rune = ' '
	}
	if e.Key == KeyTab && e.Modifiers.HasShift() {
		e.Key = KeyBacktab
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.Modifiers.HasCtrl() && unicode.IsLetter(e.Rune) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Ctrl, Alt or Meta is pressed.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
}

// IsSpecial returns true if this is a special (non-character) key.
func (e Event) IsSpecial() bool {
	return e.Key.IsSpecial()
}

// IsCtrl returns true if the event is Ctrl plus the given rune and nothing else.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers == ModCtrl
}

// Digit returns the decimal value of an unmodified digit key.
func (e Event) Digit() (int, bool) {
	if e.Key != KeyRune || e.IsModified() || e.Rune < '0' || e.Rune > '9' {
		return 0, false
	}
	return int(e.Rune - '0'), true
}

// Literal returns the character this key inserts when taken literally.
// Special keys that have a conventional control character (Tab, Enter,
// Backspace) translate to it; Ctrl with a letter or one of "@[\]^_"
// yields the ASCII control code. Navigation and function keys, Escape and
// Alt/Meta combinations have no literal form.
func (e Event) Literal() (rune, bool) {
	switch e.Key {
	case KeyTab:
		if e.Modifiers == ModNone {
			return '\t', true
		}
	case KeyEnter:
		if e.Modifiers == ModNone {
			return '\r', true
		}
	case KeyBackspace:
		if e.Modifiers == ModNone {
			return '\b', true
		}
	case KeyRune:
		if e.Rune == 0 || e.Modifiers.HasAlt() || e.Modifiers.HasMeta() {
			return 0, false
		}
		if !e.Modifiers.HasCtrl() {
			return e.Rune, true
		}
		switch {
		case e.Rune >= 'a' && e.Rune <= 'z':
			return e.Rune - 'a' + 1, true
		case e.Rune >= '[' && e.Rune <= '_':
			return e.Rune - '[' + 0x1b, true
		case e.Rune == '@':
			return 0, false
		}
	}
	return 0, false
}

// String returns a canonical string representation.
// Examples: "a", "C-s", "Enter", "Space"
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && e.Key != KeyRune {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "-")
}

// vimKeyNames holds the Vim notation for special keys that differ from
// Key.String.
var vimKeyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyBacktab:   "S-Tab",
}

// VimString returns a Vim-style string representation.
// Examples: "<Esc>", "<C-s>", "<CR>", "a", "A", "<lt>"
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "D")
	}
	if e.Modifiers.HasShift() && e.Key != KeyRune {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		if name, ok := vimKeyNames[e.Key]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, e.Key.String())
		}
	}
	return "<" + strings.Join(parts, "-") + ">"
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key (with no modifiers).
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
