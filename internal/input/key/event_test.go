package key

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Event
		want Event
	}{
		{"shift folded into rune", Event{Key: KeyRune, Rune: 'A', Modifiers: ModShift}, Event{Key: KeyRune, Rune: 'A'}},
		{"ctrl letter lowercased", Event{Key: KeyRune, Rune: 'W', Modifiers: ModCtrl}, Event{Key: KeyRune, Rune: 'w', Modifiers: ModCtrl}},
		{"space key becomes rune", Event{Key: KeySpace}, Event{Key: KeyRune, Rune: ' '}},
		{"special key drops rune", Event{Key: KeyEnter, Rune: 'x'}, Event{Key: KeyEnter}},
		{"shift tab is backtab", Event{Key: KeyTab, Modifiers: ModShift}, Event{Key: KeyBacktab}},
		{"shift kept on arrows", Event{Key: KeyUp, Modifiers: ModShift}, Event{Key: KeyUp, Modifiers: ModShift}},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%s: Normalize() = %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestEventDigit(t *testing.T) {
	tests := []struct {
		ev     Event
		want   int
		wantOK bool
	}{
		{NewRuneEvent('0', ModNone), 0, true},
		{NewRuneEvent('7', ModNone), 7, true},
		{NewRuneEvent('7', ModCtrl), 0, false},
		{NewRuneEvent('a', ModNone), 0, false},
		{NewSpecialEvent(KeyF1, ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.ev.Digit()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s.Digit() = %d, %v, want %d, %v", tt.ev, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEventLiteral(t *testing.T) {
	tests := []struct {
		ev     Event
		want   rune
		wantOK bool
	}{
		{NewRuneEvent('a', ModNone), 'a', true},
		{NewRuneEvent('é', ModNone), 'é', true},
		{NewSpecialEvent(KeyTab, ModNone), '\t', true},
		{NewSpecialEvent(KeyEnter, ModNone), '\r', true},
		{NewSpecialEvent(KeyBackspace, ModNone), '\b', true},
		{NewRuneEvent('a', ModCtrl), 0x01, true},
		{NewRuneEvent('v', ModCtrl), 0x16, true},
		{NewRuneEvent('[', ModCtrl), 0x1b, true},
		{NewRuneEvent('_', ModCtrl), 0x1f, true},
		{NewRuneEvent('@', ModCtrl), 0, false},
		{NewRuneEvent('a', ModAlt), 0, false},
		{NewSpecialEvent(KeyEscape, ModNone), 0, false},
		{NewSpecialEvent(KeyUp, ModNone), 0, false},
		{NewSpecialEvent(KeyF3, ModNone), 0, false},
		{NewSpecialEvent(KeyEnter, ModCtrl), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.ev.Literal()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s.Literal() = %q, %v, want %q, %v", tt.ev, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('s', ModCtrl), "C-s"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyUp, ModShift), "S-Up"},
		{NewRuneEvent('x', ModCtrl|ModAlt), "C-A-x"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventVimString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModNone), "A"},
		{NewRuneEvent('<', ModNone), "<lt>"},
		{NewRuneEvent(' ', ModNone), "<Space>"},
		{NewRuneEvent('s', ModCtrl), "<C-s>"},
		{NewSpecialEvent(KeyEscape, ModNone), "<Esc>"},
		{NewSpecialEvent(KeyEnter, ModNone), "<CR>"},
		{NewSpecialEvent(KeyBackspace, ModNone), "<BS>"},
		{NewSpecialEvent(KeyF2, ModNone), "<F2>"},
	}

	for _, tt := range tests {
		if got := tt.ev.VimString(); got != tt.want {
			t.Errorf("VimString() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventPredicates(t *testing.T) {
	esc := NewSpecialEvent(KeyEscape, ModNone)
	if !esc.IsEscape() || esc.IsEnter() || !esc.IsSpecial() {
		t.Error("Escape predicates wrong")
	}
	ctrlC := NewRuneEvent('C', ModCtrl)
	if !ctrlC.IsCtrl('c') {
		t.Error("Ctrl-C should match IsCtrl('c')")
	}
	if !ctrlC.IsModified() || !ctrlC.IsChar() {
		t.Error("Ctrl-C should be a modified rune")
	}
	if NewRuneEvent('c', ModNone).IsCtrl('c') {
		t.Error("plain c should not match IsCtrl")
	}
}

func TestEventsAreMapKeys(t *testing.T) {
	m := map[Event]string{
		NewRuneEvent('a', ModNone):          "a",
		NewRuneEvent('a', ModCtrl):          "C-a",
		NewSpecialEvent(KeyEscape, ModNone): "esc",
	}
	if m[MustParse("<C-A>")] != "C-a" {
		t.Error("normalized Ctrl-A should find map entry")
	}
	if m[MustParse("<Esc>")] != "esc" {
		t.Error("Escape should find map entry")
	}
}

func TestModifier(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModShift | ModCtrl, "Ctrl+Shift"},
		{ModMeta | ModAlt | ModCtrl, "Ctrl+Alt+Meta"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}

	if m := ModCtrl.With(ModAlt).Without(ModCtrl); m != ModAlt {
		t.Errorf("With/Without gave %v, want Alt", m)
	}
	for name, want := range map[string]Modifier{"C": ModCtrl, "Control": ModCtrl, "D": ModMeta, "option": ModAlt, "hyper": ModNone} {
		if got := ModifierFromName(name); got != want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", name, got, want)
		}
	}
}
