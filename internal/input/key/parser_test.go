package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
	}{
		{"a", 'a'},
		{"A", 'A'},
		{"1", '1'},
		{"@", '@'},
		{"<", '<'},
		{"é", 'é'},
		{"→", '→'},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != KeyRune {
			t.Errorf("Parse(%q) key = %v, want KeyRune", tt.spec, event.Key)
		}
		if event.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, event.Rune, tt.wantRune)
		}
		if event.Modifiers != ModNone {
			t.Errorf("Parse(%q) modifiers = %v, want none", tt.spec, event.Modifiers)
		}
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey Key
	}{
		{"Enter", KeyEnter},
		{"enter", KeyEnter},
		{"Escape", KeyEscape},
		{"Tab", KeyTab},
		{"Backspace", KeyBackspace},
		{"Delete", KeyDelete},
		{"Up", KeyUp},
		{"PageDown", KeyPageDown},
		{"F1", KeyF1},
		{"F12", KeyF12},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, event.Key, tt.wantKey)
		}
	}
}

func TestParseSpaceIsRune(t *testing.T) {
	for _, spec := range []string{"Space", "<Space>", "<space>"} {
		event, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		if event != NewRuneEvent(' ', ModNone) {
			t.Errorf("Parse(%q) = %#v, want space rune", spec, event)
		}
	}
}

func TestParseModifierStyle(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"Ctrl+S", NewRuneEvent('s', ModCtrl)},
		{"ctrl+s", NewRuneEvent('s', ModCtrl)},
		{"Alt+F4", NewSpecialEvent(KeyF4, ModAlt)},
		{"Ctrl+Shift+P", NewRuneEvent('p', ModCtrl)},
		{"Shift+Tab", NewSpecialEvent(KeyBacktab, ModNone)},
		{"Ctrl+Enter", NewSpecialEvent(KeyEnter, ModCtrl)},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, event, tt.want)
		}
	}
}

func TestParseVimStyle(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"<C-s>", NewRuneEvent('s', ModCtrl)},
		{"<C-S>", NewRuneEvent('s', ModCtrl)},
		{"<A-f>", NewRuneEvent('f', ModAlt)},
		{"<C-[>", NewRuneEvent('[', ModCtrl)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<BS>", NewSpecialEvent(KeyBackspace, ModNone)},
		{"<S-Tab>", NewSpecialEvent(KeyBacktab, ModNone)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<Bar>", NewRuneEvent('|', ModNone)},
		{"<C-k>", NewRuneEvent('k', ModCtrl)},
		{"<D-s>", NewRuneEvent('s', ModMeta)},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, event, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<X-s>", ErrInvalidSpec},
		{"<C-nosuchkey>", ErrInvalidSpec},
		{"Hyper+a", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestParseVimStringRoundTrip(t *testing.T) {
	events := []Event{
		NewRuneEvent('a', ModNone),
		NewRuneEvent('<', ModNone),
		NewRuneEvent(' ', ModNone),
		NewRuneEvent('w', ModCtrl),
		NewRuneEvent('x', ModAlt),
		NewSpecialEvent(KeyEscape, ModNone),
		NewSpecialEvent(KeyEnter, ModNone),
		NewSpecialEvent(KeyBacktab, ModNone),
		NewSpecialEvent(KeyF5, ModCtrl),
	}

	for _, want := range events {
		s := want.VimString()
		got, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %#v, want %#v", s, got, want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("<Bogus-x>")
}
