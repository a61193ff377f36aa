package key

import (
	"errors"
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseSequenceContinuous(t *testing.T) {
	tests := []struct {
		input string
		want  []Event
	}{
		{"dd", []Event{NewRuneEvent('d', ModNone), NewRuneEvent('d', ModNone)}},
		{"3c2w", []Event{
			NewRuneEvent('3', ModNone), NewRuneEvent('c', ModNone),
			NewRuneEvent('2', ModNone), NewRuneEvent('w', ModNone),
		}},
		{"<C-x><C-s>", []Event{NewRuneEvent('x', ModCtrl), NewRuneEvent('s', ModCtrl)}},
		{"i<C-k>e:<Esc>", []Event{
			NewRuneEvent('i', ModNone), NewRuneEvent('k', ModCtrl),
			NewRuneEvent('e', ModNone), NewRuneEvent(':', ModNone),
			NewSpecialEvent(KeyEscape, ModNone),
		}},
		{"ré", []Event{NewRuneEvent('r', ModNone), NewRuneEvent('é', ModNone)}},
		{"f<", []Event{NewRuneEvent('f', ModNone), NewRuneEvent('<', ModNone)}},
		{":w<CR>", []Event{
			NewRuneEvent(':', ModNone), NewRuneEvent('w', ModNone),
			NewSpecialEvent(KeyEnter, ModNone),
		}},
	}

	for _, tt := range tests {
		seq, err := ParseSequence(tt.input)
		if err != nil {
			t.Errorf("ParseSequence(%q) error = %v", tt.input, err)
			continue
		}
		if len(seq.Events) != len(tt.want) {
			t.Errorf("ParseSequence(%q) len = %d, want %d", tt.input, len(seq.Events), len(tt.want))
			continue
		}
		for i, e := range tt.want {
			if seq.Events[i] != e {
				t.Errorf("ParseSequence(%q)[%d] = %#v, want %#v", tt.input, i, seq.Events[i], e)
			}
		}
	}
}

func TestParseSequenceSpaceSeparated(t *testing.T) {
	seq, err := ParseSequence("g g")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	if seq.VimString() != "gg" {
		t.Errorf("VimString() = %q, want %q", seq.VimString(), "gg")
	}
	if seq.String() != "g g" {
		t.Errorf("String() = %q, want %q", seq.String(), "g g")
	}

	seq, err = ParseSequence("Ctrl+w j")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	if seq.VimString() != "<C-w>j" {
		t.Errorf("VimString() = %q, want %q", seq.VimString(), "<C-w>j")
	}
}

func TestParseSequenceErrors(t *testing.T) {
	if _, err := ParseSequence("a<X-q>b"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("ParseSequence error = %v, want ErrInvalidSpec", err)
	}
	seq, err := ParseSequence("")
	if err != nil || !seq.IsEmpty() {
		t.Errorf("ParseSequence(\"\") = %v, %v, want empty", seq, err)
	}
}

func TestSequenceVimStringRoundTrip(t *testing.T) {
	inputs := []string{"dd", "3c2w", "<C-w>j", "f<lt>", "i<C-k>a:<Esc>", "\"ayy", ":s/x/y<CR>"}
	for _, in := range inputs {
		seq := MustParseSequence(in)
		again, err := ParseSequence(seq.VimString())
		if err != nil {
			t.Errorf("reparse %q error = %v", seq.VimString(), err)
			continue
		}
		if !slices.Equal(seq.Events, again.Events) {
			t.Errorf("round trip of %q gave %q", in, again.VimString())
		}
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), NewRuneEvent('x', ModNone)},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), NewRuneEvent('X', ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModAlt), NewRuneEvent('f', ModAlt)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), NewSpecialEvent(KeyEscape, ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), NewSpecialEvent(KeyEnter, ModNone)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), NewSpecialEvent(KeyBackspace, ModNone)},
		{"ctrl-k", tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl), NewRuneEvent('k', ModCtrl)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), NewRuneEvent('c', ModCtrl)},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), NewSpecialEvent(KeyUp, ModNone)},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), NewSpecialEvent(KeyF5, ModNone)},
	}

	for _, tt := range tests {
		if got := FromTcell(tt.ev); got != tt.want {
			t.Errorf("%s: FromTcell() = %#v, want %#v", tt.name, got, tt.want)
		}
	}
}
