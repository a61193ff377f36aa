package vim

import (
	"testing"

	"github.com/dshills/keychord/internal/input/key"
)

func TestCountState(t *testing.T) {
	var c CountState

	if c.Fold(0) {
		t.Error("leading zero should not start a count")
	}
	if c.Active {
		t.Error("count should be inactive after refused zero")
	}

	for _, d := range []int{1, 0, 5} {
		if !c.Fold(d) {
			t.Errorf("Fold(%d) refused", d)
		}
	}
	if c.Raw() != 105 {
		t.Errorf("Raw() = %d, want 105", c.Raw())
	}

	c.Erase()
	if c.Raw() != 10 {
		t.Errorf("after erase Raw() = %d, want 10", c.Raw())
	}
	c.Erase()
	c.Erase()
	if c.Active || c.Raw() != 0 || c.Get() != 1 {
		t.Errorf("erasing every digit should leave count unspecified, got %+v", c)
	}
	if c.Erase() {
		t.Error("Erase on empty count should report false")
	}

	c.Reset()
	if c.Fold(10) {
		t.Error("Fold should refuse values above 9")
	}
}

func TestCountStateSaturates(t *testing.T) {
	var c CountState
	for i := 0; i < 30; i++ {
		c.Fold(9)
	}
	if c.Value != MaxCount {
		t.Errorf("Value = %d, want %d", c.Value, MaxCount)
	}
}

func TestCombineCounts(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 0, 1},
		{3, 0, 3},
		{0, 2, 2},
		{3, 2, 6},
		{MaxCount, 2, MaxCount},
	}
	for _, tt := range tests {
		if got := CombineCounts(tt.a, tt.b); got != tt.want {
			t.Errorf("CombineCounts(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMergeMotion(t *testing.T) {
	tests := []struct {
		name           string
		opCount        int
		motionCount    int
		wantOuter      int
		wantMotion     int
		wantMotionRead int
	}{
		{"no counts", 0, 0, 0, 0, 1},
		{"outer only", 3, 0, 0, 3, 3},
		{"motion only", 0, 2, 0, 2, 2},
		{"both multiply", 3, 2, 0, 6, 6},
	}

	for _, tt := range tests {
		op := &Descriptor{Action: "editor.change", Kind: KindOperator, Count: tt.opCount}
		motion := &Descriptor{Action: "cursor.wordForward", Kind: KindMotion, Count: tt.motionCount}

		got := MergeMotion(op, motion)
		if got.Count != tt.wantOuter {
			t.Errorf("%s: outer count = %d, want %d", tt.name, got.Count, tt.wantOuter)
		}
		m := got.Motion()
		if m == nil {
			t.Fatalf("%s: merged descriptor has no motion", tt.name)
		}
		if m.Count != tt.wantMotion {
			t.Errorf("%s: motion count = %d, want %d", tt.name, m.Count, tt.wantMotion)
		}
		if m.EffectiveCount() != tt.wantMotionRead {
			t.Errorf("%s: motion effective count = %d, want %d", tt.name, m.EffectiveCount(), tt.wantMotionRead)
		}
		if op.Argument != nil || motion.Count != tt.motionCount {
			t.Errorf("%s: MergeMotion mutated its inputs", tt.name)
		}
	}
}

func TestDescriptorAccessors(t *testing.T) {
	d := &Descriptor{Action: "editor.replaceChar", Argument: CharacterArgument{Char: 'x'}}
	if c, ok := d.Character(); !ok || c != 'x' {
		t.Errorf("Character() = %q, %v", c, ok)
	}
	if _, ok := d.Text(); ok {
		t.Error("Text() should be absent")
	}
	if d.EffectiveRegister() != DefaultRegister {
		t.Errorf("EffectiveRegister() = %q", d.EffectiveRegister())
	}

	op := &Descriptor{Action: "editor.delete", Keys: key.Events("d")}
	motion := &Descriptor{Action: "cursor.wordForward", Count: 2, Keys: key.Events("2w")}
	merged := MergeMotion(op, motion)

	clone := merged.Clone()
	clone.Motion().Count = 99
	clone.Keys[0] = key.NewRuneEvent('c', key.ModNone)
	if merged.Motion().Count != 2 || merged.Keys[0] != key.NewRuneEvent('d', key.ModNone) {
		t.Error("Clone shares state with original")
	}

	want := `editor.delete{count=_ keys=d motion=cursor.wordForward{count=2 keys=2w}}`
	if merged.String() != want {
		t.Errorf("String() = %q, want %q", merged.String(), want)
	}
}

func TestDescriptorWrites(t *testing.T) {
	op := &Descriptor{Action: "editor.yank"}
	if op.Writes() {
		t.Error("yank should not write")
	}
	op.Flags.Writes = true
	if !op.Writes() {
		t.Error("Writes flag ignored")
	}
}

func TestParseKindAndArgument(t *testing.T) {
	if k, ok := ParseKind("Operator"); !ok || k != KindOperator {
		t.Errorf("ParseKind(Operator) = %v, %v", k, ok)
	}
	if _, ok := ParseKind("bogus"); ok {
		t.Error("ParseKind(bogus) should fail")
	}
	if a, ok := ParseArgumentKind("commandline"); !ok || a != ArgCommandLine {
		t.Errorf("ParseArgumentKind(commandline) = %v, %v", a, ok)
	}
	if a, ok := ParseArgumentKind(""); !ok || a != ArgNone {
		t.Errorf("ParseArgumentKind(\"\") = %v, %v", a, ok)
	}
	if !ArgDigraph.IsLiteral() || ArgMotion.IsLiteral() {
		t.Error("IsLiteral wrong")
	}
}

func TestParseFlags(t *testing.T) {
	f, bad := ParseFlags([]string{"writes", "Operator_Pending"})
	if bad != "" {
		t.Fatalf("unexpected unknown flag %q", bad)
	}
	if !f.Writes || !f.OperatorPendingRequired || f.ReplayKey {
		t.Errorf("ParseFlags = %+v", f)
	}
	if len(f.Names()) != 2 {
		t.Errorf("Names() = %v", f.Names())
	}

	if _, bad := ParseFlags([]string{"writes", "nope"}); bad != "nope" {
		t.Errorf("unknown flag = %q, want nope", bad)
	}
}

func TestRegisters(t *testing.T) {
	tests := []struct {
		name       rune
		valid      bool
		recordable bool
	}{
		{'a', true, true},
		{'Z', true, true},
		{'"', true, true},
		{'0', true, true},
		{'5', true, true},
		{'_', true, false},
		{'+', true, false},
		{':', true, false},
		{'!', false, false},
		{' ', false, false},
	}
	for _, tt := range tests {
		if got := IsValidRegister(tt.name); got != tt.valid {
			t.Errorf("IsValidRegister(%q) = %v, want %v", tt.name, got, tt.valid)
		}
		if got := IsRecordable(tt.name); got != tt.recordable {
			t.Errorf("IsRecordable(%q) = %v, want %v", tt.name, got, tt.recordable)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	op, ok := LookupOperator("d")
	if !ok || op.LinewiseAction != "editor.deleteLine" || !op.Writes {
		t.Errorf("LookupOperator(d) = %+v, %v", op, ok)
	}
	if _, ok := LookupOperator("x"); ok {
		t.Error("x is not an operator")
	}
	m, ok := LookupMotion("f")
	if !ok || m.Argument != ArgCharacter {
		t.Errorf("LookupMotion(f) = %+v, %v", m, ok)
	}
	for _, m := range Motions {
		if _, err := key.ParseSequence(m.Keys); err != nil {
			t.Errorf("motion %s has invalid keys: %v", m.Action, err)
		}
	}
}
