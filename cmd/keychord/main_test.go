package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/macro"
)

func replayArgs(t *testing.T, args ...string) replayReport {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"replay"}, args...), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("replay %v exited %d: %s", args, code, stderr.String())
	}
	var report replayReport
	if err := yaml.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("invalid YAML output: %v\n%s", err, stdout.String())
	}
	return report
}

func TestReplayOperatorMotion(t *testing.T) {
	report := replayArgs(t, "d2w")

	if report.Outcomes != "cce" {
		t.Errorf("outcomes = %q, want cce", report.Outcomes)
	}
	if len(report.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(report.Commands))
	}
	cmd := report.Commands[0]
	if cmd.Action != "editor.delete" || cmd.Count != 0 {
		t.Errorf("got %s count %d, want editor.delete without count", cmd.Action, cmd.Count)
	}
	if cmd.Motion == nil {
		t.Fatal("expected a motion argument")
	}
	if cmd.Motion.Action != "cursor.wordForward" || cmd.Motion.Count != 2 {
		t.Errorf("motion = %s count %d, want cursor.wordForward count 2", cmd.Motion.Action, cmd.Motion.Count)
	}
	if report.Mode != "normal" {
		t.Errorf("mode = %q, want normal", report.Mode)
	}
}

func TestReplayLinewise(t *testing.T) {
	report := replayArgs(t, "3dd")

	if len(report.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(report.Commands))
	}
	cmd := report.Commands[0]
	if cmd.Action != "editor.deleteLine" || cmd.Count != 3 || cmd.Motion != nil {
		t.Errorf("got %+v, want editor.deleteLine with count 3", cmd)
	}
}

func TestReplayConcatenatesArguments(t *testing.T) {
	report := replayArgs(t, "ihello", "<Esc>")

	if report.Text != "hello" {
		t.Errorf("text = %q, want hello", report.Text)
	}
	if report.Keys != "ihello<Esc>" {
		t.Errorf("keys = %q", report.Keys)
	}
	if len(report.Commands) != 2 {
		t.Fatalf("got %d commands, want mode.insert and mode.normal", len(report.Commands))
	}
	if report.Commands[1].Action != "mode.normal" {
		t.Errorf("last command = %s, want mode.normal", report.Commands[1].Action)
	}
}

func TestReplayPending(t *testing.T) {
	report := replayArgs(t, "2d")

	if len(report.Commands) != 0 {
		t.Errorf("got %d commands, want none", len(report.Commands))
	}
	if report.Pending != "2d" {
		t.Errorf("pending = %q, want 2d", report.Pending)
	}
	if report.Mode != "normal/operator-pending" {
		t.Errorf("mode = %q", report.Mode)
	}
}

func TestReplayMacro(t *testing.T) {
	report := replayArgs(t, "ihello<Esc>qaxq2@a")

	if report.Text != "he" {
		t.Errorf("text = %q, want he", report.Text)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
}

func TestReplayReadOnly(t *testing.T) {
	report := replayArgs(t, "-R", "x")

	if len(report.Commands) != 0 {
		t.Errorf("read-only target executed %v", report.Commands)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "read-only") {
		t.Errorf("errors = %v, want a read-only error", report.Errors)
	}
	if report.Outcomes != "a" {
		t.Errorf("outcomes = %q, want a", report.Outcomes)
	}
}

func TestReplayKeymapFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	writeKeymap(t, path, "file.save")

	report := replayArgs(t, "-keymap", path, "<C-s>")
	if len(report.Commands) != 1 || report.Commands[0].Action != "file.save" {
		t.Errorf("commands = %+v, want file.save", report.Commands)
	}
}

func TestReplayMetrics(t *testing.T) {
	report := replayArgs(t, "-metrics", "d2w")
	if report.Metrics == nil {
		t.Fatal("expected a metrics section")
	}
	if report.Metrics.Keys != 3 || report.Metrics.Executed != 1 || report.Metrics.Aborted != 0 {
		t.Errorf("metrics = %+v, want 3 keys and 1 executed", *report.Metrics)
	}
	if report.Metrics.Health == "" {
		t.Error("expected a health message")
	}

	report = replayArgs(t, "-metrics", "-R", "x")
	if report.Metrics == nil || report.Metrics.Aborted != 1 || report.Metrics.UserErrors != 1 {
		t.Errorf("metrics = %+v, want one aborted user error", report.Metrics)
	}

	if report := replayArgs(t, "d2w"); report.Metrics != nil {
		t.Errorf("metrics reported without -metrics: %+v", *report.Metrics)
	}
}

func TestSessionHealth(t *testing.T) {
	ctx := context.Background()
	s, err := newSession(ctx, config.Default(), &options{Metrics: true})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer s.Close()

	if got := s.health(); got != "" {
		t.Errorf("fresh session health = %q, want empty", got)
	}

	// An action bound in the keymaps but missing from the registry is a
	// configuration error.
	delete(s.actions, "editor.deleteChar")
	s.Feed(ctx, key.NewRuneEvent('x', key.ModNone))
	if got := s.health(); got != "unregistered actions in keymaps" {
		t.Errorf("health = %q, want unregistered actions", got)
	}
	if n := s.metrics.ConfigErrors(); n != 1 {
		t.Errorf("ConfigErrors() = %d, want 1", n)
	}

	off, err := newSession(ctx, config.Default(), &options{})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer off.Close()
	off.Feed(ctx, key.NewRuneEvent('x', key.ModNone))
	if off.metrics.KeyEventsTotal() != 0 || off.health() != "" {
		t.Error("metrics collected without -metrics")
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"bogus"}, 2},
		{"no keys", []string{"replay"}, 2},
		{"bad log level", []string{"replay", "-log-level", "loud", "j"}, 2},
		{"bad flag", []string{"replay", "-nope", "j"}, 2},
		{"missing config", []string{"replay", "-config", "/nonexistent/keychord.toml", "j"}, 1},
		{"version", []string{"version"}, 0},
		{"help", []string{"help"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%v) = %d, want %d (stderr: %s)", tt.args, got, tt.want, stderr.String())
			}
		})
	}
}

func writeKeymap(t *testing.T, path, action string) {
	t.Helper()
	doc := "keymaps:\n  - name: user\n    mode: normal\n    bindings:\n      - {keys: \"<C-s>\", action: " + action + "}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSessionReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	writeKeymap(t, path, "file.save")

	ctx := context.Background()
	opts := &options{Keymaps: stringList{path}}
	s, err := newSession(ctx, config.Default(), opts)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer s.Close()

	ctrlS := key.NewRuneEvent('s', key.ModCtrl)
	s.Feed(ctx, ctrlS)

	writeKeymap(t, path, "file.saveAll")
	if err := s.reload(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	s.Feed(ctx, ctrlS)

	if len(s.executed) != 2 {
		t.Fatalf("executed %d commands, want 2", len(s.executed))
	}
	if got := s.executed[1].Action; got != "file.saveAll" {
		t.Errorf("after reload <C-s> ran %s, want file.saveAll", got)
	}

	// A broken keymap keeps the current trie.
	if err := os.WriteFile(path, []byte("keymaps: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(ctx); err == nil {
		t.Error("expected reload error for invalid YAML")
	}
	s.Feed(ctx, ctrlS)
	if got := s.executed[len(s.executed)-1].Action; got != "file.saveAll" {
		t.Errorf("after failed reload <C-s> ran %s, want file.saveAll", got)
	}
}

func TestSessionMacroPersistence(t *testing.T) {
	macros := filepath.Join(t.TempDir(), "macros.yaml")
	ctx := context.Background()
	opts := &options{Macros: macros}

	s, err := newSession(ctx, config.Default(), opts)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	for _, ev := range key.Events("qbihi<Esc>q") {
		s.Feed(ctx, ev)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = newSession(ctx, config.Default(), opts)
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer s.Close()
	for _, ev := range key.Events("@b") {
		s.Feed(ctx, ev)
	}
	if s.Text() != "hi" {
		t.Errorf("text after replaying the saved macro = %q, want hi", s.Text())
	}
}

func TestSessionRecursiveMacro(t *testing.T) {
	ctx := context.Background()
	s, err := newSession(ctx, config.Default(), &options{})
	if err != nil {
		t.Fatalf("newSession failed: %v", err)
	}
	defer s.Close()

	for _, ev := range key.Events("qcix<Esc>@cq@c") {
		s.Feed(ctx, ev)
	}
	if len(s.errs) == 0 || !errors.Is(s.errs[len(s.errs)-1], macro.ErrAlreadyPlaying) {
		t.Errorf("errors = %v, want %v last", s.errs, macro.ErrAlreadyPlaying)
	}
}
