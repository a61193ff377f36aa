package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/vim"
)

// replayReport is the YAML document printed by "keychord replay".
type replayReport struct {
	Keys     string           `yaml:"keys"`
	Outcomes string           `yaml:"outcomes"`
	Commands []descriptorView `yaml:"commands"`
	Errors   []string         `yaml:"errors,omitempty"`
	Mode     string           `yaml:"mode"`
	Pending  string           `yaml:"pending,omitempty"`
	Text     string           `yaml:"text,omitempty"`
	Metrics  *metricsView     `yaml:"metrics,omitempty"`
}

// metricsView is the YAML form of the dispatcher metrics.
type metricsView struct {
	Keys         uint64 `yaml:"keys"`
	Executed     uint64 `yaml:"executed"`
	Aborted      uint64 `yaml:"aborted"`
	Fallbacks    uint64 `yaml:"fallbacks"`
	Cancels      uint64 `yaml:"cancels"`
	UserErrors   uint64 `yaml:"user_errors"`
	ConfigErrors uint64 `yaml:"config_errors"`
	Replays      uint64 `yaml:"replays"`
	AvgLatency   string `yaml:"avg_latency"`
	P99Latency   string `yaml:"p99_latency"`
	Health       string `yaml:"health"`
}

func metricsOf(m *input.Metrics) *metricsView {
	snap := m.Snapshot()
	return &metricsView{
		Keys:         snap.KeyEventsTotal,
		Executed:     snap.Executed,
		Aborted:      snap.Aborted,
		Fallbacks:    snap.Fallbacks,
		Cancels:      snap.Cancels,
		UserErrors:   snap.UserErrors,
		ConfigErrors: snap.ConfigErrors,
		Replays:      snap.Replays,
		AvgLatency:   snap.AvgKeyLatency.String(),
		P99Latency:   snap.P99KeyLatency.String(),
		Health:       m.HealthCheck(healthLatency).Message,
	}
}

// descriptorView is the YAML form of a resolved command.
type descriptorView struct {
	Action   string          `yaml:"action"`
	Kind     string          `yaml:"kind"`
	Count    int             `yaml:"count,omitempty"`
	Register string          `yaml:"register,omitempty"`
	Keys     string          `yaml:"keys"`
	Char     string          `yaml:"char,omitempty"`
	Text     *string         `yaml:"text,omitempty"`
	Motion   *descriptorView `yaml:"motion,omitempty"`
}

func viewOf(d *vim.Descriptor) descriptorView {
	v := descriptorView{
		Action: d.Action,
		Kind:   d.Kind.String(),
		Count:  d.Count,
		Keys:   key.VimString(d.Keys),
	}
	if d.Register != 0 {
		v.Register = string(d.Register)
	}
	if ch, ok := d.Character(); ok {
		v.Char = string(ch)
	}
	if text, ok := d.Text(); ok {
		v.Text = &text
	}
	if m := d.Motion(); m != nil {
		mv := viewOf(m)
		v.Motion = &mv
	}
	return v
}

// outcomeLetter abbreviates an outcome to its first letter.
func outcomeLetter(o input.Outcome) byte {
	switch o {
	case input.Continue:
		return 'c'
	case input.Executed:
		return 'e'
	}
	return 'a'
}

func runReplay(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet("replay", &opts, stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: keychord replay [options] <keys>...\n\n")
		fmt.Fprintf(stderr, "Feeds the keys to a fresh Normal-mode target and prints each resolved\n")
		fmt.Fprintf(stderr, "command as YAML. Arguments are concatenated; use <Space> for a space.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := opts.validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	ctx, cancel := signalContext()
	defer cancel()

	report, err := replay(ctx, &opts, fs.Args())
	if err != nil {
		return exitCode(stderr, err)
	}
	out, err := yaml.Marshal(report)
	if err != nil {
		return exitCode(stderr, err)
	}
	if _, err := stdout.Write(out); err != nil {
		return exitCode(stderr, err)
	}
	return 0
}

// replay feeds keys to a new session and reports what it resolved.
func replay(ctx context.Context, opts *options, keys []string) (*replayReport, error) {
	var events []key.Event
	for _, arg := range keys {
		seq, err := key.ParseSequence(arg)
		if err != nil {
			return nil, fmt.Errorf("parsing keys %q: %w", arg, err)
		}
		events = append(events, seq.Events...)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	s, err := newSession(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var outcomes strings.Builder
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcomes.WriteByte(outcomeLetter(s.Feed(ctx, ev)))
	}

	report := &replayReport{
		Keys:     key.VimString(events),
		Outcomes: outcomes.String(),
		Commands: make([]descriptorView, 0, len(s.executed)),
		Mode:     s.target.Mode().String(),
		Pending:  s.target.PendingKeys(),
		Text:     s.Text(),
	}
	for _, d := range s.executed {
		report.Commands = append(report.Commands, viewOf(d))
	}
	for _, e := range s.errs {
		report.Errors = append(report.Errors, e.Error())
	}
	if s.metrics.IsEnabled() {
		report.Metrics = metricsOf(s.metrics)
	}
	return report, nil
}
