package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/macro"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
	"github.com/dshills/keychord/internal/logging"
)

// errQuit is returned when the user runs ":q".
var errQuit = errors.New("quit")

// healthLatency is the per-key latency above which the input path is
// reported as unhealthy.
const healthLatency = 10 * time.Millisecond

// session drives one target through a dispatcher and plays the editor
// side of the collaborators: it keeps a line of inserted text, records
// macros and remembers what was executed.
type session struct {
	cfg        *config.Config
	extra      []string
	macrosPath string
	log        *logging.Logger
	closer     io.Closer

	d       *input.Dispatcher
	target  *input.Target
	editor  *input.LineEditor
	actions input.ActionSet
	metrics *input.Metrics

	macros *macro.Recorder
	player *macro.Player
	play   *vim.Descriptor

	text      []rune
	executed  []*vim.Descriptor
	errs      []error
	status    string
	statusErr bool
	quit      bool
}

// newSession loads the keymaps named by cfg and opts and builds a
// dispatcher for a fresh target.
func newSession(ctx context.Context, cfg *config.Config, opts *options) (s *session, err error) {
	log, closer, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			closer.Close()
		}
	}()

	s = &session{
		cfg:        cfg,
		extra:      opts.Keymaps,
		macrosPath: opts.Macros,
		log:        log,
		closer:     closer,
		target:     input.NewTarget("main"),
		editor:     input.NewLineEditor(),
		macros:     macro.NewRecorder(),
		metrics:    input.NewMetrics(),
	}
	s.player = macro.NewPlayer(s.macros)
	s.metrics.SetEnabled(opts.Metrics)
	s.target.SetReadOnly(opts.ReadOnly)

	if s.macrosPath != "" {
		if err := macro.Load(s.macros, s.macrosPath); err != nil {
			return nil, err
		}
	}

	kms, err := cfg.LoadKeymaps(ctx, s.extra...)
	if err != nil {
		return nil, err
	}
	tr, err := keymap.Build(kms...)
	if err != nil {
		return nil, err
	}
	s.actions = input.NewActionSet(keymap.Actions(kms...)...)

	erase, err := cfg.EraseKey()
	if err != nil {
		return nil, err
	}
	cancels, err := cfg.CancelKeys()
	if err != nil {
		return nil, err
	}
	digraphs, err := cfg.DigraphTable()
	if err != nil {
		return nil, err
	}

	s.d = input.New(tr,
		input.WithActions(s.actions),
		input.WithExecutor(s),
		input.WithLiteralHandler(s),
		input.WithCommandLineEditor(s.editor),
		input.WithRecorder(macroRecorder{rec: s.macros, player: s.player}),
		input.WithOptions(cfg.Options),
		input.WithHost(s),
		input.WithDigraphs(digraphs),
		input.WithEraseKey(erase),
		input.WithCancelKeys(cancels...),
		input.WithLogger(log),
		input.WithMetrics(s.metrics),
	)
	s.log.Info("loaded %d keymaps (%d actions, %d trie nodes)", len(kms), len(s.actions), tr.Size())
	return s, nil
}

// Close saves the macros, if a macro file was named, and releases the log
// file.
func (s *session) Close() error {
	if s.metrics.IsEnabled() {
		s.log.Info("processed %d keys (%d configuration errors)",
			s.metrics.KeyEventsTotal(), s.metrics.ConfigErrors())
	}
	var err error
	if s.macrosPath != "" {
		err = macro.Save(s.macros, s.macrosPath)
	}
	return errors.Join(err, s.closer.Close())
}

// reload rebuilds the trie from the keymap files. On error the current
// trie stays in use.
func (s *session) reload(ctx context.Context) error {
	kms, err := s.cfg.LoadKeymaps(ctx, s.extra...)
	if err != nil {
		return err
	}
	tr, err := keymap.Build(kms...)
	if err != nil {
		return err
	}
	for _, a := range keymap.Actions(kms...) {
		if _, ok := s.actions[a]; !ok {
			s.actions[a] = nil
		}
	}
	s.d.SetTrie(tr)
	return nil
}

// Feed dispatches one key. A bare "q" in Normal mode stops a recording
// before it reaches the dispatcher, and a macro requested by "@" is played
// once the key that requested it has been handled.
func (s *session) Feed(ctx context.Context, ev key.Event) input.Outcome {
	if s.stopsRecording(ev) {
		keys := s.macros.StopRecording()
		s.status = "recorded " + key.VimString(keys)
		s.statusErr = false
		return input.Executed
	}

	out := s.d.HandleKeyEvent(s.target, ev)
	if p := s.play; p != nil {
		s.play = nil
		if err := s.playMacro(ctx, p); err != nil {
			s.fail(err)
		}
	}
	return out
}

func (s *session) stopsRecording(ev key.Event) bool {
	return s.macros.IsRecording() && !s.player.IsPlaying() &&
		s.target.Idle() && s.target.Mode().Mapping == mode.MapNormal &&
		ev == key.NewRuneEvent('q', key.ModNone)
}

func (s *session) playMacro(ctx context.Context, d *vim.Descriptor) error {
	reg, _ := d.Character()
	return s.player.Play(ctx, reg, d.EffectiveCount(), func(ev key.Event) error {
		s.d.HandleKeyEvent(s.target, ev)
		if p := s.play; p != nil {
			s.play = nil
			return s.playMacro(ctx, p)
		}
		return nil
	})
}

// Execute implements input.Executor.
func (s *session) Execute(d *vim.Descriptor, t *input.Target) error {
	s.executed = append(s.executed, d.Clone())
	s.status = d.String()
	s.statusErr = false
	if input.ApplyModeAction(d, t) {
		return nil
	}

	switch d.Action {
	case "macro.toggleRecord":
		reg, _ := d.Character()
		if err := s.macros.StartRecording(reg); err != nil {
			return err
		}
		s.status = "recording @" + string(reg)
	case "macro.play":
		s.play = d.Clone()
	case "command.execute":
		if text, _ := d.Text(); isQuit(text) {
			s.quit = true
		}
	case "editor.deleteChar":
		s.backspace()
	}
	return s.actions.Execute(d, t)
}

func isQuit(cmd string) bool {
	switch strings.TrimSpace(cmd) {
	case "q", "q!", "quit", "qa", "wq", "x":
		return true
	}
	return false
}

// InsertOrReplace implements input.LiteralHandler.
func (s *session) InsertOrReplace(ch rune, t *input.Target) bool {
	if t.ReadOnly() {
		return false
	}
	if ch == '\b' {
		s.backspace()
		return true
	}
	s.text = append(s.text, ch)
	return true
}

func (s *session) backspace() {
	if len(s.text) > 0 {
		s.text = s.text[:len(s.text)-1]
	}
}

// CancelEdit implements input.Host.
func (s *session) CancelEdit(*input.Target) {
	s.status = "cancelled"
	s.statusErr = false
}

// IndicateError implements input.Host.
func (s *session) IndicateError(_ *input.Target, err error) {
	s.fail(err)
}

func (s *session) fail(err error) {
	s.errs = append(s.errs, err)
	s.status = err.Error()
	s.statusErr = true
}

// health describes an unhealthy input path, or returns "" when metrics are
// off or nothing is wrong.
func (s *session) health() string {
	if !s.metrics.IsEnabled() {
		return ""
	}
	if h := s.metrics.HealthCheck(healthLatency); !h.Healthy {
		return h.Message
	}
	return ""
}

// Text returns the inserted text.
func (s *session) Text() string {
	return string(s.text)
}

// macroRecorder hides recording from the dispatcher while a macro plays so
// replayed keys are not recorded a second time.
type macroRecorder struct {
	rec    *macro.Recorder
	player *macro.Player
}

func (m macroRecorder) IsRecording() bool {
	return m.rec.IsRecording() && !m.player.IsPlaying()
}

func (m macroRecorder) Record(ev key.Event) {
	m.rec.Record(ev)
}
