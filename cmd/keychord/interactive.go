package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/macro"
	"github.com/dshills/keychord/internal/terminal"
)

func runInteractive(args []string, stderr io.Writer) int {
	var opts options
	fs := newFlagSet("run", &opts, stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: keychord run [options]\n\n")
		fmt.Fprintf(stderr, "Type keys and watch them resolve. \":q\" quits. Keymap files are\n")
		fmt.Fprintf(stderr, "reloaded when they change.\n\n")
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
	if opts.Macros == "" {
		if path, err := macro.DefaultMacrosPath(); err == nil {
			opts.Macros = path
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadConfig(&opts)
	if err != nil {
		return exitCode(stderr, err)
	}
	// The screen owns stderr while the session runs.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "keychord.log")
	}

	s, err := newSession(ctx, cfg, &opts)
	if err != nil {
		return exitCode(stderr, err)
	}

	term, err := terminal.New()
	if err != nil {
		s.Close()
		return exitCode(stderr, fmt.Errorf("failed to create terminal: %w", err))
	}
	if err := term.Init(); err != nil {
		s.Close()
		return exitCode(stderr, fmt.Errorf("failed to initialize terminal: %w", err))
	}

	err = interact(ctx, s, term)
	term.Shutdown()
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return exitCode(stderr, err)
}

// interact runs the key loop until ":q", a signal or the screen closing.
// Watcher changes and cancellation arrive as screen interrupts so that the
// trie is only swapped between key events.
func interact(ctx context.Context, s *session, term *terminal.Terminal) error {
	done := make(chan struct{})
	defer close(done)

	watcher, err := config.NewWatcher(s.cfg.WatchPaths(s.extra...), config.WithWatchLogger(s.log))
	if err != nil {
		s.log.Warn("keymap reload disabled: %v", err)
	} else {
		defer watcher.Close()
		changes := watcher.Start()
		go func() {
			for change := range changes {
				_ = term.Interrupt(change)
			}
		}()
	}
	go func() {
		select {
		case <-ctx.Done():
			_ = term.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	s.status = "type keys; :q quits"
	s.render(term)
	for {
		ev := term.PollEvent()
		switch ev.Type {
		case terminal.EventClosed:
			return nil

		case terminal.EventKey:
			s.Feed(ctx, ev.Key)
			if s.quit {
				return errQuit
			}

		case terminal.EventInterrupt:
			switch data := ev.Data.(type) {
			case config.Change:
				s.reloadAfter(ctx, data)
			case error:
				return nil
			}
		}
		s.render(term)
	}
}

func (s *session) reloadAfter(ctx context.Context, change config.Change) {
	names := make([]string, len(change.Paths))
	for i, p := range change.Paths {
		names[i] = filepath.Base(p)
	}
	if err := s.reload(ctx); err != nil {
		s.log.Warn("reloading keymaps after %s changed: %v", strings.Join(names, ", "), err)
		s.fail(fmt.Errorf("reload: %w", err))
		return
	}
	s.status = "reloaded " + strings.Join(names, ", ")
	s.statusErr = false
}

// render draws the inserted text, the most recent commands, a status line,
// a mode line and the command line.
func (s *session) render(term *terminal.Terminal) {
	term.Clear()
	w, h := term.Size()
	if h < 4 {
		term.Show()
		return
	}

	cursorX := term.DrawText(0, 0, "> "+s.Text(), terminal.StyleNormal)
	cursorY := 0

	history := s.executed
	if rows := h - 5; len(history) > rows {
		history = history[len(history)-max(rows, 0):]
	}
	for i, d := range history {
		term.DrawText(2, 2+i, d.String(), terminal.StyleDim)
	}

	statusStyle := terminal.StyleNormal
	if s.statusErr {
		statusStyle = terminal.StyleError
	}
	term.DrawText(0, h-3, s.status, statusStyle)

	frame := s.target.Mode()
	modeLine := "-- " + strings.ToUpper(frame.String()) + " --"
	if reg := s.macros.CurrentRegister(); reg != 0 {
		modeLine += "  recording @" + string(reg)
	}
	if msg := s.health(); msg != "" {
		modeLine += "  [" + msg + "]"
	}
	term.DrawText(0, h-2, modeLine, terminal.StyleBold)
	pending := s.target.PendingKeys()
	term.DrawText(w-len(pending)-1, h-2, pending, terminal.StyleBold)

	if text, ok := s.editor.Text(s.target); ok {
		cursorX = term.DrawText(0, h-1, pending+text, terminal.StyleNormal)
		cursorY = h - 1
	}

	term.SetCursorStyle(frame.CursorStyle())
	term.ShowCursor(cursorX, cursorY)
	term.Show()
}
