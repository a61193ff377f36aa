package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keychord/internal/logging"
)

// Change reports that watched files were modified.
type Change struct {
	// Paths are the absolute paths that changed, sorted.
	Paths []string

	// Time is when the debounce window closed.
	Time time.Time
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for further events before
// reporting a change.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger for watch errors.
func WithWatchLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher reports changes to the config and keymap files so the host can
// rebuild its command trie.
//
// Directories are watched rather than files because editors commonly save
// by renaming a temporary file over the original.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      *logging.Logger

	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewWatcher creates a watcher for paths. Files need not exist yet.
func NewWatcher(paths []string, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		debounce: 200 * time.Millisecond,
		log:      logging.Discard(),
		changes:  make(chan Change, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithComponent("config-watcher")

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	return w, nil
}

// Start begins watching. The returned channel receives one Change per
// burst of file events and is closed by Close.
func (w *Watcher) Start() <-chan Change {
	w.wg.Add(1)
	go w.loop()
	return w.changes
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer close(w.changes)

	var (
		timer   *time.Timer
		pending = make(map[string]bool)
	)
	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC():
			timer = nil
			if len(pending) == 0 {
				continue
			}
			change := Change{Time: time.Now()}
			for p := range pending {
				change.Paths = append(change.Paths, p)
			}
			sort.Strings(change.Paths)
			clear(pending)

			select {
			case w.changes <- change:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevant reports whether event touches a watched file in a way that
// may change its content.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}
