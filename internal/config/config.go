package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychord/internal/input/digraph"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/logging"
)

// Config is the keychord configuration.
type Config struct {
	Log      LogConfig         `toml:"log"`
	Input    InputConfig       `toml:"input"`
	Options  Options           `toml:"options"`
	Digraphs map[string]string `toml:"digraphs"`

	// Keymaps are keymap files (YAML, TOML or Lua) loaded after the
	// built-in keymaps. Relative paths are resolved against the directory
	// of the config file.
	Keymaps []string `toml:"keymaps"`

	// NoDefaults skips the built-in Vim keymaps.
	NoDefaults bool `toml:"no_defaults"`

	// path is the file the config was loaded from, if any.
	path string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// InputConfig configures the dispatcher.
type InputConfig struct {
	// EraseKey erases count digits and arms erase digraphs.
	EraseKey string `toml:"erase_key"`

	// CancelKeys abandon a partially typed command.
	CancelKeys []string `toml:"cancel_keys"`
}

// Options are boolean editor options, such as "digraph".
type Options map[string]bool

// Bool returns the named option, false when unset.
func (o Options) Bool(name string) bool {
	return o[name]
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Input: InputConfig{
			EraseKey:   "<BS>",
			CancelKeys: []string{"<Esc>", "<C-c>", "<C-[>"},
		},
		Options:  Options{"digraph": false},
		Digraphs: map[string]string{},
	}
}

// Load reads the TOML file at path over the defaults and applies KEYCHORD_*
// environment overrides. A missing file is not an error when path is
// empty; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.decode(path, bytes.NewReader(data)); err != nil {
			return nil, err
		}
		cfg.path = path
	}

	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReader reads TOML configuration from r over the defaults. The
// environment is not consulted.
func LoadReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode("<reader>", r); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(source string, r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return newParseError(source, err)
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that every key spec, digraph and option is usable.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Field: "log.level", Value: c.Log.Level, Err: err}
	}
	if _, err := c.EraseKey(); err != nil {
		return err
	}
	if _, err := c.CancelKeys(); err != nil {
		return err
	}
	if _, err := c.DigraphTable(); err != nil {
		return err
	}
	for name := range c.Options {
		if !isKnownOption(name) {
			return &ValidationError{Field: "options." + name, Value: c.Options[name], Err: ErrUnknownOption}
		}
	}
	return nil
}

// knownOptions lists the options the dispatcher reads.
var knownOptions = []string{"digraph"}

func isKnownOption(name string) bool {
	for _, o := range knownOptions {
		if o == name {
			return true
		}
	}
	return false
}

// EraseKey parses Input.EraseKey.
func (c *Config) EraseKey() (key.Event, error) {
	ev, err := key.Parse(c.Input.EraseKey)
	if err != nil {
		return key.Event{}, &ValidationError{Field: "input.erase_key", Value: c.Input.EraseKey, Err: err}
	}
	return ev, nil
}

// CancelKeys parses Input.CancelKeys.
func (c *Config) CancelKeys() ([]key.Event, error) {
	evs := make([]key.Event, 0, len(c.Input.CancelKeys))
	for _, spec := range c.Input.CancelKeys {
		ev, err := key.Parse(spec)
		if err != nil {
			return nil, &ValidationError{Field: "input.cancel_keys", Value: spec, Err: err}
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// DigraphTable returns the built-in digraph table extended with Digraphs.
func (c *Config) DigraphTable() (*digraph.Table, error) {
	t := digraph.Default()
	if err := t.Merge(c.Digraphs); err != nil {
		return nil, &ValidationError{Field: "digraphs", Err: err}
	}
	return t, nil
}

// Logger builds the logger described by Log. The returned closer releases
// the log file, if one was opened.
func (c *Config) Logger() (*logging.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level

	var closer io.Closer = nopCloser{}
	if c.Log.File != "" {
		f, err := os.OpenFile(c.resolve(c.Log.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		lc.Output = f
		closer = f
	}
	return logging.New(lc), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// KeymapPaths returns the configured keymap files with relative paths
// resolved against the config file's directory.
func (c *Config) KeymapPaths() []string {
	paths := make([]string, len(c.Keymaps))
	for i, p := range c.Keymaps {
		paths[i] = c.resolve(p)
	}
	return paths
}

func (c *Config) resolve(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// LoadKeymaps returns the built-in keymaps (unless NoDefaults is set)
// followed by the keymaps loaded from KeymapPaths and extra. Later keymaps
// take precedence over earlier ones.
func (c *Config) LoadKeymaps(ctx context.Context, extra ...string) ([]*keymap.Keymap, error) {
	var kms []*keymap.Keymap
	if !c.NoDefaults {
		kms = append(kms, keymap.Defaults()...)
	}

	loader := keymap.NewLoader()
	var errs []error
	for _, path := range append(c.KeymapPaths(), extra...) {
		loaded, err := loader.LoadFile(ctx, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("keymap %s: %w", path, err))
			continue
		}
		kms = append(kms, loaded...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return kms, nil
}

// WatchPaths returns the files whose change should trigger a reload: the
// config file and every keymap file.
func (c *Config) WatchPaths(extra ...string) []string {
	var paths []string
	if c.path != "" {
		paths = append(paths, c.path)
	}
	paths = append(paths, c.KeymapPaths()...)
	paths = append(paths, extra...)
	sort.Strings(paths)
	return paths
}
