package keymap

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
	"gopkg.in/yaml.v3"
)

// Format identifies a keymap file encoding.
type Format string

// Supported keymap file formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatLua  Format = "lua"
)

// ErrUnknownFormat is returned for files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown keymap format")

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".lua":
		return FormatLua, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// File is the document structure of YAML and TOML keymap files:
//
//	[[keymaps]]
//	name = "mine"
//	mode = "normal"
//	bindings = [{ keys = "<C-s>", action = "file.save" }]
type File struct {
	Keymaps []*Keymap `yaml:"keymaps" toml:"keymaps"`
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads the keymaps in a YAML, TOML or Lua file.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]*Keymap, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	return l.LoadReader(ctx, f, format, filepath.Base(path))
}

// LoadReader loads keymaps in the given format from a reader. Every keymap
// is validated and tagged with source.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, format Format, source string) ([]*Keymap, error) {
	var keymaps []*Keymap

	switch format {
	case FormatLua:
		var err error
		if keymaps, err = LoadLua(ctx, r, source); err != nil {
			return nil, err
		}

	case FormatYAML, FormatTOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading keymap file: %w", err)
		}
		var file File
		if format == FormatYAML {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
				return nil, &ParseError{Source: source, Err: err}
			}
		} else {
			dec := toml.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&file); err != nil {
				return nil, &ParseError{Source: source, Err: tomlError(err)}
			}
		}
		keymaps = file.Keymaps

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	out := keymaps[:0]
	for _, km := range keymaps {
		if km == nil {
			continue
		}
		if km.Source == "" {
			km.Source = source
		}
		if km.Name == "" {
			km.Name = source + ":" + km.Mode
		}
		if err := km.Validate(); err != nil {
			return nil, err
		}
		out = append(out, km)
	}
	return out, nil
}

// LoadAll loads every keymap file found in the search paths, in lexical
// order per directory. The first failing file aborts the load.
func (l *Loader) LoadAll(ctx context.Context) ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading keymap directory: %w", err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatOf(e.Name()); err == nil {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			kms, err := l.LoadFile(ctx, filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			keymaps = append(keymaps, kms...)
		}
	}

	return keymaps, nil
}

// Marshal encodes keymaps as a YAML or TOML keymap file.
func Marshal(format Format, keymaps ...*Keymap) ([]byte, error) {
	file := File{Keymaps: keymaps}
	switch format {
	case FormatYAML:
		return yaml.Marshal(&file)
	case FormatTOML:
		return toml.Marshal(&file)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// tomlError adds the position of a go-toml decode error to its message.
func tomlError(err error) error {
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}
