package macro

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/input/key"
)

// persistedData is the root structure of a macros file. Macros are stored
// in Vim key notation, one string per register:
//
//	version: 1
//	last_played: a
//	macros:
//	  a: d2w<Esc>
type persistedData struct {
	Version    int               `yaml:"version"`
	SavedAt    time.Time         `yaml:"saved_at"`
	LastPlayed string            `yaml:"last_played,omitempty"`
	Macros     map[string]string `yaml:"macros"`
}

const currentVersion = 1

// Export encodes all macros in the recorder as YAML.
func Export(recorder *Recorder) ([]byte, error) {
	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now().UTC().Truncate(time.Second),
		Macros:  make(map[string]string),
	}
	if lp := recorder.LastPlayed(); lp != 0 {
		data.LastPlayed = string(lp)
	}
	for _, reg := range recorder.ListRegisters() {
		data.Macros[string(reg)] = key.VimString(recorder.Get(reg))
	}
	return yaml.Marshal(&data)
}

// Import decodes macros from YAML. With merge set, registers that already
// hold a macro are left alone; otherwise every imported register is
// replaced.
func Import(recorder *Recorder, raw []byte, merge bool) error {
	var data persistedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to unmarshal macros: %w", err)
	}
	if data.Version > currentVersion {
		return fmt.Errorf("unsupported macros version: %d (max supported: %d)",
			data.Version, currentVersion)
	}

	for name, notation := range data.Macros {
		reg := []rune(name)
		if len(reg) != 1 || !IsValidRegister(reg[0]) || IsAppendRegister(reg[0]) {
			continue
		}
		if merge && recorder.HasMacro(reg[0]) {
			continue
		}
		seq, err := key.ParseSequence(notation)
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		if err := recorder.Set(reg[0], seq.Events); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}

	if lp := []rune(data.LastPlayed); len(lp) == 1 && IsValidRegister(lp[0]) {
		recorder.SetLastPlayed(lp[0])
	}
	return nil
}

// Save writes all macros from the recorder to the specified file.
// The file is written atomically using a temporary file and rename.
func Save(recorder *Recorder, path string) error {
	raw, err := Export(recorder)
	if err != nil {
		return fmt.Errorf("failed to marshal macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads macros from the specified file into the recorder, replacing
// registers that the file defines. A missing file is not an error.
func Load(recorder *Recorder, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read macros file: %w", err)
	}
	return Import(recorder, raw, false)
}

// DefaultMacrosPath returns the default path for storing macros,
// e.g. ~/.config/keychord/macros.yaml.
func DefaultMacrosPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "keychord", "macros.yaml"), nil
}
