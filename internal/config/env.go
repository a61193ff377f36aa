package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "KEYCHORD_"

// EnvLoader applies environment variable overrides to a Config.
//
// Recognised variables, shown with the default prefix:
//
//	KEYCHORD_LOG_LEVEL     log.level
//	KEYCHORD_LOG_FILE      log.file
//	KEYCHORD_ERASE_KEY     input.erase_key
//	KEYCHORD_CANCEL_KEYS   input.cancel_keys, comma separated
//	KEYCHORD_KEYMAPS       keymaps, separated like PATH
//	KEYCHORD_OPTION_<NAME> options.<name>, a boolean
type EnvLoader struct {
	prefix  string
	lookup  func(string) (string, bool)
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv, environ: os.Environ}
}

// Apply overrides the settings of cfg that have a variable set. Empty
// values are treated as set.
func (l *EnvLoader) Apply(cfg *Config) error {
	if v, ok := l.lookup(l.prefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := l.lookup(l.prefix + "LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := l.lookup(l.prefix + "ERASE_KEY"); ok {
		cfg.Input.EraseKey = v
	}
	if v, ok := l.lookup(l.prefix + "CANCEL_KEYS"); ok {
		cfg.Input.CancelKeys = splitList(v, ",")
	}
	if v, ok := l.lookup(l.prefix + "KEYMAPS"); ok {
		cfg.Keymaps = splitList(v, string(filepath.ListSeparator))
	}

	optPrefix := l.prefix + "OPTION_"
	for _, env := range l.environ() {
		name, value, found := strings.Cut(env, "=")
		if !found || !strings.HasPrefix(name, optPrefix) {
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: name, Value: value, Err: err}
		}
		if cfg.Options == nil {
			cfg.Options = Options{}
		}
		cfg.Options[strings.ToLower(strings.TrimPrefix(name, optPrefix))] = b
	}
	return nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
