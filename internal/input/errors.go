package input

import (
	"errors"
	"fmt"
)

// User-input errors. The dispatcher recovers from these by resetting the
// target and asking the host to indicate an error.
var (
	// ErrMalformedSequence is returned when keys do not form a command.
	ErrMalformedSequence = errors.New("malformed key sequence")

	// ErrInvalidMotion is returned when an operator is followed by a
	// command that is not a motion.
	ErrInvalidMotion = errors.New("not a valid motion")

	// ErrNotCharacter is returned when a character argument is required
	// and the key has no literal form.
	ErrNotCharacter = errors.New("key is not a character")

	// ErrInvalidRegister is returned for an unknown register name.
	ErrInvalidRegister = errors.New("invalid register")

	// ErrReadOnly is returned when a writing command targets a read-only view.
	ErrReadOnly = errors.New("target is read-only")

	// ErrLiteralRejected is returned when the literal handler refuses a key.
	ErrLiteralRejected = errors.New("literal input rejected")
)

// ErrUnknownAction is wrapped by ConfigError.
var ErrUnknownAction = errors.New("action not registered")

// ConfigError reports a binding whose action is not registered. It is a
// defect in the keymaps, not a user mistake.
type ConfigError struct {
	Action string
	Keys   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s bound to %s: %v", e.Action, e.Keys, ErrUnknownAction)
}

func (e *ConfigError) Unwrap() error {
	return ErrUnknownAction
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// DispatchError is the error handed to Host.IndicateError. It carries the
// keys consumed up to and including the failing key.
type DispatchError struct {
	Op   string // step that failed: "lookup", "argument", "fallback", "execute"
	Keys string // consumed keys in Vim notation
	Err  error
}

func (e *DispatchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Keys != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Keys, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
