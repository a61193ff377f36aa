package macro

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dshills/keychord/internal/input/vim"
)

// Register errors.
var (
	ErrInvalidRegister  = errors.New("invalid macro register")
	ErrEmptyRegister    = errors.New("empty macro register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrAlreadyPlaying   = errors.New("already playing a macro")
)

// LastPlayedRegister replays the most recently played macro ("@@").
const LastPlayedRegister = '@'

// resolve converts a register name into the register that stores the macro
// and whether recording appends to it. Uppercase letters append to their
// lowercase register; the unnamed register is stored as is.
func resolve(r rune) (target rune, appending bool, err error) {
	if r >= 'A' && r <= 'Z' {
		return unicode.ToLower(r), true, nil
	}
	if !vim.IsRecordable(r) {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidRegister, r)
	}
	return r, false, nil
}

// IsValidRegister reports whether r can hold a macro.
func IsValidRegister(r rune) bool {
	_, _, err := resolve(r)
	return err == nil
}

// IsAppendRegister returns true if r is an uppercase letter (A-Z).
// In Vim, uppercase letters append to the corresponding lowercase register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
