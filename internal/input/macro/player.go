package macro

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dshills/keychord/internal/input/key"
)

// EventHandler processes one replayed key event. Returning an error stops
// playback.
type EventHandler func(event key.Event) error

// Player replays recorded macros through an EventHandler, normally a
// dispatcher's HandleKeyEvent for the target that requested playback.
type Player struct {
	recorder *Recorder
	playing  atomic.Bool
}

// NewPlayer creates a new macro player that uses the given recorder for macro storage.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{
		recorder: recorder,
	}
}

// Play replays the macro in register count times (minimum 1). The register
// LastPlayedRegister replays the previous macro. A macro that plays a macro
// while it is being played fails with ErrAlreadyPlaying instead of
// recursing.
func (p *Player) Play(ctx context.Context, register rune, count int, handler EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}
	if register == LastPlayedRegister {
		register = p.recorder.LastPlayed()
		if register == 0 {
			return fmt.Errorf("%w: no macro has been played", ErrEmptyRegister)
		}
	}
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	events := p.recorder.Get(register)
	if len(events) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRegister, register)
	}
	if count < 1 {
		count = 1
	}

	if !p.playing.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer p.playing.Store(false)

	for i := 0; i < count; i++ {
		for _, event := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := handler(event); err != nil {
				return err
			}
		}
	}

	// Track last played register only after successful playback
	p.recorder.SetLastPlayed(register)
	return nil
}

// IsPlaying returns true if a macro is currently being played.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}
