package macro

import (
	"sort"
	"sync"

	"github.com/dshills/keychord/internal/input/key"
)

// Recorder records key sequences for macro playback.
// It maintains a set of registers, each capable of storing a sequence of key events.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	appending  bool
	register   rune
	events     []key.Event
	registers  map[rune][]key.Event
	lastPlayed rune // Tracks last played register for @@ support
}

// NewRecorder creates a new macro recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]key.Event),
	}
}

// StartRecording begins recording to the specified register. An uppercase
// letter appends to the lowercase register.
// Returns an error if already recording or if the register is invalid.
func (r *Recorder) StartRecording(register rune) error {
	target, appending, err := resolve(register)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}

	r.recording = true
	r.appending = appending
	r.register = target
	r.events = nil
	return nil
}

// StopRecording ends the current recording and saves it to the register.
// Returns a copy of the recorded events, or nil if not recording.
func (r *Recorder) StopRecording() []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}

	r.recording = false
	if r.appending {
		r.registers[r.register] = append(r.registers[r.register], r.events...)
	} else if len(r.events) > 0 {
		r.registers[r.register] = r.events
	}
	result := append([]key.Event(nil), r.events...)
	r.events = nil
	return result
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0 if not recording.
func (r *Recorder) CurrentRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.register
	}
	return 0
}

// Record adds a key event to the current recording.
// Does nothing if not recording.
func (r *Recorder) Record(event key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.events = append(r.events, event)
	}
}

// Len returns the number of events recorded so far, or 0 if not recording.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return len(r.events)
}

// Get retrieves a copy of the macro stored in a register.
func (r *Recorder) Get(register rune) []key.Event {
	target, _, err := resolve(register)
	if err != nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]key.Event(nil), r.registers[target]...)
}

// Set stores a macro in a register, replacing any existing content. An
// uppercase register appends.
func (r *Recorder) Set(register rune, events []key.Event) error {
	target, appending, err := resolve(register)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if appending {
		events = append(append([]key.Event(nil), r.registers[target]...), events...)
	}
	if len(events) == 0 {
		delete(r.registers, target)
		return nil
	}
	r.registers[target] = append([]key.Event(nil), events...)
	return nil
}

// HasMacro returns true if the register contains a macro.
func (r *Recorder) HasMacro(register rune) bool {
	return len(r.Get(register)) > 0
}

// ListRegisters returns the registers that contain macros, in order.
func (r *Recorder) ListRegisters() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]rune, 0, len(r.registers))
	for reg, events := range r.registers {
		if len(events) > 0 {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// SetLastPlayed sets the last played register (for @@ support).
func (r *Recorder) SetLastPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the last played register (for @@ support).
// Returns 0 if no macro has been played.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}
