package mode

// ChangeCallback is called when the top frame changes.
type ChangeCallback func(from, to Frame)

// Stack is a non-empty stack of mode frames. The bottom frame is the
// long-lived editor mode; frames above it are temporary excursions such as
// operator-pending or command-line entry, popped by whoever pushed them.
//
// A Stack belongs to a single input target and is not safe for concurrent
// use.
type Stack struct {
	frames    []Frame
	callbacks []ChangeCallback
}

// NewStack creates a stack whose base frame is base.
func NewStack(base Frame) *Stack {
	frames := make([]Frame, 1, 4)
	frames[0] = base
	return &Stack{frames: frames}
}

// Top returns the active frame.
func (s *Stack) Top() Frame {
	return s.frames[len(s.frames)-1]
}

// Base returns the bottom frame.
func (s *Stack) Base() Frame {
	return s.frames[0]
}

// Depth returns the number of temporary frames above the base.
func (s *Stack) Depth() int {
	return len(s.frames) - 1
}

// Push activates a temporary frame.
func (s *Stack) Push(f Frame) {
	from := s.Top()
	s.frames = append(s.frames, f)
	s.notify(from, f)
}

// Pop removes the top temporary frame and returns it. The base frame is
// never removed; popping at depth zero returns false.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) == 1 {
		return Frame{}, false
	}
	top := s.Top()
	s.frames = s.frames[:len(s.frames)-1]
	s.notify(top, s.Top())
	return top, true
}

// SetBase replaces the bottom frame, e.g. when a command enters insert
// mode. Temporary frames above it are kept.
func (s *Stack) SetBase(f Frame) {
	from := s.Top()
	s.frames[0] = f
	if len(s.frames) == 1 {
		s.notify(from, f)
	}
}

// Unwind pops every temporary frame and returns how many were removed.
func (s *Stack) Unwind() int {
	n := 0
	for {
		if _, ok := s.Pop(); !ok {
			return n
		}
		n++
	}
}

// Is returns true if the top frame's primary mode is any of modes.
func (s *Stack) Is(modes ...Primary) bool {
	top := s.Top().Primary
	for _, p := range modes {
		if top == p {
			return true
		}
	}
	return false
}

// OnChange registers a callback for top-frame changes.
// Returns a function to unregister the callback.
func (s *Stack) OnChange(callback ChangeCallback) func() {
	s.callbacks = append(s.callbacks, callback)
	index := len(s.callbacks) - 1

	return func() {
		// Setting to nil preserves indices of later registrations.
		if index < len(s.callbacks) {
			s.callbacks[index] = nil
		}
	}
}

func (s *Stack) notify(from, to Frame) {
	if from == to {
		return
	}
	for _, cb := range s.callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}
