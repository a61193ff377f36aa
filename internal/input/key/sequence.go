package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sequence represents a series of key events forming a command.
// Examples: "g g" (go to top), "d i w" (delete inner word), "<C-w>j"
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Events: make([]Event, 0, 4), // Most sequences are short
	}
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// String returns a human-readable representation.
// Examples: "g g", "d i w", "C-s"
func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// VimString returns a Vim-style representation.
// Examples: "gg", "diw", "<C-s>"
func (s *Sequence) VimString() string {
	return VimString(s.Events)
}

// VimString renders a slice of events in continuous Vim notation.
func VimString(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.VimString())
	}
	return sb.String()
}

// ParseSequence parses a key sequence string into a Sequence.
// The string can contain space-separated keys or a continuous Vim-style sequence.
// Examples: "g g", "d i w", "<C-x><C-s>", "dd", "3c2w"
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	seq := NewSequence()
	if s == "" {
		return seq, nil
	}

	if strings.Contains(s, " ") {
		for _, part := range strings.Fields(s) {
			event, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq.Add(event)
		}
		return seq, nil
	}

	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				event, err := Parse(s[i : i+end+2])
				if err != nil {
					return nil, fmt.Errorf("at offset %d: %w", i, err)
				}
				seq.Add(event)
				i += end + 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq.Add(NewRuneEvent(r, ModNone))
		i += size
	}

	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

// Events parses a sequence string and returns its events, panicking on error.
// It is a convenience for tests and static tables.
func Events(s string) []Event {
	return MustParseSequence(s).Events
}
