package mode

import "strings"

// Primary is the editor mode the user perceives.
type Primary uint8

const (
	// Normal is navigation and commands.
	Normal Primary = iota

	// Insert is text input.
	Insert

	// Replace overwrites text as it is typed.
	Replace

	// Visual is selection; the frame's Sub distinguishes char, line and block.
	Visual

	// CommandLineEntry is Ex-style command or search input.
	CommandLineEntry
)

// Standard mode names.
const (
	ModeNormal          = "normal"
	ModeInsert          = "insert"
	ModeReplace         = "replace"
	ModeVisual          = "visual"
	ModeCommand         = "command"
	ModeOperatorPending = "operator-pending"
)

var primaryNames = [...]string{
	Normal:           ModeNormal,
	Insert:           ModeInsert,
	Replace:          ModeReplace,
	Visual:           ModeVisual,
	CommandLineEntry: ModeCommand,
}

// String returns the mode name.
func (p Primary) String() string {
	if int(p) < len(primaryNames) {
		return primaryNames[p]
	}
	return "unknown"
}

// DisplayName returns a human-readable name for the status line.
func (p Primary) DisplayName() string {
	if p == Normal {
		return "NORMAL"
	}
	return strings.ToUpper(p.String())
}

// Mapping selects which set of key bindings is active.
type Mapping uint8

const (
	MapNormal Mapping = iota
	MapVisual
	MapOperatorPending
	MapInsert
	MapCommandLine
)

// Mappings lists every mapping mode.
var Mappings = []Mapping{MapNormal, MapVisual, MapOperatorPending, MapInsert, MapCommandLine}

var mappingNames = [...]string{
	MapNormal:          ModeNormal,
	MapVisual:          ModeVisual,
	MapOperatorPending: ModeOperatorPending,
	MapInsert:          ModeInsert,
	MapCommandLine:     ModeCommand,
}

// String returns the mapping mode name.
func (m Mapping) String() string {
	if int(m) < len(mappingNames) {
		return mappingNames[m]
	}
	return "unknown"
}

// ParseMapping returns the mapping mode with the given name. Vim's
// single-letter map prefixes (n, v, o, i, c) are accepted too.
func ParseMapping(name string) (Mapping, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModeNormal, "n":
		return MapNormal, true
	case ModeVisual, "v", "x":
		return MapVisual, true
	case ModeOperatorPending, "operator_pending", "o":
		return MapOperatorPending, true
	case ModeInsert, "i":
		return MapInsert, true
	case ModeCommand, "cmdline", "c":
		return MapCommandLine, true
	}
	return MapNormal, false
}

// AcceptsCount reports whether digits may be read as a count prefix.
func (m Mapping) AcceptsCount() bool {
	return m == MapNormal || m == MapVisual || m == MapOperatorPending
}

// Visual sub-modes.
const (
	VisualChar = iota
	VisualLine
	VisualBlock
)

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// Frame is one entry of the mode stack.
type Frame struct {
	Primary Primary
	Sub     int
	Mapping Mapping
}

// NewFrame returns a frame for primary using its usual mapping mode.
func NewFrame(p Primary) Frame {
	f := Frame{Primary: p}
	switch p {
	case Insert, Replace:
		f.Mapping = MapInsert
	case Visual:
		f.Mapping = MapVisual
	case CommandLineEntry:
		f.Mapping = MapCommandLine
	default:
		f.Mapping = MapNormal
	}
	return f
}

// OperatorPending returns the temporary frame pushed while an operator
// waits for its motion. It keeps the primary mode of parent.
func OperatorPending(parent Frame) Frame {
	return Frame{Primary: parent.Primary, Sub: parent.Sub, Mapping: MapOperatorPending}
}

// CursorStyle returns the cursor style for the frame.
func (f Frame) CursorStyle() CursorStyle {
	switch {
	case f.Mapping == MapOperatorPending:
		return CursorUnderline
	case f.Primary == Insert, f.Primary == CommandLineEntry:
		return CursorBar
	case f.Primary == Replace:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// String returns "primary/mapping", with the visual sub-mode when set.
func (f Frame) String() string {
	s := f.Primary.String()
	if f.Primary == Visual {
		switch f.Sub {
		case VisualLine:
			s = "visual-line"
		case VisualBlock:
			s = "visual-block"
		}
	}
	if f.Mapping != NewFrame(f.Primary).Mapping {
		s += "/" + f.Mapping.String()
	}
	return s
}
