// Package terminal is the tcell screen used by the interactive keychord
// session. It converts terminal input into key events and draws plain
// text lines.
package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

// EventType identifies the kind of terminal event.
type EventType uint8

const (
	// EventNone is an event the session ignores (mouse, focus, paste).
	EventNone EventType = iota
	// EventKey carries a key press.
	EventKey
	// EventResize reports a new screen size.
	EventResize
	// EventInterrupt carries a value posted with Interrupt.
	EventInterrupt
	// EventClosed is returned once the screen has been shut down.
	EventClosed
)

// Event is one terminal input event.
type Event struct {
	Type EventType
	Key  key.Event

	Width  int
	Height int

	// Data is the value passed to Interrupt.
	Data any
}

// Style selects how a line of text is drawn.
type Style uint8

const (
	StyleNormal Style = iota
	StyleBold
	StyleDim
	StyleError
)

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// New creates a terminal on the controlling tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as a tcell simulation
// screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen. It must be called before drawing.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

// Shutdown restores the terminal. PollEvent returns EventClosed afterwards.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear blanks the screen.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// DrawText draws text on row y starting at column x, clipped to the
// screen width. It returns the column after the last cell drawn.
func (t *Terminal) DrawText(x, y int, text string, style Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if y < 0 || y >= height {
		return x
	}
	ts := convertStyle(style)
	for _, r := range text {
		if x >= width {
			break
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, ts)
		}
		x++
	}
	return x
}

// Show flushes drawn content to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// ShowCursor places the cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

// SetCursorStyle sets the cursor shape for a mode frame's style.
func (t *Terminal) SetCursorStyle(style mode.CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case mode.CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	default:
		tcellStyle = tcell.CursorStyleSteadyBlock
	}
	t.screen.SetCursorStyle(tcellStyle)
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // not every terminal has a bell
}

// PollEvent blocks until the next event.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventClosed}
	}
	return convertEvent(ev)
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data. It is
// safe to call from any goroutine.
func (t *Terminal) Interrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: key.FromTcell(e)}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	switch s {
	case StyleBold:
		style = style.Bold(true)
	case StyleDim:
		style = style.Dim(true)
	case StyleError:
		style = style.Foreground(tcell.ColorRed).Bold(true)
	}
	return style
}
