package input

import (
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// modeActions maps the built-in mode switching actions to the frame they
// install as the target's base mode.
var modeActions = map[string]mode.Frame{
	"mode.normal":          mode.NewFrame(mode.Normal),
	"mode.insert":          mode.NewFrame(mode.Insert),
	"mode.insertLineStart": mode.NewFrame(mode.Insert),
	"mode.append":          mode.NewFrame(mode.Insert),
	"mode.appendLineEnd":   mode.NewFrame(mode.Insert),
	"mode.openBelow":       mode.NewFrame(mode.Insert),
	"mode.openAbove":       mode.NewFrame(mode.Insert),
	"mode.replace":         mode.NewFrame(mode.Replace),
	"mode.visual":          visualFrame(mode.VisualChar),
	"mode.visualLine":      visualFrame(mode.VisualLine),
	"mode.visualBlock":     visualFrame(mode.VisualBlock),
}

func visualFrame(sub int) mode.Frame {
	f := mode.NewFrame(mode.Visual)
	f.Sub = sub
	return f
}

// ApplyModeAction performs a built-in mode.* action on t and reports
// whether d named one. Entering the visual mode that is already active
// returns to Normal mode, as "v" does in Vim.
func ApplyModeAction(d *vim.Descriptor, t *Target) bool {
	f, ok := modeActions[d.Action]
	if !ok {
		return false
	}
	if f.Primary == mode.Visual && t.modes.Base() == f {
		f = mode.NewFrame(mode.Normal)
	}
	t.modes.SetBase(f)
	return true
}
