package key

import "github.com/gdamore/tcell/v2"

// tcellKeys maps tcell special keys to Key values.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// FromTcell converts a tcell key event into a normalized Event.
// Terminal control codes (Ctrl-A through Ctrl-Z, Ctrl-\, Ctrl-], Ctrl-^,
// Ctrl-_) become Ctrl-modified rune events. The Tab, Enter, Backspace and
// Escape codes are reported as those keys.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMod(ev.Modifiers())
	k := ev.Key()
	if k == tcell.KeyRune && ev.Rune() > 0 && ev.Rune() < ' ' {
		k = tcell.Key(ev.Rune())
	}

	// Checked before the control range since these share codes with it.
	if mapped, ok := tcellKeys[k]; ok {
		return NewSpecialEvent(mapped, mods)
	}

	switch {
	case k == tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods)
	case k == tcell.KeyCtrlSpace:
		return NewRuneEvent(' ', mods.With(ModCtrl))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl))
	case k >= tcell.KeyCtrlBackslash && k <= tcell.KeyCtrlUnderscore:
		return NewRuneEvent('\\'+rune(k-tcell.KeyCtrlBackslash), mods.With(ModCtrl))
	}

	return NewSpecialEvent(KeyNone, mods)
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
