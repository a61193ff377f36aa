package keymap

import (
	"strings"

	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// DefaultSource is the Source of the built-in keymaps.
const DefaultSource = "default"

// Defaults returns the built-in Vim keymaps for every mapping mode.
func Defaults() []*Keymap {
	return []*Keymap{
		DefaultNormalKeymap(),
		DefaultVisualKeymap(),
		DefaultOperatorPendingKeymap(),
		DefaultInsertKeymap(),
		DefaultCommandKeymap(),
	}
}

// motionBindings converts the motion catalogue into bindings.
func motionBindings() []Binding {
	bindings := make([]Binding, 0, len(vim.Motions))
	for _, m := range vim.Motions {
		b := NewBinding(m.Keys, m.Action).WithKind(vim.KindMotion).WithCategory("Movement")
		if m.Argument != vim.ArgNone {
			b = b.WithArgument(m.Argument)
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// textObjectBindings converts the text object catalogue into "i" and "a"
// prefixed motion bindings.
func textObjectBindings() []Binding {
	bindings := make([]Binding, 0, 2*len(vim.TextObjects))
	for _, obj := range vim.TextObjects {
		bindings = append(bindings,
			NewBinding("i"+obj.Key, obj.InnerAction).WithKind(vim.KindMotion).WithCategory("Text Objects"),
			NewBinding("a"+obj.Key, obj.AroundAction).WithKind(vim.KindMotion).WithCategory("Text Objects"),
		)
	}
	return bindings
}

// DefaultNormalKeymap returns default normal mode bindings.
func DefaultNormalKeymap() *Keymap {
	km := &Keymap{
		Name:          "default-normal",
		Mode:          mode.ModeNormal,
		Source:        DefaultSource,
		CountPrefixes: []string{"<C-w>"},
	}

	km.Bindings = append(km.Bindings, motionBindings()...)

	for _, op := range vim.Operators {
		flags := []string{"operator_pending"}
		if op.Writes {
			flags = append(flags, "writes")
		}
		km.AddBinding(Binding{
			Keys:     op.Keys,
			Action:   op.Action,
			Kind:     vim.KindOperator.String(),
			Argument: vim.ArgMotion.String(),
			Flags:    flags,
			Linewise: op.LinewiseAction,
			Category: "Operators",
		})
	}

	km.Bindings = append(km.Bindings, []Binding{
		// Editing
		{Keys: "x", Action: "editor.deleteChar", Flags: []string{"writes"}, Description: "Delete character", Category: "Editing"},
		{Keys: "X", Action: "editor.deleteCharBefore", Flags: []string{"writes"}, Description: "Delete character before", Category: "Editing"},
		{Keys: "D", Action: "editor.deleteToEnd", Flags: []string{"writes"}, Description: "Delete to end of line", Category: "Editing"},
		{Keys: "C", Action: "editor.changeToEnd", Flags: []string{"writes"}, Description: "Change to end of line", Category: "Editing"},
		{Keys: "Y", Action: "editor.yankLine", Description: "Yank line", Category: "Editing"},
		{Keys: "J", Action: "editor.joinLines", Flags: []string{"writes"}, Description: "Join lines", Category: "Editing"},
		{Keys: "~", Action: "editor.toggleCaseChar", Flags: []string{"writes"}, Description: "Toggle case of character", Category: "Editing"},
		{Keys: "r", Action: "editor.replaceChar", Argument: "character", Flags: []string{"writes"}, Description: "Replace character", Category: "Editing"},
		{Keys: "p", Action: "editor.pasteAfter", Flags: []string{"writes"}, Description: "Paste after", Category: "Editing"},
		{Keys: "P", Action: "editor.pasteBefore", Flags: []string{"writes"}, Description: "Paste before", Category: "Editing"},

		// History
		{Keys: "u", Action: "editor.undo", Flags: []string{"writes"}, Description: "Undo", Category: "History"},
		{Keys: "<C-r>", Action: "editor.redo", Flags: []string{"writes"}, Description: "Redo", Category: "History"},
		{Keys: ".", Action: "editor.repeatLast", Flags: []string{"writes"}, Description: "Repeat last change", Category: "History"},

		// Mode
		{Keys: "i", Action: "mode.insert", Flags: []string{"writes"}, Description: "Enter insert mode", Category: "Mode"},
		{Keys: "I", Action: "mode.insertLineStart", Flags: []string{"writes"}, Description: "Insert at line start", Category: "Mode"},
		{Keys: "a", Action: "mode.append", Flags: []string{"writes"}, Description: "Append after cursor", Category: "Mode"},
		{Keys: "A", Action: "mode.appendLineEnd", Flags: []string{"writes"}, Description: "Append at line end", Category: "Mode"},
		{Keys: "o", Action: "mode.openBelow", Flags: []string{"writes"}, Description: "Open line below", Category: "Mode"},
		{Keys: "O", Action: "mode.openAbove", Flags: []string{"writes"}, Description: "Open line above", Category: "Mode"},
		{Keys: "R", Action: "mode.replace", Flags: []string{"writes"}, Description: "Enter replace mode", Category: "Mode"},
		{Keys: "v", Action: "mode.visual", Description: "Enter visual mode", Category: "Mode"},
		{Keys: "V", Action: "mode.visualLine", Description: "Enter visual line mode", Category: "Mode"},
		{Keys: "<C-v>", Action: "mode.visualBlock", Description: "Enter visual block mode", Category: "Mode"},
		{Keys: ":", Action: "command.execute", Argument: "cmdline", Description: "Run an Ex command", Category: "Mode"},

		// Marks, registers and macros
		{Keys: "m", Action: "mark.set", Argument: "character", Description: "Set mark", Category: "Marks"},
		{Keys: "\"", Action: "register.select", Kind: "register", Argument: "character", Description: "Select register", Category: "Registers"},
		{Keys: "q", Action: "macro.toggleRecord", Argument: "character", Flags: []string{"no_argument_recording"}, Description: "Toggle macro recording", Category: "Macros"},
		{Keys: "@", Action: "macro.play", Argument: "character", Description: "Play macro", Category: "Macros"},

		// Scrolling
		{Keys: "<C-d>", Action: "view.halfPageDown", Description: "Scroll half page down", Category: "Scrolling"},
		{Keys: "<C-u>", Action: "view.halfPageUp", Description: "Scroll half page up", Category: "Scrolling"},
		{Keys: "<C-f>", Action: "view.pageDown", Description: "Scroll page down", Category: "Scrolling"},
		{Keys: "<C-b>", Action: "view.pageUp", Description: "Scroll page up", Category: "Scrolling"},
		{Keys: "zz", Action: "view.centerCursor", Description: "Center cursor on screen", Category: "Scrolling"},
		{Keys: "zt", Action: "view.topCursor", Description: "Cursor to top of screen", Category: "Scrolling"},
		{Keys: "zb", Action: "view.bottomCursor", Description: "Cursor to bottom of screen", Category: "Scrolling"},

		// Windows
		{Keys: "<C-w>h", Action: "window.left", Description: "Focus window left", Category: "Windows"},
		{Keys: "<C-w>j", Action: "window.down", Description: "Focus window below", Category: "Windows"},
		{Keys: "<C-w>k", Action: "window.up", Description: "Focus window above", Category: "Windows"},
		{Keys: "<C-w>l", Action: "window.right", Description: "Focus window right", Category: "Windows"},
		{Keys: "<C-w>s", Action: "window.split", Description: "Split window", Category: "Windows"},
		{Keys: "<C-w>v", Action: "window.vsplit", Description: "Split window vertically", Category: "Windows"},
		{Keys: "<C-w>c", Action: "window.close", Description: "Close window", Category: "Windows"},

		// Files
		{Keys: "ZZ", Action: "file.saveQuit", Description: "Save and quit", Category: "Files"},
		{Keys: "ZQ", Action: "file.quit", Description: "Quit without saving", Category: "Files"},
	}...)

	return km
}

// DefaultVisualKeymap returns default visual mode bindings.
func DefaultVisualKeymap() *Keymap {
	km := &Keymap{
		Name:   "default-visual",
		Mode:   mode.ModeVisual,
		Source: DefaultSource,
	}

	km.Bindings = append(km.Bindings, motionBindings()...)
	km.Bindings = append(km.Bindings, textObjectBindings()...)

	// Operators act on the selection directly.
	for _, op := range vim.Operators {
		b := NewBinding(op.Keys, strings.Replace(op.Action, "editor.", "selection.", 1)).WithCategory("Operators")
		if op.Writes {
			b = b.WithFlags("writes")
		}
		km.AddBinding(b)
	}

	km.Bindings = append(km.Bindings, []Binding{
		{Keys: "x", Action: "selection.delete", Flags: []string{"writes"}, Description: "Delete selection", Category: "Editing"},
		{Keys: "J", Action: "selection.join", Flags: []string{"writes"}, Description: "Join selected lines", Category: "Editing"},
		{Keys: "u", Action: "selection.toLower", Flags: []string{"writes"}, Description: "Lowercase selection", Category: "Editing"},
		{Keys: "U", Action: "selection.toUpper", Flags: []string{"writes"}, Description: "Uppercase selection", Category: "Editing"},
		{Keys: "~", Action: "selection.toggleCase", Flags: []string{"writes"}, Description: "Toggle case", Category: "Editing"},
		{Keys: "r", Action: "selection.replace", Argument: "character", Flags: []string{"writes"}, Description: "Replace with character", Category: "Editing"},
		{Keys: "p", Action: "selection.paste", Flags: []string{"writes"}, Description: "Replace selection with register", Category: "Editing"},

		{Keys: "o", Action: "selection.swapAnchor", Description: "Swap selection anchor", Category: "Selection"},
		{Keys: "v", Action: "mode.visual", Description: "Toggle visual mode", Category: "Mode"},
		{Keys: "V", Action: "mode.visualLine", Description: "Switch to visual line", Category: "Mode"},
		{Keys: "<C-v>", Action: "mode.visualBlock", Description: "Switch to visual block", Category: "Mode"},
		{Keys: ":", Action: "command.execute", Argument: "cmdline", Description: "Run an Ex command on the selection", Category: "Mode"},
		{Keys: "\"", Action: "register.select", Kind: "register", Argument: "character", Description: "Select register", Category: "Registers"},
	}...)

	return km
}

// DefaultOperatorPendingKeymap returns the motions, text objects and
// linewise repeats accepted while an operator waits for its motion.
func DefaultOperatorPendingKeymap() *Keymap {
	km := &Keymap{
		Name:   "default-operator-pending",
		Mode:   mode.ModeOperatorPending,
		Source: DefaultSource,
	}

	km.Bindings = append(km.Bindings, motionBindings()...)
	km.Bindings = append(km.Bindings, textObjectBindings()...)

	// "dd" repeats the whole operator; "guu" repeats its last key.
	seen := make(map[string]bool)
	for _, op := range vim.Operators {
		repeats := []string{op.Keys}
		if strings.HasPrefix(op.Keys, "g") && len(op.Keys) > 1 {
			repeats = append(repeats, op.Keys[1:])
		}
		for _, keys := range repeats {
			if seen[keys] {
				continue
			}
			seen[keys] = true
			km.AddBinding(NewBinding(keys, op.LinewiseAction).
				WithKind(vim.KindLinewise).
				WithCategory("Linewise"))
		}
	}

	return km
}

// DefaultInsertKeymap returns default insert mode bindings. Keys without
// a binding are inserted literally.
func DefaultInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-insert",
		Mode:   mode.ModeInsert,
		Source: DefaultSource,
		Bindings: []Binding{
			{Keys: "<Esc>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},
			{Keys: "<C-c>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},

			{Keys: "<C-k>", Action: "editor.insertChar", Argument: "digraph", Flags: []string{"writes"}, Description: "Insert digraph", Category: "Insert"},
			{Keys: "<C-v>", Action: "editor.insertChar", Argument: "character", Flags: []string{"writes"}, Description: "Insert next key literally", Category: "Insert"},
			{Keys: "<C-r>", Action: "editor.insertRegister", Argument: "character", Flags: []string{"writes"}, Description: "Insert from register", Category: "Insert"},
			{Keys: "<C-w>", Action: "editor.deleteWordBefore", Flags: []string{"writes"}, Description: "Delete word before cursor", Category: "Editing"},
			{Keys: "<C-u>", Action: "editor.deleteToLineStart", Flags: []string{"writes"}, Description: "Delete to line start", Category: "Editing"},

			{Keys: "<Left>", Action: "cursor.left", Description: "Move left", Category: "Navigation"},
			{Keys: "<Right>", Action: "cursor.right", Description: "Move right", Category: "Navigation"},
			{Keys: "<Up>", Action: "cursor.up", Description: "Move up", Category: "Navigation"},
			{Keys: "<Down>", Action: "cursor.down", Description: "Move down", Category: "Navigation"},
			{Keys: "<Home>", Action: "cursor.lineStart", Description: "Move to line start", Category: "Navigation"},
			{Keys: "<End>", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Navigation"},
		},
	}
}

// DefaultCommandKeymap returns default command-line bindings. Only keys
// that end the capture are bound; everything else is handed to the
// command-line editor.
func DefaultCommandKeymap() *Keymap {
	return &Keymap{
		Name:   "default-command",
		Mode:   mode.ModeCommand,
		Source: DefaultSource,
		Bindings: []Binding{
			{Keys: "<CR>", Action: "cmdline.submit", Flags: []string{"completes_cmdline"}, Description: "Execute command line", Category: "Execute"},
			{Keys: "<C-j>", Action: "cmdline.submit", Flags: []string{"completes_cmdline"}, Description: "Execute command line", Category: "Execute"},
		},
	}
}
