// Package key provides the key event value type consumed by the command
// dispatcher.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press, comparable by value
//   - Sequence: A series of events, used when registering bindings
//
// Events are plain values. Two events describing the same keystroke compare
// equal with ==, which lets them label edges of the command trie directly.
// Rune events never carry ModShift: the case of the rune already encodes it.
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//
// Sequences may be space separated ("g g") or continuous ("d2w", "<C-w>j").
package key
