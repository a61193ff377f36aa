// Package keymap provides the registration data for the command trie.
//
// A Keymap is a named set of bindings for one mapping mode. Each Binding
// maps a key sequence to an action and declares the command's grammatical
// role: its kind (normal, motion, operator, linewise, register), the
// argument it expects (motion, character, digraph, cmdline) and its flags.
//
// # Precedence
//
// Build applies keymaps in ascending Priority, stable within equal
// priority. A later binding of the same keys in the same mode replaces the
// earlier one; the action "<Nop>" removes it.
//
// # Key Sequence Parsing
//
//	"j"        - Single character
//	"gg"       - Continuous sequence
//	"g g"      - Space separated sequence
//	"<C-w>j"   - Vim notation
//	"Ctrl+S"   - Readable notation (space separated sequences only)
//
// # Files
//
// Loader reads YAML, TOML and Lua keymap files:
//
//	keymaps:
//	  - name: mine
//	    mode: normal
//	    bindings:
//	      - {keys: "<C-s>", action: file.save}
//	      - {keys: "gc", action: comment.toggle, kind: operator, argument: motion, flags: [operator_pending, writes]}
//
// The Lua form calls map, unmap, allow_count and priority:
//
//	map("normal", "<C-s>", "file.save")
//	map("normal", "s", "editor.substitute", {argument = "character", flags = {"writes"}})
//
// # Usage
//
//	t, err := keymap.Build(append(keymap.Defaults(), userKeymaps...)...)
package keymap
