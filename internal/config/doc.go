// Package config loads the keychord configuration.
//
// Configuration is read from a TOML file and then overridden from
// KEYCHORD_* environment variables:
//
//	keymaps = ["vim-extra.yaml", "leader.lua"]
//
//	[log]
//	level = "debug"
//
//	[input]
//	erase_key = "<BS>"
//	cancel_keys = ["<Esc>", "<C-c>"]
//
//	[options]
//	digraph = true
//
//	[digraphs]
//	"e=" = "€"
//
// Keymap files are loaded after the built-in keymaps and may override
// them. A Watcher reports edits to the config and keymap files so the trie
// can be rebuilt while the program runs.
package config
