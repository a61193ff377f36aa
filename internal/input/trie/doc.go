// Package trie implements the command trie: a prefix tree from key
// sequences to command templates, with one root per mapping mode.
//
// Nodes form a closed set:
//   - *Branch: the sequence is incomplete; children are keyed by key.Event
//   - *Command: the sequence is complete and bound to a command
//   - *Argument: the sequence is complete and the command reads an
//     argument (a motion, a character, a digraph or command-line text)
//
// A Trie is populated through a Builder, which rejects sequences that are
// empty, already bound, or prefixes of one another. Once built it is
// read-only and may be shared between input targets.
//
//	b := trie.NewBuilder()
//	b.Add(mode.MapNormal, key.Events("gg"), &trie.Command{Action: "cursor.documentStart", Kind: vim.KindMotion})
//	t := b.Build()
//	n, ok := t.Find(mode.MapNormal, key.Events("gg"))
package trie
