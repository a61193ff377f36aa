// Package vim defines the command model produced by key dispatch.
//
// A command is described by a Descriptor: the action it is bound to, its
// grammatical Kind, its Flags, a typed count and, for commands that declare
// an ArgumentKind, the Argument read after its keys. The grammar is:
//
//	[count]["x][count]command
//	[count]["x][count]operator[count]motion
//	[count]["x][count]operator operator   (line-wise: dd, yy, cc)
//	[count]command char                   (r, f, t, m)
//	command text<CR>                      (:, /, ?)
//
// Examples:
//   - "5j": motion with count 5
//   - "d3w": delete with a motion argument {count 3, word forward}
//   - "3c2w": change with a motion argument whose count is 6
//   - "3dd": linewise delete with count 3
//   - `"ayw`: yank into register a
//
// Counts multiply across an operator and its motion (MergeMotion); an
// unspecified count stays unspecified until read with EffectiveCount.
//
// The package also carries the standard Vim catalogue of operators,
// motions and text objects that default keymaps are generated from.
package vim
