// Package input turns key events into resolved Vim commands.
//
// A Dispatcher owns the command trie built from keymaps and the
// collaborators that act on resolved commands. Each document view is a
// Target with its own mode stack and partially typed command. Keys are fed
// one at a time:
//
//	tr, _ := keymap.Build(keymap.Defaults()...)
//	d := input.New(tr,
//	    input.WithActions(input.NewActionSet(keymap.Actions(keymap.Defaults()...)...)),
//	    input.WithExecutor(exec),
//	    input.WithLiteralHandler(buffer),
//	)
//	view := input.NewTarget("main")
//	for _, ev := range key.Events("3c2w") {
//	    d.HandleKeyEvent(view, ev)
//	}
//
// # Grammar
//
// Each key is handled by the first rule that applies:
//
//   - Cancel keys (Escape, Ctrl-C) abandon a partial command. With nothing
//     pending in Normal or Visual mode they ask the Host to cancel the
//     current edit; elsewhere they are looked up like other keys.
//   - An armed digraph machine consumes the key.
//   - Digits fold into the count in Normal, Visual and Operator-pending
//     mode. A leading 0 is the "0" motion.
//   - The erase key drops the last count digit.
//   - A character argument takes the key's literal form; <C-k> starts a
//     digraph instead.
//   - Otherwise the key is looked up in the trie from the cursor. A miss
//     in Insert or Replace mode inserts the key through the LiteralHandler,
//     and in command-line mode edits the command line.
//
// An operator such as "d" pushes an operator-pending mode frame and waits
// for a motion. Counts on the operator and the motion multiply onto the
// motion, so "3c2w" changes six words. Repeating the operator ("dd")
// replaces it with its linewise form.
//
// # Outcomes
//
// HandleKeyEvent returns Continue while more keys are needed, Executed when
// a command ran or a literal was inserted, and Aborted when the partial
// command was dropped. Malformed input is reported to Host.IndicateError as
// a *DispatchError; unregistered actions additionally satisfy
// IsConfigError.
package input
