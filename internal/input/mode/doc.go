// Package mode provides the modal state of an input target.
//
// A Frame combines three things:
//   - Primary: the editor mode the user sees (normal, insert, replace,
//     visual, command-line entry)
//   - Sub: a mode-specific refinement, e.g. visual-line or visual-block
//   - Mapping: which key bindings are active (normal, visual,
//     operator-pending, insert, command-line)
//
// Frames live on a Stack. The bottom frame is the long-lived editor mode
// and survives every reset of pending input. Temporary excursions are
// pushed on top:
//
//	┌──────────────────────────┐
//	│ normal/operator-pending  │  pushed by "d", popped when the motion resolves
//	├──────────────────────────┤
//	│ normal                   │  base
//	└──────────────────────────┘
//
// Whoever pushes a frame pops it exactly once, on success and on abort.
// Pop never removes the base frame; commands that switch the editor mode
// replace it with SetBase.
package mode
