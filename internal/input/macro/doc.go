// Package macro provides Vim-style keyboard macro recording and playback.
//
// A macro is a recorded sequence of key events stored in a register. The
// dispatcher hands every key that completes a command, fails, or is taken
// by an insert fallback to Recorder.Record while recording is active, so a
// register holds exactly the keys the user typed, minus the keys of
// commands flagged no_argument_recording (the "qa" that starts recording).
//
// Registers follow Vim: a-z and 0-9 hold macros, "A"-"Z" append to the
// lowercase register, and '"' is the unnamed register.
//
//	recorder := macro.NewRecorder()
//	recorder.StartRecording('a')
//	// ... dispatcher calls recorder.Record(ev) ...
//	recorder.StopRecording()
//
//	player := macro.NewPlayer(recorder)
//	player.Play(ctx, 'a', 3, func(ev key.Event) error {
//	    dispatcher.HandleKeyEvent(target, ev)
//	    return nil
//	})
//
// Macros persist as YAML in key notation (see Save and Load).
//
// Recorder is safe for concurrent use.
package macro
