// Package editor implements the per-note editing session and its autosave.
//
// # States
//
//	Loading → Clean ⇄ Dirty → Saving → Clean
//	any     → Closed
//
// Open loads the note, or prepares a blank in-memory note when none exists
// (IsNew reports this sub-state of Clean; the first save inserts instead of
// updating). SetTitle and SetContent mark the session Dirty and restart the
// debounce timer, so a save happens only after a quiet period. TogglePin,
// ToggleLock, SetColor and Flush save immediately.
//
// Every save checks whether the row exists: an existing row gets a partial
// update, a missing one is created from the in-memory note. A note removed
// elsewhere while being edited is therefore recreated by the next save.
//
// # Concurrency
//
// Saves are serialized per session; a second save waits for the first to
// finish. Close cancels the pending timer, waits for a save that is already
// running and rejects further edits with ErrSessionClosed. A failed save
// leaves the session Dirty with its edits intact so the next save retries.
package editor
