package undo

import "errors"

// Sentinel errors for undo/redo protocol and replay failures (§7). None of
// these are fatal to the engine: every caller logs through ulog and either
// recovers or treats the action as a no-op.
var (
	// ErrNothingToUndo is returned by Undo when the stack has no bead at
	// the cursor.
	ErrNothingToUndo = errors.New("undo: nothing to undo")
	// ErrNothingToRedo is returned by Redo when the stack has no bead past
	// the cursor.
	ErrNothingToRedo = errors.New("undo: nothing to redo")
	// ErrProtocolMisuse indicates an afterX call with no matching beforeX
	// bunch, or an afterChangeGroup whose top-of-stack is not a
	// beforeGroup bead.
	ErrProtocolMisuse = errors.New("undo: protocol misuse")
	// ErrMissingHandler indicates a bead has no revert/apply handler
	// registered for its kind.
	ErrMissingHandler = errors.New("undo: no handler for bead kind")
	// ErrStalePosition indicates a bead's stored position no longer
	// resolves against the current tree.
	ErrStalePosition = errors.New("undo: position no longer resolves")
)
