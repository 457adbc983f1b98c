package outline

import "errors"

// Errors returned by tree operations.
var (
	// ErrNodeNotFound indicates a NodeID no longer resolves in the arena.
	ErrNodeNotFound = errors.New("outline: node not found")
	// ErrPositionStale indicates a Position no longer resolves against its
	// recorded parent and index.
	ErrPositionStale = errors.New("outline: position is stale")
	// ErrNoSuchChild indicates an index is out of range for a child list.
	ErrNoSuchChild = errors.New("outline: child index out of range")
)
