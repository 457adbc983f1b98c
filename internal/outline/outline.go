// Package outline implements the tree-model collaborator that internal/undo
// treats as an external capability: a document made of shared content cells
// ("V" nodes) that can appear at more than one path in the tree at once
// ("P" positions), exactly the cloned-node outline model described by the
// undo engine's data model.
//
// The engine never mutates a V directly; it goes through the operations on
// Tree and Position below, the same separation the spec draws between the
// core undo logic and its "tree model" external interface.
package outline

import (
	"github.com/google/uuid"
)

// NodeID identifies a V uniquely and stably for the lifetime of the document.
// Beads reference nodes by NodeID, never by Position, so a clone's several
// appearances all resolve back to one identity.
type NodeID string

// NewNodeID returns a fresh random node identity.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// Node is the logical content cell ("V") shared across every position that
// names it. Children and Parents are stored as identities, not references,
// so the arena can hold cycles of appearance (a node's parent can itself be
// a descendant via another clone) without Go-level reference cycles.
type Node struct {
	ID       NodeID
	Head     string
	Body     string
	Marked   bool
	Dirty    bool
	Children []NodeID
	Parents  []NodeID

	// Attrs is an opaque, flat JSON document. internal/undo never
	// interprets it; see AttrGet/AttrSet/AttrDelete.
	Attrs string
}

func newNode(head, body string) *Node {
	return &Node{ID: NewNodeID(), Head: head, Body: body, Attrs: "{}"}
}

func (n *Node) clone() *Node {
	cp := *n
	cp.Children = append([]NodeID(nil), n.Children...)
	cp.Parents = append([]NodeID(nil), n.Parents...)
	return &cp
}

func (n *Node) hasParent(id NodeID) bool {
	for _, p := range n.Parents {
		if p == id {
			return true
		}
	}
	return false
}

func (n *Node) addParent(id NodeID) {
	if !n.hasParent(id) {
		n.Parents = append(n.Parents, id)
	}
}

func (n *Node) removeParent(id NodeID) {
	out := n.Parents[:0]
	for _, p := range n.Parents {
		if p != id {
			out = append(out, p)
		}
	}
	n.Parents = out
}

// Position is a path through the outline identifying one appearance of a
// node: the target V, the parent V at this appearance, and the index of the
// target within the parent's child list. Positions are plain values and are
// copied freely; they go stale if the tree is mutated out from under them.
type Position struct {
	Target     NodeID
	ParentNode NodeID // zero value means "child of the virtual root"
	ChildIndex int
}

// IsRoot reports whether p names a top-level position.
func (p Position) IsRoot() bool {
	return p.ParentNode == ""
}

// Copy returns an independent copy of p. Position already has value
// semantics, but Copy exists to mirror the external-interface vocabulary
// (p.copy()) the engine's adapters are written against.
func (p Position) Copy() Position {
	return p
}
