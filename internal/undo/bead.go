package undo

import "github.com/dshills/outlineundo/internal/outline"

// Kind tags which variant of action a Bead records. Handlers dispatch on
// Kind; Bead.Payload holds the matching <Kind>Payload struct.
type Kind string

const (
	KindTyping           Kind = "typing"
	KindNode             Kind = "node"
	KindTree             Kind = "tree"
	KindClone            Kind = "clone"
	KindDelete           Kind = "delete"
	KindInsert           Kind = "insert"
	KindMove             Kind = "move"
	KindHoist            Kind = "hoist"
	KindDehoist          Kind = "dehoist"
	KindMark             Kind = "mark"
	KindSort             Kind = "sort"
	KindPromote          Kind = "promote"
	KindDemote           Kind = "demote"
	KindClearRecentFiles Kind = "clearRecentFiles"
	KindBeforeGroup      Kind = "beforeGroup"
	KindAfterGroup       Kind = "afterGroup"
)

// statusSnapshot captures the document/node status bits before or after an
// action, shared across most bead kinds.
type statusSnapshot struct {
	changed bool
	dirty   bool
	marked  bool
}

// Bead is one undoable event: a tagged envelope (kind, label, position,
// selections, status snapshots, dirty list) plus a kind-specific payload.
type Bead struct {
	Kind  Kind
	Label string

	Position outline.Position

	OldSel Selection
	NewSel Selection

	OldStatus statusSnapshot
	NewStatus statusSnapshot

	DirtyList []outline.NodeID

	Payload any
}

// TypingPayload is the payload for KindTyping beads.
//
// OldText/NewText are kept as full strings so a coalescing bead can
// recompute Diff against the fixed starting point each time it is
// extended (§4.3 step 4); ReconstructText itself only ever needs the
// derived Diff fragments, not these full strings, which is what lets the
// revert/apply path avoid storing document text beyond this one bead.
type TypingPayload struct {
	OldText string
	NewText string
	Diff    TextDiff

	// OldYview/NewYview are the optional scroll positions to restore on
	// undo/redo so the viewport doesn't jump (see SPEC_FULL.md, supplemented
	// feature: yview save/restore on typing beads).
	OldYview    float64
	NewYview    float64
	HasOldYview bool
	HasNewYview bool
}

// NodePayload is the payload for KindNode beads: a plain head/body edit on
// one node, with no structural change.
type NodePayload struct {
	OldHead, NewHead string
	OldBody, NewBody string
}

// TreePayload is the payload for KindTree beads: a coarse-grained
// replacement of a whole subtree.
type TreePayload struct {
	OldTree outline.TreeSnapshot
	NewTree outline.TreeSnapshot
	OldText string
	NewText string
}

// ClonePayload is the payload for KindClone beads.
type ClonePayload struct {
	NewParent     outline.NodeID
	NewChildIndex int
}

// InsertPayload is the payload for KindInsert beads.
type InsertPayload struct {
	// PasteAsClone, when true, means the insert shared V identities with
	// existing nodes rather than creating fresh ones; BeforeTree/AfterTree
	// then hold per-node head/body to restore on undo/redo.
	PasteAsClone bool
	BeforeTree   outline.TreeSnapshot
	AfterTree    outline.TreeSnapshot
}

// DeletePayload is the payload for KindDelete beads.
type DeletePayload struct {
	OldParent     outline.NodeID
	OldChildIndex int
	Subtree       outline.TreeSnapshot
}

// MovePayload is the payload for KindMove beads.
type MovePayload struct {
	OldParent     outline.NodeID
	OldChildIndex int
	NewParent     outline.NodeID
	NewChildIndex int
}

// HoistPayload is the payload for KindHoist/KindDehoist beads.
type HoistPayload struct {
	Position outline.Position
}

// MarkPayload is the payload for KindMark beads.
type MarkPayload struct {
	OldMarked, NewMarked bool
}

// SortPayload is the payload for KindSort beads.
type SortPayload struct {
	Parent      outline.NodeID
	OldChildren []outline.NodeID
	NewChildren []outline.NodeID
}

// PromoteDemotePayload is the payload for KindPromote/KindDemote beads.
// Promote/demote move a node's children between its own child list and
// its parent's, so both lists must be snapshotted to invert the move.
type PromoteDemotePayload struct {
	Node             outline.NodeID
	NodeOldChildren  []outline.NodeID
	NodeNewChildren  []outline.NodeID
	Parent           outline.NodeID
	ParentOldChildren []outline.NodeID
	ParentNewChildren []outline.NodeID
}

// ClearRecentFilesPayload is the payload for KindClearRecentFiles beads.
type ClearRecentFilesPayload struct {
	OldRecentFiles []string
	NewRecentFiles []string
}

// GroupPayload is the payload for KindBeforeGroup/KindAfterGroup beads.
type GroupPayload struct {
	Items      []*Bead
	ReportFlag bool
}
