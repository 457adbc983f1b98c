package outline

// Document wraps a Tree with the document-level state the undo engine's
// TreeModel adapter needs on top of pure structure: the changed flag, the
// current position, and recolor/update bracketing. It is the concrete
// collaborator a host wires into internal/undo.Manager.
type Document struct {
	*Tree

	changed bool
	current Position

	updateDepth int
}

// NewDocument creates a Document over a fresh, single-root Tree.
func NewDocument() *Document {
	t := NewTree()
	return &Document{Tree: t, current: t.RootPositions()[0]}
}

// IsChanged reports whether the document has unsaved modifications.
func (d *Document) IsChanged() bool { return d.changed }

// SetChanged sets the document's changed flag.
func (d *Document) SetChanged(v bool) { d.changed = v }

// CurrentPosition returns the document's current position.
func (d *Document) CurrentPosition() Position { return d.current }

// SelectPosition and SetCurrentPosition both move the current position;
// SelectPosition additionally implies a UI-visible selection change, which
// this in-memory document does not otherwise distinguish.
func (d *Document) SelectPosition(p Position)    { d.current = p }
func (d *Document) SetCurrentPosition(p Position) { d.current = p }

// BeginUpdate/EndUpdate bracket a batch of structural changes. EndUpdate's
// recolor argument is advisory for a real text widget; this in-memory
// document just tracks nesting depth.
func (d *Document) BeginUpdate() { d.updateDepth++ }
func (d *Document) EndUpdate(recolor bool) {
	if d.updateDepth > 0 {
		d.updateDepth--
	}
}

// DeleteOutline unlinks p from its parent without touching the node's other
// appearances.
func (d *Document) DeleteOutline(p Position) { d.Unlink(p) }

// RecolorNow is a no-op placeholder; a real text widget adapter would
// trigger a syntax-highlight pass here.
func (d *Document) RecolorNow() {}

// SetPositionAfterSort records where the current position should land after
// a sort; this in-memory document has no separate "pending" slot so it
// applies immediately.
func (d *Document) SetPositionAfterSort(p Position) { d.current = p }

// IsMarked and IsDirty read status bits off the node at p.
func (d *Document) IsMarked(p Position) bool {
	n, ok := d.Node(p.Target)
	return ok && n.Marked
}

func (d *Document) IsDirty(p Position) bool {
	n, ok := d.Node(p.Target)
	return ok && n.Dirty
}

// HeadString and BodyString read the node's text fields.
func (d *Document) HeadString(p Position) string { return d.mustNode(p.Target).Head }
func (d *Document) BodyString(p Position) string { return d.mustNode(p.Target).Body }

// SetHeadString and SetBodyString write the node's text fields.
func (d *Document) SetHeadString(p Position, s string) { d.SetHead(p, s) }
func (d *Document) SetBodyString(p Position, s string) { d.SetBody(p, s) }

// SaveTree and RestoreTree delegate to the package-level TreeSnapshot
// helpers.
func (d *Document) SaveTree(p Position) TreeSnapshot   { return SaveTree(d.Tree, p) }
func (d *Document) RestoreTree(snap TreeSnapshot)      { RestoreTree(d.Tree, snap) }

// LinkAsRoot links an existing node at the top level at index i.
func (d *Document) LinkAsRoot(id NodeID, i int) Position { return d.InsertRoot(id, i) }

// MarkPosition sets the marked bit on the node at p.
func (d *Document) MarkPosition(p Position) { d.mustNode(p.Target).Marked = true }

// ClearMarkPosition clears the marked bit on the node at p.
func (d *Document) ClearMarkPosition(p Position) { d.mustNode(p.Target).Marked = false }
