package outline

// SnapshotRecord is one node's worth of data inside a TreeSnapshot: enough
// to restore its status bits, headline, body, attributes, and both the
// child list and the parent set that together encode clone topology.
type SnapshotRecord struct {
	ID       NodeID
	Marked   bool
	Dirty    bool
	Parents  []NodeID
	Children []NodeID
	Head     string
	Body     string
	Attrs    string
}

// TreeSnapshot is a depth-first serialization of a subtree sufficient to
// restore clone topology, head/body, status bits, and attributes. Duplicate
// records for a cloned node are expected and harmless: each one writes the
// same data back on restore.
type TreeSnapshot struct {
	Records []SnapshotRecord
}

// SaveTree captures a TreeSnapshot of the subtree rooted at p.
func SaveTree(t *Tree, p Position) TreeSnapshot {
	var snap TreeSnapshot
	for _, pos := range t.Subtree(p) {
		n := t.mustNode(pos.Target)
		snap.Records = append(snap.Records, SnapshotRecord{
			ID:       n.ID,
			Marked:   n.Marked,
			Dirty:    n.Dirty,
			Parents:  append([]NodeID(nil), n.Parents...),
			Children: append([]NodeID(nil), n.Children...),
			Head:     n.Head,
			Body:     n.Body,
			Attrs:    n.Attrs,
		})
	}
	return snap
}

// RestoreTree writes every record in snap back into the tree verbatim,
// recreating a node entry if the arena no longer has one (this can happen
// if the document was rebuilt between save and restore, which the engine
// itself never does but a host adapter might).
func RestoreTree(t *Tree, snap TreeSnapshot) {
	for _, rec := range snap.Records {
		n, ok := t.nodes[rec.ID]
		if !ok {
			n = &Node{ID: rec.ID}
			t.nodes[rec.ID] = n
		}
		n.Marked = rec.Marked
		n.Dirty = rec.Dirty
		n.Parents = append([]NodeID(nil), rec.Parents...)
		n.Children = append([]NodeID(nil), rec.Children...)
		n.Head = rec.Head
		n.Body = rec.Body
		n.Attrs = rec.Attrs
	}
}
