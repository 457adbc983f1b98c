package undo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/outlineundo/internal/appregistry"
	"github.com/dshills/outlineundo/internal/outline"
	"github.com/dshills/outlineundo/internal/undo"
	"github.com/dshills/outlineundo/internal/undomenu"
	"github.com/dshills/outlineundo/internal/undotext"
)

func newTestManager(g undo.Granularity) (*undo.Manager, *outline.Document) {
	doc := outline.NewDocument()
	text := undotext.New()
	menu := undomenu.New()
	reg := appregistry.New()
	opts := []undo.ManagerOption{}
	if g != "" {
		opts = append(opts, undo.WithGranularity(g))
	}
	mgr := undo.NewManager(doc, text, menu, reg, 0, opts...)
	return mgr, doc
}

// typeText simulates a caller driving the typing-coalescence protocol one
// character at a time, the way a real text widget would: each keystroke
// reports its own old/new body and cursor column, then writes the result
// back to the document itself.
func typeText(mgr *undo.Manager, doc *outline.Document, p outline.Position, text string) {
	old := doc.BodyString(p)
	for _, r := range text {
		updated := old + string(r)
		oldSel := undo.Selection{
			Start: undo.Point{Row: 0, Col: len([]rune(old))},
			End:   undo.Point{Row: 0, Col: len([]rune(old))},
		}
		newSel := undo.Selection{
			Start: undo.Point{Row: 0, Col: len([]rune(updated))},
			End:   undo.Point{Row: 0, Col: len([]rune(updated))},
		}
		mgr.SetUndoTypingParams(p, old, updated, oldSel, newSel, nil)
		doc.SetBodyString(p, updated)
		old = updated
	}
}

// TestManagerTypingCoalescesWholeWord is scenario S1: typing "hello " one
// character at a time under word granularity coalesces into a single bead,
// including the trailing space.
func TestManagerTypingCoalescesWholeWord(t *testing.T) {
	mgr, doc := newTestManager(undo.GranularityWord)
	pos := doc.CurrentPosition()

	typeText(mgr, doc, pos, "hello ")

	if !mgr.CanUndo() {
		t.Fatal("expected CanUndo true after typing")
	}
	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := doc.BodyString(pos); got != "" {
		t.Errorf("after undo body = %q, want \"\"", got)
	}
	if mgr.CanUndo() {
		t.Error("expected a single coalesced bead; CanUndo still true after one undo")
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := doc.BodyString(pos); got != "hello " {
		t.Errorf("after redo body = %q, want %q", got, "hello ")
	}
}

// TestManagerTypingSplitsOnWordBoundary is scenario S2: starting from body
// "hi" and typing " world" opens a new bead at the space-to-letter boundary,
// so two undos are needed to get back to "hi".
func TestManagerTypingSplitsOnWordBoundary(t *testing.T) {
	mgr, doc := newTestManager(undo.GranularityWord)
	root := doc.CurrentPosition()
	child := doc.NewNode("child", "hi")
	pos := doc.LinkAsNthChild(root.Target, 0, child.ID)

	typeText(mgr, doc, pos, " world")

	if err := mgr.Undo(); err != nil {
		t.Fatalf("first Undo: %v", err)
	}
	if got := doc.BodyString(pos); got != "hi " {
		t.Errorf("after first undo body = %q, want %q", got, "hi ")
	}
	if !mgr.CanUndo() {
		t.Fatal("expected a second bead to undo")
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if got := doc.BodyString(pos); got != "hi" {
		t.Errorf("after second undo body = %q, want %q", got, "hi")
	}
	if mgr.CanUndo() {
		t.Error("expected exactly two beads for \" world\"")
	}
}

// TestManagerInsertDeleteRoundTrip is scenario S3: inserting a child then
// deleting it round-trips through two undos and two redos.
func TestManagerInsertDeleteRoundTrip(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()

	ib := mgr.BeforeInsertNode(root)
	n := doc.NewNode("A", "")
	pos := doc.LinkAsNthChild(root.Target, len(doc.Children(root.Target)), n.ID)
	mgr.AfterInsertNode(ib, pos, "Insert Node", false, nil)

	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("expected 1 child after insert, got %d", got)
	}

	db := mgr.BeforeDeleteNode(pos)
	doc.DeleteOutline(pos)
	mgr.AfterDeleteNode(db, "Delete Node", nil)

	if got := len(doc.Children(root.Target)); got != 0 {
		t.Fatalf("expected 0 children after delete, got %d", got)
	}

	if err := mgr.Undo(); err != nil { // undoes the delete
		t.Fatalf("first Undo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("after first undo expected 1 child, got %d", got)
	}

	if err := mgr.Undo(); err != nil { // undoes the insert
		t.Fatalf("second Undo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 0 {
		t.Fatalf("after second undo expected 0 children, got %d", got)
	}

	if err := mgr.Redo(); err != nil { // reapplies the insert
		t.Fatalf("first Redo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("after first redo expected 1 child, got %d", got)
	}

	if err := mgr.Redo(); err != nil { // reapplies the delete
		t.Fatalf("second Redo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 0 {
		t.Fatalf("after second redo expected 0 children, got %d", got)
	}
}

// TestManagerGroupUndoesAndRedoesAtomically is scenario S4: three node
// edits wrapped in a before/afterChangeGroup pair undo and redo as a single
// step, regardless of how many edits the group contains.
func TestManagerGroupUndoesAndRedoesAtomically(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()

	var positions []outline.Position
	for i := 0; i < 3; i++ {
		n := doc.NewNode(fmt.Sprintf("node%d", i), "before")
		positions = append(positions, doc.LinkAsNthChild(root.Target, len(doc.Children(root.Target)), n.ID))
	}

	gb := mgr.BeforeChangeGroup(root, "Replace All")
	for _, p := range positions {
		nb := mgr.BeforeChangeNodeContents(p)
		doc.SetBodyString(p, "after")
		mgr.AfterChangeNodeContents(nb, "Change Node", nil)
	}
	mgr.AfterChangeGroup(gb, "Replace All", true, nil)

	if !mgr.CanUndo() {
		t.Fatal("expected CanUndo true after group")
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	for _, p := range positions {
		if got := doc.BodyString(p); got != "before" {
			t.Errorf("after undo body = %q, want %q", got, "before")
		}
	}
	if mgr.CanUndo() {
		t.Error("expected the whole group to undo in a single step")
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	for _, p := range positions {
		if got := doc.BodyString(p); got != "after" {
			t.Errorf("after redo body = %q, want %q", got, "after")
		}
	}
}

// TestManagerMoveNodeUndoRedo exercises the move kind end to end.
func TestManagerMoveNodeUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	b := doc.NewNode("B", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)
	posB := doc.LinkAsNthChild(root.Target, 1, b.ID)

	mb := mgr.BeforeMoveNode(posA)
	doc.Move(posA, posB.Target, 0)
	mgr.AfterMoveNode(mb, "Move Node", posB.Target, 0, nil)

	if got := len(doc.Children(posB.Target)); got != 1 {
		t.Fatalf("expected A under B after move, got %d children", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 2 {
		t.Fatalf("after undo expected 2 root children, got %d", got)
	}
	if got := len(doc.Children(posB.Target)); got != 0 {
		t.Fatalf("after undo expected B to have no children, got %d", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := len(doc.Children(posB.Target)); got != 1 {
		t.Fatalf("after redo expected A back under B, got %d", got)
	}
}

// TestManagerSortUndoRedo exercises the sort kind end to end.
func TestManagerSortUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	first := doc.NewNode("B comes first", "")
	second := doc.NewNode("A comes second", "")
	posFirst := doc.LinkAsNthChild(root.Target, 0, first.ID)
	doc.LinkAsNthChild(root.Target, 1, second.ID)

	sb := mgr.BeforeSort(posFirst)
	doc.SetChildren(root.Target, []outline.NodeID{second.ID, first.ID})
	mgr.AfterSort(sb, "Sort Children", nil)

	if got := doc.Children(root.Target); len(got) != 2 || got[0] != second.ID {
		t.Fatalf("after sort children = %v, want [%s %s]", got, second.ID, first.ID)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := doc.Children(root.Target); len(got) != 2 || got[0] != first.ID {
		t.Fatalf("after undo children = %v, want [%s %s]", got, first.ID, second.ID)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := doc.Children(root.Target); len(got) != 2 || got[0] != second.ID {
		t.Fatalf("after redo children = %v, want [%s %s]", got, second.ID, first.ID)
	}
}

// TestManagerMarkUndoRedo exercises the mark kind end to end.
func TestManagerMarkUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	pos := doc.CurrentPosition()

	mb := mgr.BeforeMark(pos)
	doc.MarkPosition(pos)
	mgr.AfterMark(mb, "Mark", nil)

	if !doc.IsMarked(pos) {
		t.Fatal("expected marked after AfterMark")
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if doc.IsMarked(pos) {
		t.Error("expected unmarked after undo")
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !doc.IsMarked(pos) {
		t.Error("expected marked after redo")
	}
}

// TestManagerPromoteUndoRedo exercises the promote/demote payload's two
// independent child-list snapshots (the node's own children and its
// parent's).
func TestManagerPromoteUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)
	x := doc.NewNode("X", "")
	y := doc.NewNode("Y", "")
	doc.LinkAsNthChild(a.ID, 0, x.ID)
	doc.LinkAsNthChild(a.ID, 1, y.ID)

	pb := mgr.BeforePromote(posA)
	doc.SetChildren(root.Target, []outline.NodeID{x.ID, y.ID, a.ID})
	doc.SetChildren(a.ID, nil)
	mgr.AfterPromote(pb, "Promote", nil)

	if got := len(doc.Children(root.Target)); got != 3 {
		t.Fatalf("after promote root children = %d, want 3", got)
	}
	if got := len(doc.Children(a.ID)); got != 0 {
		t.Fatalf("after promote A's children = %d, want 0", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("after undo root children = %d, want 1", got)
	}
	if got := len(doc.Children(a.ID)); got != 2 {
		t.Fatalf("after undo A's children = %d, want 2", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 3 {
		t.Fatalf("after redo root children = %d, want 3", got)
	}
}

// TestManagerClearRecentFilesUndoRedo exercises the app-registry collaborator.
func TestManagerClearRecentFilesUndoRedo(t *testing.T) {
	doc := outline.NewDocument()
	text := undotext.New()
	menu := undomenu.New()
	reg := appregistry.New()
	reg.SetRecentFiles([]string{"a.txt", "b.txt"})
	mgr := undo.NewManager(doc, text, menu, reg, 0)

	cb := mgr.BeforeClearRecentFiles()
	reg.Clear()
	mgr.AfterClearRecentFiles(cb, "Clear Recent Files")

	if got := reg.RecentFiles(); len(got) != 0 {
		t.Fatalf("expected cleared recent files, got %v", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := reg.RecentFiles(); len(got) != 2 {
		t.Fatalf("after undo recent files = %v, want 2 entries", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := reg.RecentFiles(); len(got) != 0 {
		t.Fatalf("after redo recent files = %v, want empty", got)
	}
}

// TestManagerHoistDehoistUndoRedo exercises the hoist kind end to end: undo
// pops the hoist, redo re-pushes the same position.
func TestManagerHoistDehoistUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)

	hb := mgr.BeforeHoist(posA)
	doc.Hoist(posA)
	mgr.AfterHoist(hb, "Hoist", nil)

	if got := doc.HoistDepth(); got != 1 {
		t.Fatalf("after hoist depth = %d, want 1", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := doc.HoistDepth(); got != 0 {
		t.Fatalf("after undo depth = %d, want 0", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := doc.HoistDepth(); got != 1 {
		t.Fatalf("after redo depth = %d, want 1", got)
	}
}

// TestManagerDehoistUndoRedo exercises the dehoist kind end to end: undo
// re-pushes the hoist that was popped, redo pops it again.
func TestManagerDehoistUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)
	doc.Hoist(posA) // pre-existing hoist, set up outside the undo engine

	db := mgr.BeforeDehoist(posA)
	doc.Dehoist()
	mgr.AfterDehoist(db, "Dehoist", nil)

	if got := doc.HoistDepth(); got != 0 {
		t.Fatalf("after dehoist depth = %d, want 0", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := doc.HoistDepth(); got != 1 {
		t.Fatalf("after undo depth = %d, want 1", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := doc.HoistDepth(); got != 0 {
		t.Fatalf("after redo depth = %d, want 0", got)
	}
}

// TestManagerChangeTreeUndoRedo exercises the coarse-grained tree kind, used
// when a whole subtree is replaced at once (e.g. paste-over or an outside
// structural edit) rather than through the finer-grained node/move/sort
// operations.
func TestManagerChangeTreeUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	parent := doc.NewNode("parent", "old body")
	parentPos := doc.LinkAsNthChild(root.Target, 0, parent.ID)
	child := doc.NewNode("child", "")
	doc.LinkAsNthChild(parent.ID, 0, child.ID)

	tb := mgr.BeforeChangeTree(parentPos)
	doc.SetChildren(parent.ID, nil)
	doc.SetBodyString(parentPos, "new body")
	mgr.AfterChangeTree(tb, "Replace Subtree", nil)

	if got := len(doc.Children(parent.ID)); got != 0 {
		t.Fatalf("after change tree children = %d, want 0", got)
	}
	if got := doc.BodyString(parentPos); got != "new body" {
		t.Fatalf("after change tree body = %q, want %q", got, "new body")
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := len(doc.Children(parent.ID)); got != 1 {
		t.Fatalf("after undo children = %d, want 1", got)
	}
	if got := doc.BodyString(parentPos); got != "old body" {
		t.Fatalf("after undo body = %q, want %q", got, "old body")
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := len(doc.Children(parent.ID)); got != 0 {
		t.Fatalf("after redo children = %d, want 0", got)
	}
	if got := doc.BodyString(parentPos); got != "new body" {
		t.Fatalf("after redo body = %q, want %q", got, "new body")
	}
}

// TestManagerDemoteUndoRedo exercises the demote kind, the mirror image of
// promote: a node's following siblings become its own children.
func TestManagerDemoteUndoRedo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	b := doc.NewNode("B", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)
	doc.LinkAsNthChild(root.Target, 1, b.ID)

	db := mgr.BeforeDemote(posA)
	doc.SetChildren(root.Target, []outline.NodeID{a.ID})
	doc.SetChildren(a.ID, []outline.NodeID{b.ID})
	mgr.AfterDemote(db, "Demote", nil)

	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("after demote root children = %d, want 1", got)
	}
	if got := len(doc.Children(a.ID)); got != 1 {
		t.Fatalf("after demote A's children = %d, want 1", got)
	}

	if err := mgr.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 2 {
		t.Fatalf("after undo root children = %d, want 2", got)
	}
	if got := len(doc.Children(a.ID)); got != 0 {
		t.Fatalf("after undo A's children = %d, want 0", got)
	}

	if err := mgr.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("after redo root children = %d, want 1", got)
	}
}

// TestManagerUndoStalePositionIsNoOp exercises §7's stale-position handling:
// if a bead's recorded position no longer resolves against the tree (its
// parent or index changed through some path other than that bead's own
// matching apply/revert), Undo must log and refuse to advance the cursor
// instead of reverting against the wrong node.
func TestManagerUndoStalePositionIsNoOp(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()
	a := doc.NewNode("A", "")
	posA := doc.LinkAsNthChild(root.Target, 0, a.ID)

	mb := mgr.BeforeMark(posA)
	doc.MarkPosition(posA)
	mgr.AfterMark(mb, "Mark", nil)

	// Something other than the undo engine restructures the tree out from
	// under the recorded bead.
	doc.Unlink(posA)

	err := mgr.Undo()
	if !errors.Is(err, undo.ErrStalePosition) {
		t.Fatalf("Undo on a stale position = %v, want ErrStalePosition", err)
	}
	if !mgr.CanUndo() {
		t.Error("expected the cursor to stay put on a stale bead, not advance")
	}
}

// TestManagerCloneSurvivesDeleteUndo is scenario S5: cloning a node and then
// deleting its original appearance must leave the clone intact, and
// undoing both restores both appearances with the shared content preserved.
func TestManagerCloneSurvivesDeleteUndo(t *testing.T) {
	mgr, doc := newTestManager("")
	root := doc.CurrentPosition()

	n := doc.NewNode("V", "body")
	original := doc.LinkAsNthChild(root.Target, 0, n.ID)

	other := doc.NewNode("parent2", "")
	otherPos := doc.LinkAsNthChild(root.Target, 1, other.ID)

	cb := mgr.BeforeCloneNode(original)
	doc.Clone(original, otherPos.Target, 0)
	mgr.AfterCloneNode(cb, "Clone Node", otherPos.Target, 0, nil)

	db := mgr.BeforeDeleteNode(original)
	doc.DeleteOutline(original)
	mgr.AfterDeleteNode(db, "Delete Node", nil)

	if got := len(doc.Children(root.Target)); got != 1 {
		t.Fatalf("expected 1 root child after deleting the original, got %d", got)
	}
	if got := len(doc.Children(otherPos.Target)); got != 1 {
		t.Fatalf("expected the clone to survive the delete, got %d children", got)
	}

	if err := mgr.Undo(); err != nil { // undoes the delete
		t.Fatalf("first Undo: %v", err)
	}
	if err := mgr.Undo(); err != nil { // undoes the clone
		t.Fatalf("second Undo: %v", err)
	}

	if got := len(doc.Children(root.Target)); got != 2 {
		t.Fatalf("expected both root children restored, got %d", got)
	}
	restored, ok := doc.Node(n.ID)
	if !ok || restored.Head != "V" || restored.Body != "body" {
		t.Errorf("node content not preserved across clone/delete undo: %+v ok=%v", restored, ok)
	}
	if got := len(doc.Children(otherPos.Target)); got != 0 {
		t.Errorf("expected the clone appearance removed after undoing the clone, got %d children", got)
	}
}
