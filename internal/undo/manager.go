// Package undo is the undo/redo engine: the bead history, the before*/
// after* snapshot protocol, incremental typing diffs, grouping, and the
// exact apply/revert semantics for every recorded action kind. It treats
// the outline tree, the text widget, the menu, and configuration as
// external collaborators (see adapters.go) and mutates none of them except
// through those narrow interfaces.
package undo

import (
	"fmt"

	"github.com/dshills/outlineundo/internal/outline"
	"github.com/dshills/outlineundo/internal/ulog"
)

// UndoManager is the public contract described in §4.1. Manager is the
// real implementation; NullUndoManager is its no-op twin used when history
// is disabled for a document.
type UndoManager interface {
	ClearUndoState()
	CanUndo() bool
	CanRedo() bool
	UndoMenuLabel() string
	RedoMenuLabel() string
	EnableMenuItems()

	BeforeChangeNodeContents(p outline.Position) *Bead
	AfterChangeNodeContents(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeChangeTree(p outline.Position) *Bead
	AfterChangeTree(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeCloneNode(p outline.Position) *Bead
	AfterCloneNode(b *Bead, label string, newParent outline.NodeID, newIndex int, dirtyList []outline.NodeID)

	BeforeInsertNode(parent outline.Position) *Bead
	AfterInsertNode(b *Bead, newPos outline.Position, label string, pasteAsClone bool, dirtyList []outline.NodeID)

	BeforeDeleteNode(p outline.Position) *Bead
	AfterDeleteNode(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeMoveNode(p outline.Position) *Bead
	AfterMoveNode(b *Bead, label string, newParent outline.NodeID, newIndex int, dirtyList []outline.NodeID)

	BeforeHoist(p outline.Position) *Bead
	AfterHoist(b *Bead, label string, dirtyList []outline.NodeID)
	BeforeDehoist(p outline.Position) *Bead
	AfterDehoist(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeMark(p outline.Position) *Bead
	AfterMark(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeSort(p outline.Position) *Bead
	AfterSort(b *Bead, label string, dirtyList []outline.NodeID)

	BeforePromote(p outline.Position) *Bead
	AfterPromote(b *Bead, label string, dirtyList []outline.NodeID)
	BeforeDemote(p outline.Position) *Bead
	AfterDemote(b *Bead, label string, dirtyList []outline.NodeID)

	BeforeClearRecentFiles() *Bead
	AfterClearRecentFiles(b *Bead, label string)

	BeforeChangeGroup(p outline.Position, label string) *Bead
	AfterChangeGroup(b *Bead, label string, reportFlag bool, dirtyList []outline.NodeID)

	SetUndoTypingParams(p outline.Position, oldText, newText string, oldSel, newSel Selection, oldYview *float64) *Bead

	Undo() error
	Redo() error
}

// Manager is the concrete UndoManager. It owns the BeadStack exclusively;
// beads reference nodes by outline.NodeID only, never by Position.
type Manager struct {
	tree TreeModel
	text TextWidget
	menu MenuHost
	app  AppRegistry
	log  *ulog.Logger

	stack *BeadStack

	granularity  Granularity
	wordBoundary WordBoundaryFunc

	undoing, redoing bool

	undoLabel, redoLabel string

	groupCount int
}

// ManagerOption configures a Manager at construction time.
type ManagerOption func(*Manager)

// WithGranularity overrides the typing-coalescence granularity.
func WithGranularity(g Granularity) ManagerOption {
	return func(m *Manager) { m.granularity = g }
}

// WithWordBoundaryFunc overrides the recognizeStartOfTypingWord predicate.
func WithWordBoundaryFunc(f WordBoundaryFunc) ManagerOption {
	return func(m *Manager) { m.wordBoundary = f }
}

// WithLogger overrides the logger (default ulog.Default()).
func WithLogger(l *ulog.Logger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// NewManager builds a Manager bounded by maxUndoStackSize beads (0 means
// unbounded), wired to the given collaborators.
func NewManager(tree TreeModel, text TextWidget, menu MenuHost, app AppRegistry, maxUndoStackSize int, opts ...ManagerOption) *Manager {
	m := &Manager{
		tree:         tree,
		text:         text,
		menu:         menu,
		app:          app,
		log:          ulog.Default(),
		stack:        NewBeadStack(maxUndoStackSize),
		granularity:  GranularityLine,
		wordBoundary: DefaultWordBoundary,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.updateMenuLabels()
	return m
}

// replaying reports whether the engine is currently inside Undo/Redo.
func (m *Manager) replaying() bool { return m.undoing || m.redoing }

func (m *Manager) captureStatus(p outline.Position) statusSnapshot {
	return statusSnapshot{
		changed: m.tree.IsChanged(),
		dirty:   m.tree.IsDirty(p),
		marked:  m.tree.IsMarked(p),
	}
}

// ClearUndoState discards all beads and resets menu labels.
func (m *Manager) ClearUndoState() {
	m.stack.Clear()
	m.updateMenuLabels()
}

// CanUndo and CanRedo are pure queries over the stack cursor.
func (m *Manager) CanUndo() bool { return m.stack.CanUndo() }
func (m *Manager) CanRedo() bool { return m.stack.CanRedo() }

// UndoMenuLabel and RedoMenuLabel implement the menu-label protocol
// (§4.1): "Can't Undo"/"Can't Redo" when empty, else "Undo "+action /
// "Redo "+action.
func (m *Manager) UndoMenuLabel() string {
	if m.undoLabel == "" {
		return "Can't Undo"
	}
	return "Undo " + m.undoLabel
}

func (m *Manager) RedoMenuLabel() string {
	if m.redoLabel == "" {
		return "Can't Redo"
	}
	return "Redo " + m.redoLabel
}

func (m *Manager) updateMenuLabels() {
	if b := m.stack.PeekUndo(); b != nil {
		m.undoLabel = b.Label
	} else {
		m.undoLabel = ""
	}
	if b := m.stack.PeekRedo(); b != nil {
		m.redoLabel = b.Label
	} else {
		m.redoLabel = ""
	}
	m.EnableMenuItems()
}

// EnableMenuItems informs the menu adapter of the current labels/enable
// state.
func (m *Manager) EnableMenuItems() {
	if m.menu == nil {
		return
	}
	m.menu.SetMenuLabel("Edit", "Undo", m.UndoMenuLabel())
	m.menu.EnableMenu("Edit", "Undo", m.CanUndo())
	m.menu.SetMenuLabel("Edit", "Redo", m.RedoMenuLabel())
	m.menu.EnableMenu("Edit", "Redo", m.CanRedo())
}

// beforeAction opens a reversible action of the given kind, returning nil
// (a no-op bunch) while replaying.
func (m *Manager) beforeAction(kind Kind, p outline.Position) *Bead {
	if m.replaying() {
		return nil
	}
	return &Bead{
		Kind:      kind,
		Position:  p.Copy(),
		OldSel:    m.text.GetSelectionRange(),
		OldStatus: m.captureStatus(p),
	}
}

// afterAction completes a bunch opened by beforeAction and pushes it,
// unless replaying or the bunch is nil (protocol misuse: afterX called
// without a matching beforeX).
func (m *Manager) afterAction(b *Bead, label string, dirtyList []outline.NodeID) {
	if m.replaying() {
		return
	}
	if b == nil {
		m.log.Warn("afterX called without a matching beforeX bunch")
		return
	}
	b.Label = label
	b.NewSel = m.text.GetSelectionRange()
	b.NewStatus = m.captureStatus(b.Position)
	b.DirtyList = dirtyList
	m.stack.Push(b)
	m.updateMenuLabels()
}

// ---- node ----

func (m *Manager) BeforeChangeNodeContents(p outline.Position) *Bead {
	b := m.beforeAction(KindNode, p)
	if b == nil {
		return nil
	}
	b.Payload = &NodePayload{OldHead: m.tree.HeadString(p), OldBody: m.tree.BodyString(p)}
	return b
}

func (m *Manager) AfterChangeNodeContents(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*NodePayload)
	payload.NewHead = m.tree.HeadString(b.Position)
	payload.NewBody = m.tree.BodyString(b.Position)
	m.afterAction(b, label, dirtyList)
}

// ---- tree ----

func (m *Manager) BeforeChangeTree(p outline.Position) *Bead {
	b := m.beforeAction(KindTree, p)
	if b == nil {
		return nil
	}
	b.Payload = &TreePayload{OldTree: m.tree.SaveTree(p), OldText: m.tree.BodyString(p)}
	return b
}

func (m *Manager) AfterChangeTree(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*TreePayload)
	payload.NewTree = m.tree.SaveTree(b.Position)
	payload.NewText = m.tree.BodyString(b.Position)
	m.afterAction(b, label, dirtyList)
}

// ---- clone ----

func (m *Manager) BeforeCloneNode(p outline.Position) *Bead {
	return m.beforeAction(KindClone, p)
}

func (m *Manager) AfterCloneNode(b *Bead, label string, newParent outline.NodeID, newIndex int, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	b.Payload = &ClonePayload{NewParent: newParent, NewChildIndex: newIndex}
	m.afterAction(b, label, dirtyList)
}

// ---- insert ----

// BeforeInsertNode takes the position of the insertion point (e.g. the
// current selection); the inserted node itself does not exist yet and its
// eventual position is supplied to AfterInsertNode.
func (m *Manager) BeforeInsertNode(parent outline.Position) *Bead {
	b := m.beforeAction(KindInsert, parent)
	if b == nil {
		return nil
	}
	b.Payload = &InsertPayload{BeforeTree: m.tree.SaveTree(parent)}
	return b
}

// AfterInsertNode records newPos, the position of the node just inserted;
// revert/apply unlink and relink exactly there.
func (m *Manager) AfterInsertNode(b *Bead, newPos outline.Position, label string, pasteAsClone bool, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	b.Position = newPos.Copy()
	payload := b.Payload.(*InsertPayload)
	payload.PasteAsClone = pasteAsClone
	if pasteAsClone {
		payload.AfterTree = m.tree.SaveTree(newPos)
	}
	m.afterAction(b, label, dirtyList)
}

// ---- delete ----

func (m *Manager) BeforeDeleteNode(p outline.Position) *Bead {
	b := m.beforeAction(KindDelete, p)
	if b == nil {
		return nil
	}
	parent, hasParent := m.tree.Parent(p)
	payload := &DeletePayload{OldChildIndex: m.tree.ChildIndex(p), Subtree: m.tree.SaveTree(p)}
	if hasParent {
		payload.OldParent = parent.Target
	}
	b.Payload = payload
	return b
}

func (m *Manager) AfterDeleteNode(b *Bead, label string, dirtyList []outline.NodeID) {
	m.afterAction(b, label, dirtyList)
}

// ---- move ----

func (m *Manager) BeforeMoveNode(p outline.Position) *Bead {
	b := m.beforeAction(KindMove, p)
	if b == nil {
		return nil
	}
	parent, _ := m.tree.Parent(p)
	b.Payload = &MovePayload{OldParent: parent.Target, OldChildIndex: m.tree.ChildIndex(p)}
	return b
}

func (m *Manager) AfterMoveNode(b *Bead, label string, newParent outline.NodeID, newIndex int, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*MovePayload)
	payload.NewParent = newParent
	payload.NewChildIndex = newIndex
	m.afterAction(b, label, dirtyList)
}

// ---- hoist / dehoist ----

func (m *Manager) BeforeHoist(p outline.Position) *Bead {
	b := m.beforeAction(KindHoist, p)
	if b != nil {
		b.Payload = &HoistPayload{Position: p.Copy()}
	}
	return b
}

func (m *Manager) AfterHoist(b *Bead, label string, dirtyList []outline.NodeID) {
	m.afterAction(b, label, dirtyList)
}

func (m *Manager) BeforeDehoist(p outline.Position) *Bead {
	b := m.beforeAction(KindDehoist, p)
	if b != nil {
		b.Payload = &HoistPayload{Position: p.Copy()}
	}
	return b
}

func (m *Manager) AfterDehoist(b *Bead, label string, dirtyList []outline.NodeID) {
	m.afterAction(b, label, dirtyList)
}

// ---- mark ----

func (m *Manager) BeforeMark(p outline.Position) *Bead {
	b := m.beforeAction(KindMark, p)
	if b == nil {
		return nil
	}
	b.Payload = &MarkPayload{OldMarked: m.tree.IsMarked(p)}
	return b
}

func (m *Manager) AfterMark(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*MarkPayload)
	payload.NewMarked = m.tree.IsMarked(b.Position)
	m.afterAction(b, label, dirtyList)
}

// ---- sort ----
//
// beforeSort installs the undo/redo handling for the sort (in this typed
// design, that simply means the bead carries Kind = KindSort from the
// start); afterSort only records the dirty list and the new child order.

func (m *Manager) BeforeSort(p outline.Position) *Bead {
	b := m.beforeAction(KindSort, p)
	if b == nil {
		return nil
	}
	parent, _ := m.tree.Parent(p)
	b.Payload = &SortPayload{Parent: parent.Target, OldChildren: m.tree.Children(parent.Target)}
	return b
}

func (m *Manager) AfterSort(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*SortPayload)
	payload.NewChildren = m.tree.Children(payload.Parent)
	m.afterAction(b, label, dirtyList)
}

// ---- promote / demote ----

func (m *Manager) BeforePromote(p outline.Position) *Bead {
	b := m.beforeAction(KindPromote, p)
	if b == nil {
		return nil
	}
	parent, _ := m.tree.Parent(p)
	b.Payload = &PromoteDemotePayload{
		Node:            p.Target,
		NodeOldChildren: m.tree.Children(p.Target),
		Parent:          parent.Target,
		ParentOldChildren: m.tree.Children(parent.Target),
	}
	return b
}

func (m *Manager) AfterPromote(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*PromoteDemotePayload)
	payload.NodeNewChildren = m.tree.Children(payload.Node)
	payload.ParentNewChildren = m.tree.Children(payload.Parent)
	m.afterAction(b, label, dirtyList)
}

func (m *Manager) BeforeDemote(p outline.Position) *Bead {
	b := m.beforeAction(KindDemote, p)
	if b == nil {
		return nil
	}
	parent, _ := m.tree.Parent(p)
	b.Payload = &PromoteDemotePayload{
		Node:              p.Target,
		NodeOldChildren:   m.tree.Children(p.Target),
		Parent:            parent.Target,
		ParentOldChildren: m.tree.Children(parent.Target),
	}
	return b
}

func (m *Manager) AfterDemote(b *Bead, label string, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*PromoteDemotePayload)
	payload.NodeNewChildren = m.tree.Children(payload.Node)
	payload.ParentNewChildren = m.tree.Children(payload.Parent)
	m.afterAction(b, label, dirtyList)
}

// ---- clearRecentFiles ----

func (m *Manager) BeforeClearRecentFiles() *Bead {
	if m.replaying() {
		return nil
	}
	return &Bead{
		Kind:    KindClearRecentFiles,
		OldSel:  m.text.GetSelectionRange(),
		Payload: &ClearRecentFilesPayload{OldRecentFiles: append([]string(nil), m.app.RecentFiles()...)},
	}
}

func (m *Manager) AfterClearRecentFiles(b *Bead, label string) {
	if b == nil || m.replaying() {
		return
	}
	payload := b.Payload.(*ClearRecentFilesPayload)
	payload.NewRecentFiles = append([]string(nil), m.app.RecentFiles()...)
	m.afterAction(b, label, nil)
}

// ---- groups ----
//
// beforeChangeGroup pushes a beforeGroup bead directly onto the stack so
// that subsequent pushes nest into its Items (BeadStack.Push routes them
// there automatically, see §4.4). afterChangeGroup mutates that same bead
// in place into an afterGroup bead — a single clean transition, never a
// second push.

func (m *Manager) BeforeChangeGroup(p outline.Position, label string) *Bead {
	if m.replaying() {
		return nil
	}
	b := &Bead{
		Kind:      KindBeforeGroup,
		Label:     label,
		Position:  p.Copy(),
		OldSel:    m.text.GetSelectionRange(),
		OldStatus: m.captureStatus(p),
		Payload:   &GroupPayload{},
	}
	m.stack.Push(b)
	return b
}

func (m *Manager) AfterChangeGroup(b *Bead, label string, reportFlag bool, dirtyList []outline.NodeID) {
	if b == nil || m.replaying() {
		return
	}
	if b.Kind != KindBeforeGroup {
		m.log.Warn("afterChangeGroup: top of stack is not an open beforeGroup")
		return
	}
	payload := b.Payload.(*GroupPayload)
	payload.ReportFlag = reportFlag

	b.Kind = KindAfterGroup
	b.Label = groupLabel(label, payload, reportFlag)
	b.NewSel = m.text.GetSelectionRange()
	b.NewStatus = m.captureStatus(b.Position)
	b.DirtyList = dirtyList

	m.updateMenuLabels()
}

func groupLabel(label string, payload *GroupPayload, reportFlag bool) string {
	if reportFlag && len(payload.Items) != 1 {
		return fmt.Sprintf("%s (%d changes)", label, len(payload.Items))
	}
	return label
}

// ---- typing ----

// SetUndoTypingParams records a typing edit, possibly extending the
// topmost typing bead rather than pushing a new one (§4.3).
func (m *Manager) SetUndoTypingParams(p outline.Position, oldText, newText string, oldSel, newSel Selection, oldYview *float64) *Bead {
	if m.replaying() {
		return nil
	}
	if oldText == newText {
		m.updateMenuLabels()
		return nil
	}

	diff := ComputeTextDiff(oldText, newText)

	if top := m.stack.Top(); top != nil && top.Kind == KindTyping && top.Position.Target == p.Target {
		if m.extendsTypingBead(top, diff, oldSel, newSel) {
			payload := top.Payload.(*TypingPayload)
			// Keep the original OldText fixed and recompute the published
			// Diff against it, rather than chaining this step's local diff
			// onto the previous one: leading/trailing only describe the
			// whole coalesced edit correctly when measured from the same
			// fixed starting point every time (§4.3 step 4).
			payload.NewText = newText
			payload.Diff = ComputeTextDiff(payload.OldText, payload.NewText)
			if oldYview != nil {
				payload.NewYview, payload.HasNewYview = *oldYview, true
			}
			top.NewSel = newSel
			return top
		}
	}

	b := &Bead{
		Kind:      KindTyping,
		Position:  p.Copy(),
		OldSel:    oldSel,
		NewSel:    newSel,
		OldStatus: m.captureStatus(p),
		NewStatus: m.captureStatus(p),
	}
	payload := &TypingPayload{OldText: oldText, NewText: newText, Diff: diff}
	if oldYview != nil {
		payload.OldYview, payload.HasOldYview = *oldYview, true
		payload.NewYview, payload.HasNewYview = *oldYview, true
	}
	b.Payload = payload
	b.Label = "Typing"
	m.stack.Push(b)
	m.updateMenuLabels()
	return b
}

// extendsTypingBead decides, per the configured granularity, whether a new
// typing event continues the bead at the top of the stack instead of
// opening a fresh one.
func (m *Manager) extendsTypingBead(top *Bead, diff TextDiff, oldSel, newSel Selection) bool {
	switch m.granularity {
	case GranularityChar:
		return false
	case GranularityNode:
		return true
	case GranularityLine:
		payload := top.Payload.(*TypingPayload)
		return payload.Diff.Leading == diff.Leading && payload.Diff.Trailing == diff.Trailing
	case GranularityWord:
		payload := top.Payload.(*TypingPayload)
		if payload.Diff.Leading != diff.Leading || payload.Diff.Trailing != diff.Trailing {
			return false
		}
		if oldSel.Start.Row != newSel.Start.Row {
			return false
		}
		colDelta := newSel.Start.Col - oldSel.Start.Col
		if colDelta != 1 && colDelta != -1 {
			return false
		}
		oldLine := ""
		newLine := ""
		// The old/new character at the edit point come from this event's
		// diff middle blocks: the boundary check uses the last line of
		// each fragment, which is where a single-character typing event
		// always lands.
		if len(diff.OldMiddleLines) > 0 {
			oldLine = diff.OldMiddleLines[len(diff.OldMiddleLines)-1]
		}
		if len(diff.NewMiddleLines) > 0 {
			newLine = diff.NewMiddleLines[len(diff.NewMiddleLines)-1]
		}
		oldCluster := clusterAtColumn(oldLine, oldSel.Start.Col-1)
		newCluster := clusterAtColumn(newLine, newSel.Start.Col-1)
		return !m.wordBoundary(oldCluster, newCluster)
	default:
		return false
	}
}

// ---- undo / redo ----

// Undo reverts the bead at the stack cursor, if any.
func (m *Manager) Undo() error {
	if !m.stack.CanUndo() {
		return ErrNothingToUndo
	}
	b := m.stack.Top()
	if m.positionStale(b) {
		m.log.With("kind", b.Kind, "label", b.Label).Warn("undo: position no longer resolves, treating as no-op")
		return ErrStalePosition
	}
	m.undoing = true
	defer func() { m.undoing = false }()

	if err := m.revert(b); err != nil {
		m.log.With("kind", b.Kind, "label", b.Label, "err", err).Error("undo failed")
	}
	m.stack.MoveToUndo()
	m.finishReplay(b, b.OldSel, b.OldStatus)
	return nil
}

// Redo applies the bead past the stack cursor, if any.
func (m *Manager) Redo() error {
	if !m.stack.CanRedo() {
		return ErrNothingToRedo
	}
	b := m.stack.PeekRedo()
	if m.positionStale(b) {
		m.log.With("kind", b.Kind, "label", b.Label).Warn("redo: position no longer resolves, treating as no-op")
		return ErrStalePosition
	}
	m.redoing = true
	defer func() { m.redoing = false }()

	if err := m.apply(b); err != nil {
		m.log.With("kind", b.Kind, "label", b.Label, "err", err).Error("redo failed")
	}
	m.stack.MoveToRedo()
	m.finishReplay(b, b.NewSel, b.NewStatus)
	return nil
}

// positionStale reports whether b's stored position can no longer be
// trusted to name the same appearance it did when the bead was recorded
// (§7's "parent or index changed under us"). It only applies to the kinds
// whose revert/apply reads or writes directly through b.Position without
// first re-deriving structure from their own payload (node content, tree
// replacement, marks, typing): for structural kinds — insert, delete,
// move, clone, sort, promote/demote, hoist/dehoist — the recorded
// position is expected to stop resolving as part of their own ordinary
// revert/apply cycle, so checking it there would misreport routine
// undo/redo as staleness.
func (m *Manager) positionStale(b *Bead) bool {
	switch b.Kind {
	case KindNode, KindTree, KindMark, KindTyping:
		return m.tree.IsStale(b.Position)
	default:
		return false
	}
}

func (m *Manager) finishReplay(b *Bead, sel Selection, status statusSnapshot) {
	if m.groupCount == 0 {
		// Beads with no node position (clearRecentFiles) have nothing to dirty.
		if b.Position.Target != "" {
			m.tree.SetDirty(b.Position, false)
			m.tree.SetAllAncestorAtFileNodesDirty(b.Position)
		}
		m.tree.SetChanged(true)
		m.text.SetSelectionRange(sel)
	}
	m.text.ForceFullRecolor()
	m.updateMenuLabels()
}
