package undo

import "github.com/dshills/outlineundo/internal/outline"

// NullUndoManager implements UndoManager with every operation a no-op. It
// is used when history is disabled for a document (§2).
type NullUndoManager struct{}

var _ UndoManager = NullUndoManager{}

func (NullUndoManager) ClearUndoState()      {}
func (NullUndoManager) CanUndo() bool        { return false }
func (NullUndoManager) CanRedo() bool        { return false }
func (NullUndoManager) UndoMenuLabel() string { return "Can't Undo" }
func (NullUndoManager) RedoMenuLabel() string { return "Can't Redo" }
func (NullUndoManager) EnableMenuItems()     {}

func (NullUndoManager) BeforeChangeNodeContents(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterChangeNodeContents(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforeChangeTree(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterChangeTree(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforeCloneNode(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterCloneNode(*Bead, string, outline.NodeID, int, []outline.NodeID) {}

func (NullUndoManager) BeforeInsertNode(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterInsertNode(*Bead, outline.Position, string, bool, []outline.NodeID) {}

func (NullUndoManager) BeforeDeleteNode(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterDeleteNode(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforeMoveNode(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterMoveNode(*Bead, string, outline.NodeID, int, []outline.NodeID) {}

func (NullUndoManager) BeforeHoist(outline.Position) *Bead           { return nil }
func (NullUndoManager) AfterHoist(*Bead, string, []outline.NodeID)   {}
func (NullUndoManager) BeforeDehoist(outline.Position) *Bead         { return nil }
func (NullUndoManager) AfterDehoist(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforeMark(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterMark(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforeSort(outline.Position) *Bead { return nil }
func (NullUndoManager) AfterSort(*Bead, string, []outline.NodeID) {}

func (NullUndoManager) BeforePromote(outline.Position) *Bead         { return nil }
func (NullUndoManager) AfterPromote(*Bead, string, []outline.NodeID) {}
func (NullUndoManager) BeforeDemote(outline.Position) *Bead          { return nil }
func (NullUndoManager) AfterDemote(*Bead, string, []outline.NodeID)  {}

func (NullUndoManager) BeforeClearRecentFiles() *Bead          { return nil }
func (NullUndoManager) AfterClearRecentFiles(*Bead, string)    {}

func (NullUndoManager) BeforeChangeGroup(outline.Position, string) *Bead { return nil }
func (NullUndoManager) AfterChangeGroup(*Bead, string, bool, []outline.NodeID) {}

func (NullUndoManager) SetUndoTypingParams(outline.Position, string, string, Selection, Selection, *float64) *Bead {
	return nil
}

func (NullUndoManager) Undo() error { return ErrNothingToUndo }
func (NullUndoManager) Redo() error { return ErrNothingToRedo }
