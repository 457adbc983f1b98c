package undo

import "github.com/dshills/outlineundo/internal/outline"

// TreeModel is the tree-model collaborator the engine consumes: node
// creation, navigation, structural mutation, and dirtiness/marked bits all
// live on the host's side of this interface (*outline.Document satisfies
// it). The engine never reaches into a node directly.
type TreeModel interface {
	IsChanged() bool
	SetChanged(bool)

	CurrentPosition() outline.Position
	SelectPosition(outline.Position)
	SetCurrentPosition(outline.Position)
	SetPositionAfterSort(outline.Position)

	BeginUpdate()
	EndUpdate(recolor bool)
	RecolorNow()

	DeleteOutline(outline.Position)
	Hoist(outline.Position)
	Dehoist() (outline.Position, bool)

	SetHeadString(outline.Position, string)
	SetBodyString(outline.Position, string)
	MarkPosition(outline.Position)
	ClearMarkPosition(outline.Position)

	Node(outline.NodeID) (*outline.Node, bool)
	Back(outline.Position) (outline.Position, bool)
	Parent(outline.Position) (outline.Position, bool)
	FirstChild(outline.Position) (outline.Position, bool)
	Next(outline.Position) (outline.Position, bool)
	Subtree(outline.Position) []outline.Position
	ChildIndex(outline.Position) int
	IsStale(outline.Position) bool

	NewNode(head, body string) *outline.Node
	LinkAfter(q outline.Position, id outline.NodeID) outline.Position
	LinkAsNthChild(parent outline.NodeID, i int, id outline.NodeID) outline.Position
	LinkAsRoot(id outline.NodeID, i int) outline.Position
	Unlink(outline.Position)
	Move(p outline.Position, newParent outline.NodeID, newIndex int) outline.Position
	Clone(p outline.Position, newParent outline.NodeID, i int) outline.Position

	IsMarked(outline.Position) bool
	IsDirty(outline.Position) bool
	HeadString(outline.Position) string
	BodyString(outline.Position) string

	SetDirty(p outline.Position, setDescendentsDirty bool)
	SetAllAncestorAtFileNodesDirty(outline.Position)

	Children(parent outline.NodeID) []outline.NodeID
	SetChildren(parent outline.NodeID, children []outline.NodeID)

	SaveTree(outline.Position) outline.TreeSnapshot
	RestoreTree(outline.TreeSnapshot)
}

// TextWidget is the text-widget collaborator: selection, full-text get/set,
// scroll position, and recolor/update notifications. internal/undotext
// ships a concrete in-memory implementation, which cmd/outlineundo-demo
// passes to the engine without rendering its text.
type TextWidget interface {
	GetSelectionRange() Selection
	SetSelectionRange(sel Selection)
	GetAllText() string
	SetAllText(s string)
	GetYScrollPosition() float64
	SetYScrollPosition(y float64)
	ForceFullRecolor()
	UpdateEditors()
}

// MenuHost is the menu collaborator: label text and enable state for the
// Undo/Redo commands, plus the recent-files submenu. internal/undomenu
// ships a concrete implementation.
type MenuHost interface {
	SetMenuLabel(menu, item, label string)
	EnableMenu(menu, item string, enabled bool)
	CreateRecentFilesMenuItems(files []string)
}

// ConfigReader supplies the two settings the engine reads at startup
// (§6): the typing-coalescence granularity and the undo stack bound.
type ConfigReader interface {
	GetString(key string) (string, bool)
	GetInt(key string) (int, bool)
}

// AppRegistry is the external resource holding the recent-files list, the
// one piece of state a clearRecentFiles bead restores (§9, §10).
type AppRegistry interface {
	RecentFiles() []string
	SetRecentFiles([]string)
}
