package undo

import (
	"fmt"

	"github.com/dshills/outlineundo/internal/outline"
)

// revert performs the undo action for b (§4.2): the document must end up
// observationally identical to its state immediately before the matching
// beforeX call.
func (m *Manager) revert(b *Bead) error {
	switch b.Kind {
	case KindNode:
		p := b.Payload.(*NodePayload)
		m.tree.SetHeadString(b.Position, p.OldHead)
		m.tree.SetBodyString(b.Position, p.OldBody)
		if b.OldStatus.marked {
			m.tree.MarkPosition(b.Position)
		} else {
			m.tree.ClearMarkPosition(b.Position)
		}
		return nil

	case KindTree:
		p := b.Payload.(*TreePayload)
		m.tree.RestoreTree(p.OldTree)
		m.tree.SetBodyString(b.Position, p.OldText)
		return nil

	case KindClone:
		p := b.Payload.(*ClonePayload)
		m.tree.Unlink(outline.Position{Target: b.Position.Target, ParentNode: p.NewParent, ChildIndex: p.NewChildIndex})
		return nil

	case KindInsert:
		p := b.Payload.(*InsertPayload)
		m.tree.Unlink(b.Position)
		if p.PasteAsClone {
			m.tree.RestoreTree(p.BeforeTree)
		}
		return nil

	case KindDelete:
		p := b.Payload.(*DeletePayload)
		m.tree.RestoreTree(p.Subtree)
		if p.OldParent == "" {
			m.tree.LinkAsRoot(b.Position.Target, p.OldChildIndex)
		} else {
			m.tree.LinkAsNthChild(p.OldParent, p.OldChildIndex, b.Position.Target)
		}
		return nil

	case KindMove:
		p := b.Payload.(*MovePayload)
		m.tree.Move(outline.Position{Target: b.Position.Target, ParentNode: p.NewParent, ChildIndex: p.NewChildIndex}, p.OldParent, p.OldChildIndex)
		return nil

	case KindHoist:
		m.tree.Dehoist()
		return nil
	case KindDehoist:
		p := b.Payload.(*HoistPayload)
		m.tree.Hoist(p.Position)
		return nil

	case KindMark:
		p := b.Payload.(*MarkPayload)
		if p.OldMarked {
			m.tree.MarkPosition(b.Position)
		} else {
			m.tree.ClearMarkPosition(b.Position)
		}
		return nil

	case KindSort:
		p := b.Payload.(*SortPayload)
		m.tree.SetChildren(p.Parent, p.OldChildren)
		return nil

	case KindPromote:
		p := b.Payload.(*PromoteDemotePayload)
		m.tree.SetChildren(p.Node, p.NodeOldChildren)
		m.tree.SetChildren(p.Parent, p.ParentOldChildren)
		return nil
	case KindDemote:
		p := b.Payload.(*PromoteDemotePayload)
		m.tree.SetChildren(p.Node, p.NodeOldChildren)
		m.tree.SetChildren(p.Parent, p.ParentOldChildren)
		return nil

	case KindClearRecentFiles:
		p := b.Payload.(*ClearRecentFilesPayload)
		m.app.SetRecentFiles(p.OldRecentFiles)
		return nil

	case KindTyping:
		return m.revertTyping(b)

	case KindAfterGroup:
		return m.revertGroup(b)

	default:
		return fmt.Errorf("%w: %s", ErrMissingHandler, b.Kind)
	}
}

// apply performs the redo action for b (§4.2): the document must end up
// observationally identical to its state immediately after the matching
// afterX call.
func (m *Manager) apply(b *Bead) error {
	switch b.Kind {
	case KindNode:
		p := b.Payload.(*NodePayload)
		m.tree.SetHeadString(b.Position, p.NewHead)
		m.tree.SetBodyString(b.Position, p.NewBody)
		if b.NewStatus.marked {
			m.tree.MarkPosition(b.Position)
		} else {
			m.tree.ClearMarkPosition(b.Position)
		}
		return nil

	case KindTree:
		p := b.Payload.(*TreePayload)
		m.tree.RestoreTree(p.NewTree)
		m.tree.SetBodyString(b.Position, p.NewText)
		return nil

	case KindClone:
		p := b.Payload.(*ClonePayload)
		if p.NewParent == "" {
			m.tree.LinkAsRoot(b.Position.Target, p.NewChildIndex)
		} else {
			m.tree.LinkAsNthChild(p.NewParent, p.NewChildIndex, b.Position.Target)
		}
		return nil

	case KindInsert:
		p := b.Payload.(*InsertPayload)
		if b.Position.ParentNode == "" {
			m.tree.LinkAsRoot(b.Position.Target, b.Position.ChildIndex)
		} else {
			m.tree.LinkAsNthChild(b.Position.ParentNode, b.Position.ChildIndex, b.Position.Target)
		}
		if p.PasteAsClone {
			m.tree.RestoreTree(p.AfterTree)
		}
		return nil

	case KindDelete:
		m.tree.SelectPosition(b.Position)
		m.tree.DeleteOutline(b.Position)
		return nil

	case KindMove:
		p := b.Payload.(*MovePayload)
		m.tree.Move(outline.Position{Target: b.Position.Target, ParentNode: p.OldParent, ChildIndex: p.OldChildIndex}, p.NewParent, p.NewChildIndex)
		return nil

	case KindHoist:
		p := b.Payload.(*HoistPayload)
		m.tree.Hoist(p.Position)
		return nil
	case KindDehoist:
		m.tree.Dehoist()
		return nil

	case KindMark:
		p := b.Payload.(*MarkPayload)
		if p.NewMarked {
			m.tree.MarkPosition(b.Position)
		} else {
			m.tree.ClearMarkPosition(b.Position)
		}
		return nil

	case KindSort:
		p := b.Payload.(*SortPayload)
		m.tree.SetChildren(p.Parent, p.NewChildren)
		return nil

	case KindPromote:
		p := b.Payload.(*PromoteDemotePayload)
		m.tree.SetChildren(p.Node, p.NodeNewChildren)
		m.tree.SetChildren(p.Parent, p.ParentNewChildren)
		return nil
	case KindDemote:
		p := b.Payload.(*PromoteDemotePayload)
		m.tree.SetChildren(p.Node, p.NodeNewChildren)
		m.tree.SetChildren(p.Parent, p.ParentNewChildren)
		return nil

	case KindClearRecentFiles:
		p := b.Payload.(*ClearRecentFilesPayload)
		m.app.SetRecentFiles(p.NewRecentFiles)
		return nil

	case KindTyping:
		return m.applyTyping(b)

	case KindAfterGroup:
		return m.applyGroup(b)

	default:
		return fmt.Errorf("%w: %s", ErrMissingHandler, b.Kind)
	}
}

func (m *Manager) revertTyping(b *Bead) error {
	p := b.Payload.(*TypingPayload)
	current := m.tree.BodyString(b.Position)
	text := ReconstructText(current, p.Diff.Leading, p.Diff.Trailing, p.Diff.OldMiddleLines, p.Diff.OldNewlines)
	m.tree.SetBodyString(b.Position, text)
	if p.HasOldYview {
		m.text.SetYScrollPosition(p.OldYview)
	}
	return nil
}

func (m *Manager) applyTyping(b *Bead) error {
	p := b.Payload.(*TypingPayload)
	current := m.tree.BodyString(b.Position)
	text := ReconstructText(current, p.Diff.Leading, p.Diff.Trailing, p.Diff.NewMiddleLines, p.Diff.NewNewlines)
	m.tree.SetBodyString(b.Position, text)
	if p.HasNewYview {
		m.text.SetYScrollPosition(p.NewYview)
	}
	return nil
}

// revertGroup undoes a group's children in reverse order, suppressing
// selection restoration in each child (only the outer group restores
// selection — §4.4's groupCount > 0 rule).
func (m *Manager) revertGroup(b *Bead) error {
	p := b.Payload.(*GroupPayload)
	m.groupCount++
	defer func() { m.groupCount-- }()

	var firstErr error
	for i := len(p.Items) - 1; i >= 0; i-- {
		item := p.Items[i]
		if err := m.revert(item); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyGroup redoes a group's children in forward order.
func (m *Manager) applyGroup(b *Bead) error {
	p := b.Payload.(*GroupPayload)
	m.groupCount++
	defer func() { m.groupCount-- }()

	var firstErr error
	for _, item := range p.Items {
		if err := m.apply(item); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
