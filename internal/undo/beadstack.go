package undo

// BeadStack is the linear undo/redo history: a slice of beads plus a cursor
// that always points at the next bead to undo (bead+1 is the next to redo).
type BeadStack struct {
	beads []*Bead
	bead  int // -1 means nothing to undo

	maxSize int
}

// NewBeadStack creates an empty stack bounded by maxSize entries (0 means
// unbounded).
func NewBeadStack(maxSize int) *BeadStack {
	return &BeadStack{bead: -1, maxSize: maxSize}
}

// CanUndo reports whether the cursor names a bead to undo.
func (s *BeadStack) CanUndo() bool { return s.bead >= 0 }

// CanRedo reports whether the cursor names a bead to redo.
func (s *BeadStack) CanRedo() bool { return s.bead < len(s.beads)-1 }

// Top returns the bead the cursor currently points at, or nil.
func (s *BeadStack) Top() *Bead {
	if s.bead < 0 || s.bead >= len(s.beads) {
		return nil
	}
	return s.beads[s.bead]
}

// PeekUndo returns the bead that would be undone next.
func (s *BeadStack) PeekUndo() *Bead { return s.Top() }

// PeekRedo returns the bead that would be redone next.
func (s *BeadStack) PeekRedo() *Bead {
	if !s.CanRedo() {
		return nil
	}
	return s.beads[s.bead+1]
}

// IsGroupOpen reports whether the bead at the cursor is an open
// beforeGroup, i.e. Push should append to it rather than advance the
// cursor.
func (s *BeadStack) IsGroupOpen() bool {
	top := s.Top()
	return top != nil && top.Kind == KindBeforeGroup
}

// Push records a completed bead, dropping any forward (redo) history, then
// truncates to maxSize if the stack isn't inside an open group.
//
// If the bead at the cursor is an open beforeGroup, the new bead is
// appended to that group's items instead (§4.4): groups never nest beads
// from a different group onto the main stack.
func (s *BeadStack) Push(b *Bead) {
	if s.IsGroupOpen() {
		top := s.Top()
		payload := top.Payload.(*GroupPayload)
		payload.Items = append(payload.Items, b)
		return
	}

	s.beads = append(s.beads[:s.bead+1], b)
	s.bead = len(s.beads) - 1

	s.truncate()
}

// truncate enforces maxSize, but never while an open beforeGroup sits at
// the top of the stack (truncating mid-group would lose the group's
// half-built item list).
func (s *BeadStack) truncate() {
	if s.maxSize <= 0 || s.IsGroupOpen() {
		return
	}
	if len(s.beads) <= s.maxSize {
		return
	}
	excess := len(s.beads) - s.maxSize
	s.beads = append([]*Bead(nil), s.beads[excess:]...)
	s.bead -= excess
	if s.bead < -1 {
		s.bead = -1
	}
}

// Len returns the number of beads currently on the stack.
func (s *BeadStack) Len() int { return len(s.beads) }

// Cursor returns the current bead index (-1 if undo is disabled).
func (s *BeadStack) Cursor() int { return s.bead }

// MoveToUndo moves the cursor one step toward the start, returning the bead
// that was just undone.
func (s *BeadStack) MoveToUndo() *Bead {
	b := s.Top()
	if b == nil {
		return nil
	}
	s.bead--
	return b
}

// MoveToRedo moves the cursor one step toward the end, returning the bead
// that was just redone.
func (s *BeadStack) MoveToRedo() *Bead {
	b := s.PeekRedo()
	if b == nil {
		return nil
	}
	s.bead++
	return b
}

// Clear discards all beads and resets the cursor.
func (s *BeadStack) Clear() {
	s.beads = nil
	s.bead = -1
}

// SetMaxSize changes the bound, truncating immediately if necessary.
func (s *BeadStack) SetMaxSize(n int) {
	s.maxSize = n
	s.truncate()
}
