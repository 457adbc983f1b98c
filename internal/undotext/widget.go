// Package undotext provides an in-memory implementation of the engine's
// TextWidget collaborator (internal/undo.TextWidget): selection range,
// full-text get/set, scroll position, and recolor/update notifications.
// cmd/outlineundo-demo passes one to the engine but does not draw its text.
package undotext

import "github.com/dshills/outlineundo/internal/undo"

// Widget is a minimal single-buffer text widget.
type Widget struct {
	text      string
	selection undo.Selection
	yview     float64

	recolorCount int
	updateCount  int
}

// New creates an empty Widget.
func New() *Widget {
	return &Widget{}
}

// GetSelectionRange returns the current selection.
func (w *Widget) GetSelectionRange() undo.Selection { return w.selection }

// SetSelectionRange sets the current selection.
func (w *Widget) SetSelectionRange(sel undo.Selection) { w.selection = sel }

// GetAllText returns the widget's full text.
func (w *Widget) GetAllText() string { return w.text }

// SetAllText replaces the widget's full text.
func (w *Widget) SetAllText(s string) { w.text = s }

// GetYScrollPosition returns the current scroll offset.
func (w *Widget) GetYScrollPosition() float64 { return w.yview }

// SetYScrollPosition sets the scroll offset.
func (w *Widget) SetYScrollPosition(y float64) { w.yview = y }

// ForceFullRecolor records a recolor request; a real renderer would
// re-tokenize the visible text here.
func (w *Widget) ForceFullRecolor() { w.recolorCount++ }

// UpdateEditors records an update-all-views request.
func (w *Widget) UpdateEditors() { w.updateCount++ }

// RecolorCount and UpdateCount let tests assert the widget was notified
// the expected number of times.
func (w *Widget) RecolorCount() int { return w.recolorCount }
func (w *Widget) UpdateCount() int  { return w.updateCount }
