// Command outlineundo-demo is a minimal terminal front end exercising the
// outline/undo engine end-to-end: it shows the current Undo/Redo menu
// labels and a status line, and binds keys for insert, delete, mark, undo,
// redo and quit. It draws neither the outline nor any body text, and has
// no typing keys.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/outlineundo/internal/appregistry"
	"github.com/dshills/outlineundo/internal/outline"
	"github.com/dshills/outlineundo/internal/undo"
	"github.com/dshills/outlineundo/internal/undoconfig"
	"github.com/dshills/outlineundo/internal/undomenu"
	"github.com/dshills/outlineundo/internal/undotext"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "outlineundo-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := undoconfig.Load(configPath())
	if err != nil {
		return err
	}
	granularity := undoconfig.DefaultGranularity
	if g, ok := cfg.GetString("undo_granularity"); ok {
		granularity = g
	}
	maxStack := undoconfig.DefaultMaxUndoStackSize
	if n, ok := cfg.GetInt("max_undo_stack_size"); ok {
		maxStack = n
	}

	doc := outline.NewDocument()
	text := undotext.New()
	menu := undomenu.New()
	registry := appregistry.New()

	mgr := undo.NewManager(doc, text, menu, registry, maxStack,
		undo.WithGranularity(undo.ParseGranularity(granularity)))

	app := newApp(doc, text, menu, mgr)
	return app.runTUI()
}

func configPath() string {
	if p := os.Getenv("OUTLINEUNDO_CONFIG"); p != "" {
		return p
	}
	return "outlineundo.toml"
}

// app wires the engine to a tcell screen.
type app struct {
	doc    *outline.Document
	text   *undotext.Widget
	menu   *undomenu.Menu
	mgr    *undo.Manager
	screen tcell.Screen

	cursor outline.Position
	status string
}

func newApp(doc *outline.Document, text *undotext.Widget, menu *undomenu.Menu, mgr *undo.Manager) *app {
	return &app{doc: doc, text: text, menu: menu, mgr: mgr, cursor: doc.CurrentPosition()}
}

func (a *app) runTUI() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.screen = screen
	defer screen.Fini()

	a.status = "insert=i delete=d mark=m undo=u redo=r quit=q"
	a.draw()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		}
		a.draw()
	}
}

func (a *app) handleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Rune() {
	case 'q':
		return true
	case 'i':
		a.insertChild()
	case 'd':
		a.deleteCurrent()
	case 'm':
		a.toggleMark()
	case 'u':
		if err := a.mgr.Undo(); err != nil {
			a.status = err.Error()
		} else {
			a.status = "undid: " + a.mgr.RedoMenuLabel()
		}
	case 'r':
		if err := a.mgr.Redo(); err != nil {
			a.status = err.Error()
		} else {
			a.status = "redid: " + a.mgr.UndoMenuLabel()
		}
	}
	return false
}

func (a *app) insertChild() {
	b := a.mgr.BeforeInsertNode(a.cursor)
	n := a.doc.NewNode("New Node", "")
	pos := a.doc.LinkAsNthChild(a.cursor.Target, len(a.doc.Children(a.cursor.Target)), n.ID)
	a.mgr.AfterInsertNode(b, pos, "Insert Node", false, nil)
	a.cursor = pos
}

func (a *app) deleteCurrent() {
	if a.cursor.IsRoot() && a.doc.ChildIndex(a.cursor) == 0 {
		a.status = "cannot delete the only root"
		return
	}
	b := a.mgr.BeforeDeleteNode(a.cursor)
	a.doc.DeleteOutline(a.cursor)
	a.mgr.AfterDeleteNode(b, "Delete Node", nil)
}

func (a *app) toggleMark() {
	b := a.mgr.BeforeMark(a.cursor)
	if a.doc.IsMarked(a.cursor) {
		a.doc.ClearMarkPosition(a.cursor)
	} else {
		a.doc.MarkPosition(a.cursor)
	}
	a.mgr.AfterMark(b, "Mark", nil)
}

func (a *app) draw() {
	a.screen.Clear()
	style := tcell.StyleDefault
	drawText(a.screen, 0, 0, style, "outlineundo-demo")
	drawText(a.screen, 0, 1, style, fmt.Sprintf("%s | %s", a.mgr.UndoMenuLabel(), a.mgr.RedoMenuLabel()))
	drawText(a.screen, 0, 3, style, a.status)
	a.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
