// Package undomenu provides a minimal implementation of the engine's
// MenuHost collaborator (internal/undo.MenuHost): label text, enable
// state, and the recent-files submenu.
package undomenu

import "sync"

// Item is one entry's current label and enabled state.
type Item struct {
	Label   string
	Enabled bool
}

// Menu tracks label/enabled state per (menu, name) pair plus the
// recent-files submenu contents. A CLI or terminal front end reads Item
// and RecentFiles to render itself.
type Menu struct {
	mu    sync.Mutex
	items map[string]Item

	recentFiles []string
}

// New creates an empty Menu.
func New() *Menu {
	return &Menu{items: make(map[string]Item)}
}

func key(menu, name string) string { return menu + "/" + name }

// SetMenuLabel sets the label shown for (menu, item).
func (m *Menu) SetMenuLabel(menu, item, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := m.items[key(menu, item)]
	it.Label = label
	m.items[key(menu, item)] = it
}

// EnableMenu sets the enabled state for (menu, item).
func (m *Menu) EnableMenu(menu, item string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := m.items[key(menu, item)]
	it.Enabled = enabled
	m.items[key(menu, item)] = it
}

// Item returns the current state of (menu, name).
func (m *Menu) Item(menu, name string) Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[key(menu, name)]
}

// CreateRecentFilesMenuItems replaces the recent-files submenu contents.
func (m *Menu) CreateRecentFilesMenuItems(files []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recentFiles = append([]string(nil), files...)
}

// RecentFiles returns the recent-files submenu contents.
func (m *Menu) RecentFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recentFiles...)
}
