// Package appregistry holds the one piece of state the engine treats as a
// shared external resource rather than document-local: the recent-files
// list (§9 "global-ish state", §10 clearRecentFiles). Unlike
// internal/undo.Manager it keeps its own mutex, so a host may share it
// across goroutines; nothing in this module starts a second goroutine.
package appregistry

import "sync"

// Registry mirrors the app-level recent-files list that internal/undo's
// clearRecentFiles bead reads and restores through the AppRegistry
// interface.
type Registry struct {
	mu    sync.Mutex
	files []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// RecentFiles returns a copy of the current recent-files list.
func (r *Registry) RecentFiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.files...)
}

// SetRecentFiles replaces the recent-files list.
func (r *Registry) SetRecentFiles(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append([]string(nil), files...)
}

// AddRecentFile prepends path, removing any existing occurrence and
// capping the list at max entries.
func (r *Registry) AddRecentFile(path string, max int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.files)+1)
	out = append(out, path)
	for _, f := range r.files {
		if f != path {
			out = append(out, f)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	r.files = out
}

// Clear empties the recent-files list.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = nil
}
