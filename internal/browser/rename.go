package browser

import (
	"strings"
	"sync"
)

// RenameEditor is the transient inline-edit state of a single item. It lives
// on the item, not in the controller, and vanishes when editing ends. Safe
// for concurrent use: the commit runs in a command goroutine while the
// render loop checks Active.
type RenameEditor struct {
	mu       sync.Mutex
	active   bool
	original string
	value    string
}

// Begin enters edit mode with the input prefilled with the current name.
func (e *RenameEditor) Begin(current string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = true
	e.original = current
	e.value = current
}

// Active reports whether the item is in edit mode.
func (e *RenameEditor) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Value returns the text currently typed.
func (e *RenameEditor) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// SetValue replaces the typed text.
func (e *RenameEditor) SetValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = v
}

// Cancel leaves edit mode discarding any typed input. Bound to Escape; an
// explicit action, never a side effect of losing focus.
func (e *RenameEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = false
	e.value = e.original
}

// Take ends edit mode and returns the trimmed value plus whether it differs
// from the original. An unchanged value means no rename request should be
// issued. Both Enter and blur route through here, so clicking away attempts
// a save instead of silently dropping the edit.
func (e *RenameEditor) Take() (name string, changed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = false
	name = strings.TrimSpace(e.value)
	return name, name != "" && name != strings.TrimSpace(e.original)
}
