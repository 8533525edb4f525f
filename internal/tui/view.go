package tui

import "github.com/idilsaglam/tada/internal/todos"

// listView is the container the component renders into. The bubbletea
// model copies its content into the list after every Update.
type listView struct {
	rows         []todos.Row
	dirty        bool
	clearPending bool
}

func (v *listView) Replace(rows []todos.Row) {
	v.rows = rows
	v.dirty = true
}

func (v *listView) ClearInput() { v.clearPending = true }
