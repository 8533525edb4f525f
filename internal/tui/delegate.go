package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/todos"
	"github.com/idilsaglam/tada/internal/ui"
)

// listItem adapts a rendered row to bubbles/list.Item.
type listItem struct {
	row todos.Row
}

func (i listItem) FilterValue() string { return i.row.Name }

// rowDelegate draws one row per line. The editing row shows the edit input
// in place of its name.
type rowDelegate struct {
	in *inputs
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor) + " "
	}
	id := t.Muted.Render(it.row.ID.String())

	if it.row.Editing {
		fmt.Fprintf(w, "%s%s %s", prefix, id, t.Editing.Render(d.in.edit.View()))
		return
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, t.Bullet, it.row.Name)
}
