// Package tui is the terminal front end of the todo list.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/todos"
	"github.com/idilsaglam/tada/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusAdd
	focusEdit
)

// inputs is shared with the row delegate.
type inputs struct {
	add  textinput.Model
	edit textinput.Model
}

type modelTUI struct {
	comp *todos.Component
	view *listView
	in   *inputs
	keys keyMap
	help help.Model

	list  list.Model
	focus focus

	// Values at focus time; a blur only counts as a change if they differ.
	addBefore  string
	editBefore string

	width, height int
}

// Options tune the program.
type Options struct {
	Logger zerolog.Logger
	// AltScreen runs full-window.
	AltScreen bool
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, backend todos.Backend, opt Options) error {
	m := newModel(ctx, backend, opt.Logger)
	defer m.comp.Close()

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opt.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, popts...).Run()
	return err
}

func newModel(ctx context.Context, backend todos.Backend, logger zerolog.Logger) modelTUI {
	in := &inputs{add: textinput.New(), edit: textinput.New()}
	in.add.Prompt = "> "
	in.add.Placeholder = "New item..."
	in.add.CharLimit = 200
	in.edit.Prompt = ""
	in.edit.CharLimit = 200

	l := list.New(nil, rowDelegate{in: in}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	// Quitting is ours; the list would also quit on esc.
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.PaginationStyle = ui.Current().Muted

	view := &listView{}
	return modelTUI{
		comp:   todos.New(ctx, backend, view, todos.WithLogger(logger)),
		view:   view,
		in:     in,
		keys:   defaultKeys(),
		help:   help.New(),
		list:   l,
		width:  80,
		height: 24,
	}
}

func (m modelTUI) Init() tea.Cmd { return m.comp.Init() }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case todos.FetchedMsg, todos.CreatedMsg, todos.UpdatedMsg, todos.DeletedMsg:
		cmds = append(cmds, m.comp.Handle(msg))
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	default:
		cmds = append(cmds, m.forward(msg))
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m *modelTUI) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.focus {
	case focusAdd:
		// Leaving the field is the create gesture.
		if key.Matches(msg, m.keys.Commit) || key.Matches(msg, m.keys.Cancel) {
			value := m.in.add.Value()
			changed := value != m.addBefore
			m.in.add.Blur()
			m.focus = focusList
			if !changed {
				return nil
			}
			return m.comp.Create(value)
		}
		var cmd tea.Cmd
		m.in.add, cmd = m.in.add.Update(msg)
		return cmd

	case focusEdit:
		id, ok := m.comp.EditState().Active()
		if !ok {
			m.focus = focusList
			return nil
		}
		if key.Matches(msg, m.keys.Cancel) {
			m.in.edit.Blur()
			m.focus = focusList
			m.comp.CancelEdit()
			return nil
		}
		if key.Matches(msg, m.keys.Commit) {
			value := m.in.edit.Value()
			if value == m.editBefore {
				return nil
			}
			m.editBefore = value
			return m.comp.Commit(id, value)
		}
		var cmd tea.Cmd
		m.in.edit, cmd = m.in.edit.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.focus = focusAdd
		m.addBefore = m.in.add.Value()
		m.in.add.CursorEnd()
		return m.in.add.Focus()
	case key.Matches(msg, m.keys.Edit):
		it, ok := m.list.SelectedItem().(listItem)
		if !ok {
			return nil
		}
		m.comp.StartEdit(it.row.ID)
		m.in.edit.SetValue(it.row.Name)
		m.in.edit.CursorEnd()
		m.editBefore = it.row.Name
		m.focus = focusEdit
		return m.in.edit.Focus()
	case key.Matches(msg, m.keys.Delete):
		it, ok := m.list.SelectedItem().(listItem)
		if !ok {
			return nil
		}
		return m.comp.Delete(it.row.ID)
	case key.Matches(msg, m.keys.Refresh):
		return m.comp.Refresh()
	}
	return m.forward(msg)
}

func (m *modelTUI) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusAdd:
		m.in.add, cmd = m.in.add.Update(msg)
	case focusEdit:
		m.in.edit, cmd = m.in.edit.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return cmd
}

// sync copies what the component rendered into the list and the inputs.
func (m *modelTUI) sync() tea.Cmd {
	var cmd tea.Cmd
	if m.view.dirty {
		m.view.dirty = false
		idx := m.list.Index()
		items := make([]list.Item, len(m.view.rows))
		for i, r := range m.view.rows {
			items[i] = listItem{row: r}
		}
		cmd = m.list.SetItems(items)
		if n := len(items); n > 0 && idx >= n {
			m.list.Select(n - 1)
		}
	}
	if m.view.clearPending {
		m.view.clearPending = false
		m.in.add.SetValue("")
		m.addBefore = ""
	}
	if _, editing := m.comp.EditState().Active(); !editing && m.focus == focusEdit {
		m.in.edit.Blur()
		m.focus = focusList
	}
	return cmd
}

func (m *modelTUI) resize() {
	// header, blank, add box (3), help
	h := m.height - 8
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
	m.in.add.Width = m.width - 10
	m.in.edit.Width = m.width - 16
	m.help.Width = m.width - 4
}

func (m modelTUI) View() string {
	t := ui.Current()

	var b strings.Builder
	b.WriteString(ui.Header(len(m.view.rows)))
	b.WriteString("\n\n")
	if len(m.list.Items()) == 0 {
		b.WriteString(t.Muted.Render("no items"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	border := t.Muted
	if m.focus == focusAdd {
		border = t.Accent
	}
	box := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(border.GetForeground()).
		Padding(0, 1)
	b.WriteString(box.Render(m.in.add.View()))
	b.WriteString("\n")

	switch m.focus {
	case focusAdd, focusEdit:
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Commit, m.keys.Cancel}))
	default:
		b.WriteString(m.help.ShortHelpView(append(m.keys.listHelp(), m.keys.Quit)))
	}

	return ui.Panel([]string{b.String()})
}

