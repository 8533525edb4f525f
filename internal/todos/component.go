// Package todos keeps a local image of the remote todo collection and maps
// user gestures onto REST calls.
//
// All state lives in a Component that is mutated only from Handle, which the
// UI loop calls serially. Every REST call is a tea.Cmd; its completion comes
// back as a message. A successful mutation always answers with a Refresh, and
// a Refresh always replaces the snapshot and re-renders the whole view.
// Failed calls yield no message, so nothing downstream of them happens.
//
// Calls are never sequenced or de-duplicated. If two mutations overlap, both
// refreshes run and the one whose FetchedMsg is handled last wins.
package todos

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/model"
)

// Backend is the collection resource.
type Backend interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, name string) error
	Update(ctx context.Context, id model.ID, name string) error
	Delete(ctx context.Context, id model.ID) error
}

// Row is one rendered list entry. Rows are keyed by Item.ID.
type Row struct {
	model.Item
	Editing bool
}

// View is the rendering substrate the component draws into.
type View interface {
	// Replace discards the container content and renders rows in order.
	Replace(rows []Row)
	// ClearInput empties the creation field.
	ClearInput()
}

// FetchedMsg carries a successful list response.
type FetchedMsg struct{ Items []model.Item }

// CreatedMsg reports a successful create.
type CreatedMsg struct{ Name string }

// UpdatedMsg reports a successful rename.
type UpdatedMsg struct{ ID model.ID }

// DeletedMsg reports a successful delete.
type DeletedMsg struct{ ID model.ID }

// Component owns the snapshot and the edit state.
type Component struct {
	ctx    context.Context
	cancel context.CancelFunc

	backend Backend
	view    View
	log     zerolog.Logger

	snapshot []model.Item
	edit     EditState
}

// Option configures a Component.
type Option func(*Component)

// WithLogger sets the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Component) { c.log = l }
}

// New returns a component with an empty snapshot in the Idle state.
// Requests run under ctx until Close.
func New(ctx context.Context, backend Backend, view View, opts ...Option) *Component {
	ctx, cancel := context.WithCancel(ctx)
	c := &Component{
		ctx:      ctx,
		cancel:   cancel,
		backend:  backend,
		view:     view,
		log:      zerolog.Nop(),
		snapshot: []model.Item{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init issues the initial fetch.
func (c *Component) Init() tea.Cmd { return c.Refresh() }

// Close abandons in-flight requests and drops the snapshot.
func (c *Component) Close() {
	c.cancel()
	c.snapshot = nil
	c.edit = Idle()
}

// Items returns a copy of the snapshot.
func (c *Component) Items() []model.Item {
	return append([]model.Item(nil), c.snapshot...)
}

// EditState returns the current edit state.
func (c *Component) EditState() EditState { return c.edit }

// Rows derives the rendered rows from the snapshot and the edit state.
func (c *Component) Rows() []Row {
	rows := make([]Row, len(c.snapshot))
	for i, it := range c.snapshot {
		rows[i] = Row{Item: it, Editing: c.edit.IsEditing(it.ID)}
	}
	return rows
}

// Refresh fetches the collection.
func (c *Component) Refresh() tea.Cmd {
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		items, err := backend.List(ctx)
		if err != nil {
			return nil
		}
		return FetchedMsg{Items: items}
	}
}

// Create posts a new item. Empty text means the field never changed, so
// nothing is sent; anything else, whitespace included, goes to the server.
func (c *Component) Create(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		if err := backend.Create(ctx, name); err != nil {
			return nil
		}
		return CreatedMsg{Name: name}
	}
}

// Commit sends the edited name of row id.
func (c *Component) Commit(id model.ID, name string) tea.Cmd {
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		if err := backend.Update(ctx, id, name); err != nil {
			return nil
		}
		return UpdatedMsg{ID: id}
	}
}

// Delete removes row id.
func (c *Component) Delete(id model.ID) tea.Cmd {
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		if err := backend.Delete(ctx, id); err != nil {
			return nil
		}
		return DeletedMsg{ID: id}
	}
}

// StartEdit moves the editing flag to row id. Ids not in the snapshot are ignored.
func (c *Component) StartEdit(id model.ID) {
	if !c.has(id) {
		return
	}
	c.edit = Editing(id)
	c.render()
}

// CancelEdit returns to Idle without talking to the server.
func (c *Component) CancelEdit() {
	if _, ok := c.edit.Active(); !ok {
		return
	}
	c.edit = Idle()
	c.render()
}

// Handle applies a completion and returns its continuation, if any.
// Messages it does not know are ignored.
func (c *Component) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		items := msg.Items
		if items == nil {
			items = []model.Item{}
		}
		c.snapshot = items
		c.edit = Idle()
		c.render()
		c.log.Debug().Int("items", len(items)).Msg("snapshot replaced")
		return nil
	case CreatedMsg:
		refresh := c.Refresh()
		c.view.ClearInput()
		return refresh
	case UpdatedMsg:
		return c.Refresh()
	case DeletedMsg:
		return c.Refresh()
	}
	return nil
}

// Settle runs cmd and every continuation it produces to completion on the
// calling goroutine. Batches run in order.
func (c *Component) Settle(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Handle(msg))
		}
	}
}

func (c *Component) render() {
	c.view.Replace(c.Rows())
}

func (c *Component) has(id model.ID) bool {
	for _, it := range c.snapshot {
		if it.ID == id {
			return true
		}
	}
	return false
}
