package todos

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func abc() []model.Item {
	return []model.Item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
}

func newTestComponent(t *testing.T, items ...model.Item) (*Component, *fakeBackend, *recordingView) {
	t.Helper()
	be := newFakeBackend(items...)
	view := &recordingView{}
	c := New(context.Background(), be, view)
	t.Cleanup(c.Close)
	return c, be, view
}

func ids(items []model.Item) []model.ID {
	out := make([]model.ID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNewStartsEmptyAndIdle(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)

	assert.Empty(t, c.Items())
	assert.Equal(t, Idle(), c.EditState())
	assert.Zero(t, view.renders)
	assert.Empty(t, be.recorded())
}

func TestInitFetchesAndRenders(t *testing.T) {
	c, be, view := newTestComponent(t, model.Item{ID: "1", Name: "Milk"})

	c.Settle(c.Init())

	assert.Equal(t, []call{{Method: "GET"}}, be.recorded())
	require.Len(t, view.rows, 1)
	assert.Equal(t, model.ID("1"), view.rows[0].ID)
	assert.Equal(t, "Milk", view.rows[0].Name)
	assert.False(t, view.rows[0].Editing)
}

func TestRefreshKeepsServerOrder(t *testing.T) {
	c, _, view := newTestComponent(t,
		model.Item{ID: "9", Name: "zeta"},
		model.Item{ID: "1", Name: "alpha"},
		model.Item{ID: "5", Name: "mid"},
	)

	c.Settle(c.Refresh())

	assert.Equal(t, []model.ID{"9", "1", "5"}, ids(c.Items()))
	require.Len(t, view.rows, 3)
	assert.Equal(t, model.ID("9"), view.rows[0].ID)
}

func TestRefreshTwiceIsIdempotent(t *testing.T) {
	c, _, view := newTestComponent(t, abc()...)

	c.Settle(c.Refresh())
	first := view.rows
	c.Settle(c.Refresh())

	assert.Equal(t, first, view.rows)
	assert.Equal(t, 2, view.renders)
}

func TestCreateRoundTrip(t *testing.T) {
	c, be, view := newTestComponent(t)
	c.Settle(c.Init())
	view.input = "Buy milk"

	c.Settle(c.Create("Buy milk"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Name)
	assert.Equal(t, model.ID("101"), items[0].ID, "id comes from the server")
	assert.Equal(t, "", view.input)
	assert.Equal(t, 1, view.cleared)
	assert.Equal(t, []call{
		{Method: "GET"},
		{Method: "POST", Name: "Buy milk"},
		{Method: "GET"},
	}, be.recorded())
}

func TestCreateEmptySendsNothing(t *testing.T) {
	c, be, _ := newTestComponent(t)

	assert.Nil(t, c.Create(""))
	assert.Empty(t, be.recorded())
}

func TestCreateWhitespaceIsLeftToServer(t *testing.T) {
	c, be, _ := newTestComponent(t)

	c.Settle(c.Create("   "))

	require.NotEmpty(t, be.recorded())
	assert.Equal(t, call{Method: "POST", Name: "   "}, be.recorded()[0])
}

func TestCreateClearsInputBeforeRefreshCompletes(t *testing.T) {
	c, be, view := newTestComponent(t)
	view.input = "typed"

	msg := c.Create("typed")()
	require.IsType(t, CreatedMsg{}, msg)

	// Refresh is issued but fails; the field is cleared regardless.
	be.failOn("GET")
	c.Settle(c.Handle(msg))

	assert.Equal(t, "", view.input)
	assert.Equal(t, 1, view.cleared)
	assert.Empty(t, c.Items())
}

func TestFailedCreateLeavesEverythingAlone(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())
	view.input = "typed"
	be.failOn("POST")

	c.Settle(c.Create("typed"))

	assert.Equal(t, "typed", view.input)
	assert.Zero(t, view.cleared)
	assert.Equal(t, 1, view.renders)
	assert.Equal(t, []call{{Method: "GET"}, {Method: "POST", Name: "typed"}}, be.recorded())
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())
	c.StartEdit("b")
	be.failOn("GET")

	c.Settle(c.Refresh())

	assert.Equal(t, []model.ID{"a", "b", "c"}, ids(c.Items()))
	assert.Equal(t, Editing("b"), c.EditState())
	assert.Equal(t, []model.ID{"b"}, view.editingRows())
}

func TestCommitEditScenario(t *testing.T) {
	c, be, view := newTestComponent(t, model.Item{ID: "1", Name: "Milk"})
	c.Settle(c.Init())

	require.Len(t, view.rows, 1)
	assert.Equal(t, model.ID("1"), view.rows[0].ID)
	assert.Equal(t, "Milk", view.rows[0].Name)

	c.StartEdit("1")
	assert.Equal(t, []model.ID{"1"}, view.editingRows())

	msg := c.Commit("1", "Bread")()
	assert.Equal(t, UpdatedMsg{ID: "1"}, msg)
	assert.Equal(t, call{Method: "PATCH", ID: "1", Name: "Bread"}, be.recorded()[1])

	refresh := c.Handle(msg)
	require.NotNil(t, refresh, "successful update must refresh")
	c.Settle(refresh)

	assert.Equal(t, []model.Item{{ID: "1", Name: "Bread"}}, c.Items())
	assert.Equal(t, Idle(), c.EditState())
	assert.Empty(t, view.editingRows())
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	c, be, _ := newTestComponent(t, abc()...)
	c.Settle(c.Init())

	c.Settle(c.Delete("b"))

	assert.Equal(t, []model.ID{"a", "c"}, ids(c.Items()))
	assert.Equal(t, []call{{Method: "GET"}, {Method: "DELETE", ID: "b"}, {Method: "GET"}}, be.recorded())
}

func TestDeleteOfVanishedIDDoesNotRefresh(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())

	c.Settle(c.Delete("zzz"))

	assert.Equal(t, []call{{Method: "GET"}, {Method: "DELETE", ID: "zzz"}}, be.recorded())
	assert.Equal(t, 1, view.renders)
}

func TestEachMutationRefreshesExactlyOnce(t *testing.T) {
	tests := []struct {
		name string
		cmd  func(*Component) tea.Cmd
	}{
		{name: "create", cmd: func(c *Component) tea.Cmd { return c.Create("D") }},
		{name: "update", cmd: func(c *Component) tea.Cmd { return c.Commit("a", "AA") }},
		{name: "delete", cmd: func(c *Component) tea.Cmd { return c.Delete("c") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, be, view := newTestComponent(t, abc()...)
			c.Settle(c.Init())
			c.StartEdit("b")

			c.Settle(tc.cmd(c))

			gets := 0
			for _, cl := range be.recorded() {
				if cl.Method == "GET" {
					gets++
				}
			}
			assert.Equal(t, 2, gets)
			assert.Equal(t, Idle(), c.EditState(), "refresh resets edit mode")
			assert.Empty(t, view.editingRows())
		})
	}
}

func TestEditExclusivity(t *testing.T) {
	c, _, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())

	// Every activation sequence of length 4 over 3 rows.
	rows := []model.ID{"a", "b", "c"}
	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		for _, id := range rows {
			c.StartEdit(id)
			require.Equal(t, []model.ID{id}, view.editingRows())
			require.Equal(t, Editing(id), c.EditState())
			walk(depth - 1)
		}
	}
	walk(4)
}

func TestStartEditUnknownIDIsIgnored(t *testing.T) {
	c, _, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())
	c.StartEdit("a")
	renders := view.renders

	c.StartEdit("nope")

	assert.Equal(t, Editing("a"), c.EditState())
	assert.Equal(t, renders, view.renders)
}

func TestCancelEdit(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)
	c.Settle(c.Init())
	c.StartEdit("c")

	c.CancelEdit()

	assert.Equal(t, Idle(), c.EditState())
	assert.Empty(t, view.editingRows())
	assert.Len(t, be.recorded(), 1, "cancel is local")
}

func TestOverlappingRefreshesLastCompletionWins(t *testing.T) {
	c, be, view := newTestComponent(t, abc()...)

	early := c.Refresh()()
	require.NoError(t, be.Delete(context.Background(), "a"))
	late := c.Refresh()()

	// The newer response lands first, the stale one last.
	c.Handle(late)
	c.Handle(early)

	assert.Equal(t, []model.ID{"a", "b", "c"}, ids(c.Items()))
	assert.Equal(t, 2, view.renders)
}

func TestSettleRunsBatches(t *testing.T) {
	c, be, _ := newTestComponent(t, abc()...)

	c.Settle(tea.Batch(c.Delete("a"), c.Delete("b")))

	assert.Equal(t, []model.ID{"c"}, ids(c.Items()))
	assert.Len(t, be.recorded(), 4)
}

func TestCloseCancelsRequests(t *testing.T) {
	c, _, view := newTestComponent(t, abc()...)
	c.Close()

	c.Settle(c.Refresh())

	assert.Zero(t, view.renders)
	assert.Nil(t, c.Items())
}

func TestHandleIgnoresForeignMessages(t *testing.T) {
	c, _, view := newTestComponent(t)
	assert.Nil(t, c.Handle(tea.KeyMsg{}))
	assert.Zero(t, view.renders)
}
