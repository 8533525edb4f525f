package markup

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todos"
)

type staticBackend struct {
	items   []model.Item
	patched []model.Item
}

func (b *staticBackend) List(context.Context) ([]model.Item, error) {
	return append([]model.Item(nil), b.items...), nil
}

func (b *staticBackend) Create(_ context.Context, name string) error {
	b.items = append(b.items, model.Item{ID: model.ID("new"), Name: name})
	return nil
}

func (b *staticBackend) Update(_ context.Context, id model.ID, name string) error {
	b.patched = append(b.patched, model.Item{ID: id, Name: name})
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Name = name
		}
	}
	return nil
}

func (b *staticBackend) Delete(context.Context, model.ID) error { return nil }

func TestRowsMarkup(t *testing.T) {
	t.Parallel()

	got := string(Rows([]todos.Row{
		{Item: model.Item{ID: "1", Name: "Milk"}},
		{Item: model.Item{ID: "2", Name: "Bread"}, Editing: true},
	}))

	want := `<ul>
<li id="1"><span class="name">Milk</span><input class="edit-name" type="text" value="Milk" hidden><button class="edit">Edit</button><button class="delete">Delete</button></li>
<li id="2" editing="1"><span class="name">Bread</span><input class="edit-name" type="text" value="Bread"><button class="edit">Edit</button><button class="delete">Delete</button></li>
</ul>`
	assert.Equal(t, want, got)
}

func TestRowsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<ul>\n</ul>", string(Rows(nil)))
}

func TestRowsEscapes(t *testing.T) {
	t.Parallel()

	got := string(Rows([]todos.Row{{Item: model.Item{ID: `"x`, Name: `<b>&"`}}}))
	assert.NotContains(t, got, "<b>")
	assert.Contains(t, got, "&lt;b&gt;")
	assert.NotContains(t, got, `id=""x"`)
}

func TestRefreshIsByteIdentical(t *testing.T) {
	t.Parallel()

	be := &staticBackend{items: []model.Item{{ID: "1", Name: "Milk"}, {ID: "2", Name: "Eggs"}}}
	view := New()
	c := todos.New(context.Background(), be, view)
	defer c.Close()

	c.Settle(c.Refresh())
	first := view.HTML()
	c.Settle(c.Refresh())

	assert.Equal(t, first, view.HTML())
}

func TestScenarioMilkToBread(t *testing.T) {
	t.Parallel()

	be := &staticBackend{items: []model.Item{{ID: "1", Name: "Milk"}}}
	view := New()
	c := todos.New(context.Background(), be, view)
	defer c.Close()

	c.Settle(c.Init())
	assert.Equal(t, 1, strings.Count(view.List(), "<li "))
	assert.Contains(t, view.List(), `<li id="1"><span class="name">Milk</span>`)

	c.StartEdit("1")
	assert.Contains(t, view.List(), `<li id="1" editing="1">`)
	assert.NotContains(t, view.List(), " hidden>")

	c.Settle(c.Commit("1", "Bread"))
	require.Equal(t, []model.Item{{ID: "1", Name: "Bread"}}, be.patched)
	assert.Contains(t, view.List(), `<span class="name">Bread</span>`)
	assert.NotContains(t, view.List(), "editing")
}

func TestCreateClearsField(t *testing.T) {
	t.Parallel()

	be := &staticBackend{}
	view := New()
	c := todos.New(context.Background(), be, view)
	defer c.Close()

	view.SetInput("Buy milk")
	assert.Contains(t, view.HTML(), `value="Buy milk"`)

	c.Settle(c.Create(view.Input()))

	assert.Equal(t, "", view.Input())
	assert.Contains(t, view.HTML(), `id="newName" type="text" placeholder="New item..." value=""`)
	assert.Contains(t, view.List(), `<span class="name">Buy milk</span>`)
}
