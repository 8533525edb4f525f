package todos

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/idilsaglam/tada/internal/model"
)

var errFake = errors.New("fake: request failed")

type call struct {
	Method string
	ID     model.ID
	Name   string
}

// fakeBackend is an in-memory collection resource that assigns its own ids.
type fakeBackend struct {
	mu     sync.Mutex
	items  []model.Item
	nextID int
	calls  []call
	fail   map[string]bool
}

func newFakeBackend(items ...model.Item) *fakeBackend {
	return &fakeBackend{items: items, nextID: 100, fail: map[string]bool{}}
}

func (b *fakeBackend) failOn(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[method] = true
}

func (b *fakeBackend) recorded() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *fakeBackend) List(ctx context.Context) ([]model.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: "GET"})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.fail["GET"] {
		return nil, errFake
	}
	return append([]model.Item{}, b.items...), nil
}

func (b *fakeBackend) Create(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: "POST", Name: name})
	if b.fail["POST"] {
		return errFake
	}
	b.nextID++
	b.items = append(b.items, model.Item{ID: model.ID(strconv.Itoa(b.nextID)), Name: name})
	return nil
}

func (b *fakeBackend) Update(ctx context.Context, id model.ID, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: "PATCH", ID: id, Name: name})
	if b.fail["PATCH"] {
		return errFake
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Name = name
			return nil
		}
	}
	return errFake
}

func (b *fakeBackend) Delete(ctx context.Context, id model.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: "DELETE", ID: id})
	if b.fail["DELETE"] {
		return errFake
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return nil
		}
	}
	return errFake
}

// recordingView keeps what the component drew.
type recordingView struct {
	rows    []Row
	renders int
	input   string
	cleared int
}

func (v *recordingView) Replace(rows []Row) {
	v.rows = rows
	v.renders++
}

func (v *recordingView) ClearInput() {
	v.input = ""
	v.cleared++
}

func (v *recordingView) editingRows() []model.ID {
	var ids []model.ID
	for _, r := range v.rows {
		if r.Editing {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
