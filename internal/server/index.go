package server

import (
	"context"
	"html/template"
	"net/http"
	"strconv"

	"github.com/idilsaglam/tada/internal/markup"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/todos"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>ToDos</title></head>
<body>
<h1>ToDos</h1>
{{ . }}
</body>
</html>
`))

// storeBackend lets the list component read the store in-process.
// The component drops failed calls, so the last List error is kept for
// the handler to report.
type storeBackend struct {
	store   store.Store
	listErr error
}

var _ todos.Backend = (*storeBackend)(nil)

func (b *storeBackend) List(ctx context.Context) ([]model.Item, error) {
	rows, err := b.store.List(ctx)
	b.listErr = err
	if err != nil {
		return nil, err
	}
	items := make([]model.Item, len(rows))
	for i, t := range rows {
		items[i] = toItem(t)
	}
	return items, nil
}

func (b *storeBackend) Create(ctx context.Context, name string) error {
	_, err := b.store.Create(ctx, name)
	return err
}

func (b *storeBackend) Update(ctx context.Context, id model.ID, name string) error {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return store.ErrNotFound
	}
	_, err = b.store.Rename(ctx, n, name)
	return err
}

func (b *storeBackend) Delete(ctx context.Context, id model.ID) error {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return store.ErrNotFound
	}
	return b.store.Delete(ctx, n)
}

func toItem(t store.Todo) model.Item {
	return model.Item{ID: model.ID(strconv.FormatInt(t.ID, 10)), Name: t.Name}
}

// handleIndex renders the current collection with the same markup the list
// component produces.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := markup.New()
	backend := &storeBackend{store: s.store}
	c := todos.New(r.Context(), backend, view)
	defer c.Close()
	c.Settle(c.Init())
	if backend.listErr != nil {
		s.storeError(w, r, backend.listErr)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, template.HTML(view.HTML())); err != nil {
		s.log.Error().Err(err).Msg("rendering index")
	}
}
