package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/markup"
	"github.com/idilsaglam/tada/internal/todos"
)

// failureLog forwards to the logging observer and remembers the first failure
// so one-shot commands can set an exit status.
type failureLog struct {
	next api.Observer

	mu    sync.Mutex
	first error
}

func (f *failureLog) RequestFailed(method, url string, err error) {
	f.next.RequestFailed(method, url, err)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.first == nil {
		f.first = err
	}
}

func (f *failureLog) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.first
}

// session is a headless list component talking to the configured server.
type session struct {
	comp     *todos.Component
	view     *markup.View
	failures *failureLog
}

func (a *App) newClient(obs api.Observer) (*api.Client, error) {
	var token string
	t, err := a.Auth.Get()
	if err != nil {
		a.Logger.Warn().Err(err).Msg("ignoring unreadable credentials")
	} else if t != nil {
		token = t.Value
	}
	return api.New(api.Config{
		BaseURL:  a.Config.BaseURL,
		Token:    token,
		Observer: obs,
	})
}

func (a *App) openSession(ctx context.Context) (*session, error) {
	failures := &failureLog{
		next: api.LogObserver{Logger: a.Logger.With().Str("component", "api").Logger()},
	}
	client, err := a.newClient(failures)
	if err != nil {
		return nil, err
	}
	view := markup.New()
	comp := todos.New(ctx, client, view, todos.WithLogger(a.Logger.With().Str("component", "todos").Logger()))
	return &session{comp: comp, view: view, failures: failures}, nil
}

// load performs the initial fetch.
func (s *session) load() error {
	s.comp.Settle(s.comp.Init())
	return s.failures.err()
}

func (s *session) close() { s.comp.Close() }

var errNoSuchItem = errors.New("no item with that id")
