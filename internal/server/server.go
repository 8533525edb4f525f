// Package server is a reference implementation of the /api/todo collection
// resource, shaped like the Flask-Restless API the list editor was written
// against.
package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/store"
)

// Config tunes the server.
type Config struct {
	// Token, when set, must be presented as a Bearer token on /api routes.
	Token string
}

// Server holds the router and the backing store.
type Server struct {
	store  store.Store
	cfg    Config
	log    zerolog.Logger
	router chi.Router
}

// New builds a Server with its middleware stack and routes.
func New(st store.Store, cfg Config, logger zerolog.Logger) *Server {
	s := &Server{
		store: st,
		cfg:   cfg,
		log:   logger.With().Str("component", "server").Logger(),
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the http.Handler to serve.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Route("/api/todo", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Patch("/", s.handlePatch)
			r.Delete("/", s.handleDelete)
		})
	})

	return r
}

// accessLog logs one line per request with status and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		ev := s.log.Info()
		if m.Code >= http.StatusInternalServerError {
			ev = s.log.Error()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", m.Code).
			Int64("bytes", m.Written).
			Dur("duration", m.Duration).
			Msg("handled")
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.Token)) != 1 {
			respondError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database is not reachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
