package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/idilsaglam/tada/internal/store"
)

// listResponse mirrors the Flask-Restless collection envelope.
type listResponse struct {
	Objects    []store.Todo `json:"objects"`
	NumResults int          `json:"num_results"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

type nameRequest struct {
	Name *string `json:"name"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.List(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{
		Objects:    todos,
		NumResults: len(todos),
		Page:       1,
		TotalPages: 1,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	t, err := s.store.Create(r.Context(), name)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/todo/"+strconv.FormatInt(t.ID, 10))
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	t, err := s.store.Rename(r.Context(), id, name)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "no todo with that id")
		return 0, false
	}
	return id, true
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req nameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "unable to decode data")
		return "", false
	}
	if req.Name == nil {
		respondError(w, http.StatusBadRequest, "name is required")
		return "", false
	}
	return *req.Name, true
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("store failure")
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Message: msg})
}
