// Package store persists the todo collection served by `todo serve`.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no todo has the requested id.
	ErrNotFound = errors.New("todo not found")
	// ErrConflict is returned when another todo already has the name.
	ErrConflict = errors.New("todo name already exists")
	// ErrInvalid is returned for names the collection refuses.
	ErrInvalid = errors.New("invalid todo")
)

// Todo is a stored row. IDs are assigned by the database.
type Todo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Store is the persistence layer used by the server.
type Store interface {
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id int64) (Todo, error)
	Create(ctx context.Context, name string) (Todo, error)
	Rename(ctx context.Context, id int64, name string) (Todo, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
