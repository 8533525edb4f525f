package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS todo (
  id   INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT    NOT NULL UNIQUE
)`

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Ping checks database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns every todo in id order.
func (s *SQLiteStore) List(ctx context.Context) ([]Todo, error) {
	query, args, err := s.sb.Select("id", "name").From("todo").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	out := []Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return out, nil
}

// Get returns one todo.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (Todo, error) {
	query, args, err := s.sb.Select("id", "name").From("todo").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Todo{}, fmt.Errorf("building get query: %w", err)
	}
	var t Todo
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return t, nil
}

// Create inserts a todo and returns it with its assigned id.
func (s *SQLiteStore) Create(ctx context.Context, name string) (Todo, error) {
	if err := validateName(name); err != nil {
		return Todo{}, err
	}
	query, args, err := s.sb.Insert("todo").Columns("name").Values(name).ToSql()
	if err != nil {
		return Todo{}, fmt.Errorf("building insert query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Todo{}, mapWriteErr("creating todo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Todo{}, fmt.Errorf("reading new id: %w", err)
	}
	return Todo{ID: id, Name: name}, nil
}

// Rename sets the name of todo id.
func (s *SQLiteStore) Rename(ctx context.Context, id int64, name string) (Todo, error) {
	if err := validateName(name); err != nil {
		return Todo{}, err
	}
	query, args, err := s.sb.Update("todo").Set("name", name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Todo{}, fmt.Errorf("building update query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Todo{}, mapWriteErr(fmt.Sprintf("renaming todo %d", id), err)
	}
	if err := requireOneRow(res); err != nil {
		return Todo{}, err
	}
	return Todo{ID: id, Name: name}, nil
}

// Delete removes todo id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	query, args, err := s.sb.Delete("todo").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return requireOneRow(res)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalid)
	}
	return nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapWriteErr(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
