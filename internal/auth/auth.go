// Package auth resolves the bearer token sent to the collection server.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides any stored credentials.
	EnvToken = "TADA_TOKEN"

	SourceEnv  = "env"
	SourceFile = "file"
)

// Token is a resolved bearer token and where it came from.
type Token struct {
	Value     string     `json:"token"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Store keeps credentials in Dir (normally ~/.tada).
type Store struct {
	Dir string
}

// DefaultStore returns a Store rooted at ~/.tada.
func DefaultStore() (Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Store{}, fmt.Errorf("home: %w", err)
	}
	return Store{Dir: filepath.Join(home, ".tada")}, nil
}

func (s Store) path() string { return filepath.Join(s.Dir, credFileName) }

// Get returns the active token, or nil when none is configured.
// The environment wins over the credentials file.
func (s Store) Get() (*Token, error) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &Token{Value: stripBearer(env), Source: SourceEnv}, nil
	}

	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var t Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	t.Value = stripBearer(t.Value)
	t.Source = SourceFile
	return &t, nil
}

// Set persists token with owner-only permissions.
func (s Store) Set(token string, expires *time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Token{
		Value:     token,
		Source:    SourceFile,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expires,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Delete removes stored credentials. Missing credentials are not an error.
func (s Store) Delete() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
