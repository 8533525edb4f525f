// Package api is the HTTP client for the todo collection resource.
//
// Conventions:
//   - Every method takes a context.Context; there is no built-in timeout.
//   - Non-2xx responses become *StatusError.
//   - Every failure, whatever its kind, is reported to the Observer before
//     it is returned.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/tada/internal/model"
)

// CollectionPath is the REST collection endpoint.
const CollectionPath = "/api/todo"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// Config configures a Client.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:5000".
	BaseURL string

	// Token is sent as a Bearer token when non-empty.
	Token string

	// HTTPClient is optional; http.DefaultClient is used when nil.
	HTTPClient *http.Client

	// Observer receives every failure. Defaults to a LogObserver on the
	// global zerolog logger as configured when New is called.
	Observer Observer
}

// Client talks to the collection resource.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	observer Observer
}

// StatusError is returned for non-success HTTP statuses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// AsStatusError unwraps err to a *StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// listEnvelope is the body of GET /api/todo. A body without "objects"
// is malformed, not empty.
type listEnvelope struct {
	Objects *[]model.Item `json:"objects"`
}

func (e *listEnvelope) validate() error {
	if e.Objects == nil {
		return errors.New(`missing "objects"`)
	}
	return nil
}

// validator is implemented by response bodies that check themselves after decoding.
type validator interface {
	validate() error
}

type namePayload struct {
	Name string `json:"name"`
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: BaseURL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL: %w", err)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	obs := cfg.Observer
	if obs == nil {
		obs = LogObserver{Logger: log.With().Str("component", "api").Logger()}
	}
	return &Client{
		baseURL:  base,
		token:    cfg.Token,
		http:     hc,
		observer: obs,
	}, nil
}

// List fetches the whole collection in server order.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &env); err != nil {
		return nil, err
	}
	items := *env.Objects
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create asks the server to create an item named name.
func (c *Client) Create(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, c.collectionURL(), namePayload{Name: name}, nil)
}

// Update renames item id.
func (c *Client) Update(ctx context.Context, id model.ID, name string) error {
	return c.do(ctx, http.MethodPatch, c.itemURL(id), namePayload{Name: name}, nil)
}

// Delete removes item id.
func (c *Client) Delete(ctx context.Context, id model.ID) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) collectionURL() string { return c.baseURL + CollectionPath }

func (c *Client) itemURL(id model.ID) string {
	return c.collectionURL() + "/" + url.PathEscape(id.String())
}

// do performs one round trip. out may be nil, in which case the body is drained.
func (c *Client) do(ctx context.Context, method, u string, in, out any) (err error) {
	defer func() {
		if err != nil {
			c.observer.RequestFailed(method, u, err)
		}
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, u, err)
	}
	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, u, err)
		}
	}
	return nil
}
