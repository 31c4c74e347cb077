// Package client is the presentation-side controller for the notes
// API. It keeps the last collection it fetched and refetches the full
// list after every successful mutation instead of patching its local
// copy, so the displayed state is always "last read from store". On a
// failed operation the local copy stays untouched.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/gaabane252/Notes-app/internal/notes"
)

// APIError is a non-2xx response decoded from the server's
// {"error": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	notes []notes.Note
}

// New builds a client for the API at baseURL. A nil hc falls back to
// http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: hc}
}

// Refresh fetches the full list from the server and replaces the
// local copy.
func (c *Client) Refresh(ctx context.Context) ([]notes.Note, error) {
	var all []notes.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &all); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.notes = all
	c.mu.Unlock()
	return c.Notes(), nil
}

// Notes returns a copy of the last-fetched collection in the order
// the server reported it (insertion order).
func (c *Client) Notes() []notes.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]notes.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// NotesByUpdated returns the last-fetched collection sorted by
// UpdatedAt descending. Display ordering only; the stored order is
// unaffected.
func (c *Client) NotesByUpdated() []notes.Note {
	out := c.Notes()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Create posts a new note and refreshes the local copy on success.
func (c *Client) Create(ctx context.Context, title, content string) (notes.Note, error) {
	var n notes.Note
	body := notes.CreateNoteRequest{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/notes", body, &n); err != nil {
		return notes.Note{}, err
	}
	if _, err := c.Refresh(ctx); err != nil {
		return notes.Note{}, err
	}
	return n, nil
}

// Update replaces a note's title and content and refreshes the local
// copy on success.
func (c *Client) Update(ctx context.Context, id, title, content string) (notes.Note, error) {
	var n notes.Note
	body := notes.UpdateNoteRequest{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), body, &n); err != nil {
		return notes.Note{}, err
	}
	if _, err := c.Refresh(ctx); err != nil {
		return notes.Note{}, err
	}
	return n, nil
}

// Delete removes a note, returning the removed record, and refreshes
// the local copy on success.
func (c *Client) Delete(ctx context.Context, id string) (notes.Note, error) {
	var resp struct {
		Success bool       `json:"success"`
		Removed notes.Note `json:"removed"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, &resp); err != nil {
		return notes.Note{}, err
	}
	if _, err := c.Refresh(ctx); err != nil {
		return notes.Note{}, err
	}
	return resp.Removed, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
