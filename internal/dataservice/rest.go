package dataservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// restTransport reaches the dataset through a PostgREST-style HTTP API.
// Filters use the `column=eq.value` query convention and the API key is
// sent both as a bearer token and an apikey header.
type restTransport struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRESTTransport builds the HTTP API transport.
func NewRESTTransport(baseURL, apiKey string) Transport {
	return &restTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *restTransport) Name() string { return "rest" }

func (t *restTransport) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &NetworkError{Transport: t.Name(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
		req.Header.Set("apikey", t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &NetworkError{Transport: t.Name(), Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &AuthorizationError{Transport: t.Name(), Message: readAPIMessage(resp.Body)}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Message: readAPIMessage(resp.Body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &NetworkError{Transport: t.Name(),
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Transport: t.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func readAPIMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "request rejected"
}

// one fetches a single row via an eq filter; PostgREST returns an array.
func one[T any](ctx context.Context, t *restTransport, table, id string) (*T, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("limit", "1")
	var rows []T
	if err := t.do(ctx, http.MethodGet, "/"+table, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (t *restTransport) GetPianos(ctx context.Context, status content.Status) ([]piano.Piano, error) {
	q := url.Values{}
	if status != "" {
		q.Set("moderation_status", "eq."+string(status))
	}
	var rows []piano.Piano
	if err := t.do(ctx, http.MethodGet, "/pianos", q, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *restTransport) GetPiano(ctx context.Context, id string) (*piano.Piano, error) {
	return one[piano.Piano](ctx, t, "pianos", id)
}

func (t *restTransport) CreatePiano(ctx context.Context, p *piano.Piano) error {
	if err := p.Validate(); err != nil {
		return &ValidationError{Err: err}
	}
	var rows []piano.Piano
	if err := t.do(ctx, http.MethodPost, "/pianos", nil, p, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*p = rows[0]
	}
	return nil
}

func (t *restTransport) GetEvents(ctx context.Context, status content.Status) ([]event.Event, error) {
	q := url.Values{}
	if status != "" {
		q.Set("moderation_status", "eq."+string(status))
	}
	q.Set("order", "date.asc")
	var rows []event.Event
	if err := t.do(ctx, http.MethodGet, "/events", q, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *restTransport) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return one[event.Event](ctx, t, "events", id)
}

func (t *restTransport) CreateEvent(ctx context.Context, ev *event.Event) error {
	if err := ev.Validate(); err != nil {
		return &ValidationError{Err: err}
	}
	var rows []event.Event
	if err := t.do(ctx, http.MethodPost, "/events", nil, ev, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*ev = rows[0]
	}
	return nil
}

func (t *restTransport) GetBlogPosts(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	q := url.Values{}
	if publishedOnly {
		q.Set("published", "eq.true")
	}
	q.Set("order", "created_at.desc")
	var rows []blog.Post
	if err := t.do(ctx, http.MethodGet, "/blog_posts", q, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *restTransport) GetBlogPost(ctx context.Context, id string) (*blog.Post, error) {
	return one[blog.Post](ctx, t, "blog_posts", id)
}

func (t *restTransport) CreateBlogPost(ctx context.Context, p *blog.Post) error {
	if err := p.Validate(); err != nil {
		return &ValidationError{Err: err}
	}
	var rows []blog.Post
	if err := t.do(ctx, http.MethodPost, "/blog_posts", nil, p, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*p = rows[0]
	}
	return nil
}
