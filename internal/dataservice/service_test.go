package dataservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/mockdata"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// fakeTransport returns canned values or a canned error for every call.
type fakeTransport struct {
	name    string
	err     error
	pianos  []piano.Piano
	events  []event.Event
	posts   []blog.Post
	calls   int
	creates int
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) GetPianos(context.Context, content.Status) ([]piano.Piano, error) {
	f.calls++
	return f.pianos, f.err
}

func (f *fakeTransport) GetPiano(context.Context, string) (*piano.Piano, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.pianos) == 0 {
		return nil, ErrNotFound
	}
	return &f.pianos[0], nil
}

func (f *fakeTransport) CreatePiano(context.Context, *piano.Piano) error {
	f.creates++
	return f.err
}

func (f *fakeTransport) GetEvents(context.Context, content.Status) ([]event.Event, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeTransport) GetEvent(context.Context, string) (*event.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.events) == 0 {
		return nil, ErrNotFound
	}
	return &f.events[0], nil
}

func (f *fakeTransport) CreateEvent(context.Context, *event.Event) error {
	f.creates++
	return f.err
}

func (f *fakeTransport) GetBlogPosts(context.Context, bool) ([]blog.Post, error) {
	f.calls++
	return f.posts, f.err
}

func (f *fakeTransport) GetBlogPost(context.Context, string) (*blog.Post, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.posts) == 0 {
		return nil, ErrNotFound
	}
	return &f.posts[0], nil
}

func (f *fakeTransport) CreateBlogPost(context.Context, *blog.Post) error {
	f.creates++
	return f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func netErr(name string) error {
	return &NetworkError{Transport: name, Err: errors.New("connection refused")}
}

func somePianos() []piano.Piano {
	return []piano.Piano{{
		ID:          "p1",
		Title:       "Test Piano",
		Coordinates: &geo.Point{Lat: 1, Lng: 2},
	}}
}

func TestReadUsesFirstHealthyTransport(t *testing.T) {
	primary := &fakeTransport{name: "database", pianos: somePianos()}
	secondary := &fakeTransport{name: "rest"}
	svc := New(quietLogger(), &fakeTransport{name: "mock"}, primary, secondary)

	got, err := svc.GetPianos(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("got %v", got)
	}
	if secondary.calls != 0 {
		t.Error("secondary transport was called despite healthy primary")
	}
}

func TestReadFallsThroughOnNetworkError(t *testing.T) {
	primary := &fakeTransport{name: "database", err: netErr("database")}
	secondary := &fakeTransport{name: "rest", pianos: somePianos()}
	svc := New(quietLogger(), &fakeTransport{name: "mock"}, primary, secondary)

	got, err := svc.GetPianos(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d pianos, want 1 from secondary", len(got))
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestReadFallsBackToMockWhenChainExhausted(t *testing.T) {
	primary := &fakeTransport{name: "database", err: netErr("database")}
	secondary := &fakeTransport{name: "rest", err: netErr("rest")}
	mock := &fakeTransport{name: "mock", pianos: somePianos()}
	svc := New(quietLogger(), mock, primary, secondary)

	got, err := svc.GetPianos(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d pianos, want mock data", len(got))
	}
	if mock.calls != 1 {
		t.Errorf("mock calls = %d, want 1", mock.calls)
	}
}

func TestReadStopsOnAuthorizationError(t *testing.T) {
	primary := &fakeTransport{name: "database",
		err: &AuthorizationError{Transport: "database", Message: "row level security"}}
	secondary := &fakeTransport{name: "rest", pianos: somePianos()}
	svc := New(quietLogger(), &fakeTransport{name: "mock"}, primary, secondary)

	_, err := svc.GetPianos(context.Background(), "")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want AuthorizationError", err)
	}
	if secondary.calls != 0 {
		t.Error("chain advanced past an authorization failure")
	}
}

func TestWritePropagatesErrors(t *testing.T) {
	primary := &fakeTransport{name: "database", err: netErr("database")}
	mock := &fakeTransport{name: "mock"}
	svc := New(quietLogger(), mock, primary)

	p := somePianos()[0]
	err := svc.CreatePiano(context.Background(), &p)
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("got %v, want NetworkError", err)
	}
	if mock.creates != 0 {
		t.Error("failed write was silently redirected to mock store")
	}
}

func TestWriteLandsInMockWithoutTransports(t *testing.T) {
	mock := &fakeTransport{name: "mock"}
	svc := New(quietLogger(), mock)

	if !svc.UsingMock() {
		t.Fatal("UsingMock() = false with no transports")
	}
	p := somePianos()[0]
	if err := svc.CreatePiano(context.Background(), &p); err != nil {
		t.Fatal(err)
	}
	if mock.creates != 1 {
		t.Errorf("mock creates = %d, want 1", mock.creates)
	}
}

func TestMockTransportServesSeededData(t *testing.T) {
	store, err := mockdata.NewStore()
	if err != nil {
		t.Fatal(err)
	}
	mt := NewMockTransport(store)
	mt.(*mockTransport).delay = 0

	svc := New(quietLogger(), mt)
	pianos, err := svc.GetPianos(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pianos) != 3 {
		t.Errorf("got %d pianos, want 3", len(pianos))
	}
}

func TestSearchContentMergesTypes(t *testing.T) {
	store, err := mockdata.NewStore()
	if err != nil {
		t.Fatal(err)
	}
	mt := NewMockTransport(store)
	mt.(*mockTransport).delay = 0
	svc := New(quietLogger(), mt)

	results, err := svc.SearchContent(context.Background(), "piano")
	if err != nil {
		t.Fatal(err)
	}
	types := map[content.Type]bool{}
	for _, r := range results {
		types[r.Type] = true
	}
	if !types[content.TypePiano] {
		t.Error("search returned no pianos")
	}
	if !types[content.TypeEvent] {
		t.Error("search returned no events")
	}
}
