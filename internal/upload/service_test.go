package upload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

type fakeStore struct {
	puts []s3.PutObjectInput
	err  error
}

func (f *fakeStore) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, *params)
	return &s3.PutObjectOutput{}, nil
}

func newTestService(t *testing.T, store *fakeStore) (*Service, *piano.InMemoryRepository, string) {
	t.Helper()
	repo := piano.NewInMemoryRepository()
	p := &piano.Piano{
		Title:       "Harbour Piano",
		Coordinates: &geo.Point{Lat: 10, Lng: 20},
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		Bucket:        "photos",
		PublicBaseURL: "https://cdn.example.org",
		MaxSizeMB:     10,
	}
	return NewServiceWithStore(store, cfg, repo), repo, p.ID
}

func TestUploadRejectsUnsupportedTypeBeforeStorage(t *testing.T) {
	store := &fakeStore{}
	svc, _, pianoID := newTestService(t, store)

	_, err := svc.UploadPianoImage(context.Background(), pianoID, "text/plain", "", []byte("hello"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
	if len(store.puts) != 0 {
		t.Error("rejected upload still reached storage")
	}
}

func TestUploadRejectsOversizedFileBeforeStorage(t *testing.T) {
	store := &fakeStore{}
	svc, _, pianoID := newTestService(t, store)

	big := make([]byte, 15*1024*1024)
	_, err := svc.UploadPianoImage(context.Background(), pianoID, "image/jpeg", "", big)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", err)
	}
	if len(store.puts) != 0 {
		t.Error("oversized upload still reached storage")
	}
}

func TestUploadStoresUnderPianoPrefixAndRecordsImage(t *testing.T) {
	store := &fakeStore{}
	svc, repo, pianoID := newTestService(t, store)

	img, err := svc.UploadPianoImage(context.Background(), pianoID, "image/jpeg", "the piano", []byte("small payload"))
	if err != nil {
		t.Fatal(err)
	}
	if len(store.puts) != 1 {
		t.Fatalf("stored %d objects, want 1", len(store.puts))
	}
	key := *store.puts[0].Key
	if !strings.HasPrefix(key, "pianos/"+pianoID+"/") {
		t.Errorf("object key %q not under piano prefix", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("object key %q missing extension", key)
	}
	if !strings.HasPrefix(img.ImageURL, "https://cdn.example.org/") {
		t.Errorf("image URL %q missing public base", img.ImageURL)
	}

	got, err := repo.GetByID(context.Background(), pianoID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Images) != 1 || got.Images[0].AltText != "the piano" {
		t.Errorf("piano images = %+v, want the recorded upload", got.Images)
	}
}

func TestUploadRequiresPianoID(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeStore{})
	_, err := svc.UploadPianoImage(context.Background(), "", "image/png", "", []byte("x"))
	if !errors.Is(err, ErrPianoIDRequired) {
		t.Fatalf("got %v, want ErrPianoIDRequired", err)
	}
}
