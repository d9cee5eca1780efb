// Package upload stores piano photos in S3-compatible object storage.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/image"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// Validation errors. Both are checked before any bytes leave the process.
var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrFileTooLarge    = errors.New("file size exceeds maximum allowed")
	ErrPianoIDRequired = errors.New("piano id is required")
)

// allowedMIMETypes maps accepted image types to their file extensions.
var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// compressThreshold is the size above which photos are re-encoded before
// storage.
const compressThreshold = 2 * 1024 * 1024

// ObjectStore is the subset of the S3 API the service uses.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ErrStorageNotConfigured is returned for every upload when the deployment
// has no object storage credentials.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// UnconfiguredStore rejects every put. It keeps the upload endpoint wired
// in mock deployments without panicking on a nil store.
type UnconfiguredStore struct{}

func (UnconfiguredStore) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, ErrStorageNotConfigured
}

// Config holds object storage settings.
type Config struct {
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	MaxSizeMB       int
}

// Service validates, compresses, and stores piano photos, then records them
// on the piano.
type Service struct {
	store    ObjectStore
	pianos   piano.Repository
	bucket   string
	baseURL  string
	maxBytes int64
}

// NewService builds the upload service against real S3-compatible storage.
func NewService(cfg Config, pianos piano.Repository) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("storage endpoint is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}

	client := s3.New(s3.Options{
		Region: "auto",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
	})
	return NewServiceWithStore(client, cfg, pianos), nil
}

// NewServiceWithStore accepts any ObjectStore, which tests use to stub the
// network.
func NewServiceWithStore(store ObjectStore, cfg Config, pianos piano.Repository) *Service {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	return &Service{
		store:    store,
		pianos:   pianos,
		bucket:   cfg.Bucket,
		baseURL:  cfg.PublicBaseURL,
		maxBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
	}
}

// Validate checks type and size limits without touching the payload.
func (s *Service) Validate(contentType string, sizeBytes int64) error {
	if _, ok := allowedMIMETypes[contentType]; !ok {
		return ErrUnsupportedType
	}
	if sizeBytes <= 0 || sizeBytes > s.maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// UploadPianoImage stores one photo under pianos/{id}/ and appends it to the
// piano's image collection. Validation happens before compression and before
// any network call.
func (s *Service) UploadPianoImage(ctx context.Context, pianoID, contentType, altText string, data []byte) (*piano.Image, error) {
	if pianoID == "" {
		return nil, ErrPianoIDRequired
	}
	if err := s.Validate(contentType, int64(len(data))); err != nil {
		return nil, err
	}
	if sniffed := image.MIMEType(data); sniffed != "" && sniffed != contentType {
		return nil, ErrUnsupportedType
	}

	if int64(len(data)) > compressThreshold {
		compressed, err := image.Compress(data, image.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("compress image: %w", err)
		}
		data = compressed
	}

	key := fmt.Sprintf("pianos/%s/%s%s", pianoID, uuid.NewString(), allowedMIMETypes[contentType])
	_, err := s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &piano.Image{
		ID:        uuid.NewString(),
		PianoID:   pianoID,
		ImageURL:  s.publicURL(key),
		AltText:   altText,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pianos.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

func (s *Service) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return key
}
