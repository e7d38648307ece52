package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Object prefixes accepted for uploads.
const (
	EntityPatients    = "patients"
	EntityRecipes     = "recipes"
	EntityInspections = "inspections"
)

// Storage is the object-store surface the service needs; *s3.Client satisfies it.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDownload(ctx context.Context, key string) (string, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UploadResult struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Enabled() bool
	// Upload stores f under {entity}/{uuid}{ext} and returns a presigned URL.
	Upload(ctx context.Context, entity string, f *multipart.FileHeader) (*UploadResult, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type fileService struct {
	store Storage
}

// New accepts a nil store; every call then fails with ErrStorageDisabled.
func New(store Storage) Service {
	return &fileService{store: store}
}

func (s *fileService) Enabled() bool {
	return s.store != nil
}

func (s *fileService) Upload(ctx context.Context, entity string, fh *multipart.FileHeader) (*UploadResult, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	switch entity {
	case EntityPatients, EntityRecipes, EntityInspections:
	default:
		return nil, ErrInvalidEntity
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	key := fmt.Sprintf("%s/%s%s", entity, uuid.New(), ext)

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	if err := s.store.Upload(ctx, key, mime, src, fh.Size); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	url, err := s.store.PresignDownload(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}

	return &UploadResult{
		Key:      key,
		URL:      url,
		FileName: fh.Filename,
		Size:     fh.Size,
		MimeType: mime,
	}, nil
}

func (s *fileService) DownloadURL(ctx context.Context, key string) (string, error) {
	if s.store == nil {
		return "", ErrStorageDisabled
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", ErrKeyRequired
	}
	url, err := s.store.PresignDownload(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}
