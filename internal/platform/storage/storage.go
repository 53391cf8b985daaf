package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// ErrEmptyFile indicates an upload with no readable content.
var ErrEmptyFile = errors.New("empty file")

// Storage persists uploaded image bytes and returns a stable media path.
// Returned paths are relative (e.g. "media/gallery/1a2b.png") and are
// resolved to full locators by the presentation layer.
type Storage interface {
	Save(ctx context.Context, dir, filename, contentType string, data io.Reader) (string, error)
}

// GCSStorage implements Storage on a Google Cloud Storage bucket.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a bucket-backed store.
func NewGCSStorage(client *gcs.Client, bucket string) *GCSStorage {
	return &GCSStorage{client: client, bucket: bucket}
}

// Save streams data into the bucket under dir with a generated object name.
// The original filename only contributes its extension; letting clients pick
// object names would allow overwriting other users' media.
func (s *GCSStorage) Save(ctx context.Context, dir, filename, contentType string, data io.Reader) (string, error) {
	object := MediaPath(dir, filename)
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	n, err := io.Copy(w, data)
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if n == 0 {
		_ = w.Close()
		return "", ErrEmptyFile
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", object, err)
	}
	return object, nil
}

// MediaPath builds a media object path from a directory and the uploaded
// filename's extension.
func MediaPath(dir, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("media", dir, uuid.NewString()+ext)
}

// Compile-time interface check
var _ Storage = (*GCSStorage)(nil)
