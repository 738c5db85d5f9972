package storage

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSStore implements ObjectStore on a Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a GCS-backed object store. Credentials come from the
// environment (service account or workload identity).
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Printf("✅ Object store connected [bucket: %s]", bucket)

	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload writes an object and returns a signed read URL
func (s *GCSStore) Upload(ctx context.Context, data []byte, contentType, path string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", path, err)
	}

	return s.SignedURL(ctx, path)
}

// Delete removes an object
func (s *GCSStore) Delete(ctx context.Context, path string) error {
	return s.client.Bucket(s.bucket).Object(path).Delete(ctx)
}

// SignedURL issues a V4 signed read link valid for SignedURLTTL
func (s *GCSStore) SignedURL(_ context.Context, path string) (string, error) {
	opts := &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(SignedURLTTL),
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", path, err)
	}
	return url, nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
