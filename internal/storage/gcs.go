// Package storage provides the object store backing dream image uploads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrObjectNotFound is returned when a delete targets a missing object.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStore is the narrow contract the image service needs from a
// blob backend. The production implementation is GCS; tests use a fake.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	BucketExists(ctx context.Context) (bool, error)
	PublicURL(key string) string
	KeyFromURL(publicURL string) (string, error)
}

// GCSStore stores objects in a single Google Cloud Storage bucket with
// public-read objects.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a storage client once at server startup. With an
// empty credentialsFile the client falls back to application default
// credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Put writes an object under key with the given content type.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage finalize: %w", err)
	}
	return nil
}

// Delete removes the object under key.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	return err
}

// BucketExists probes the bucket's metadata.
func (s *GCSStore) BucketExists(ctx context.Context) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Attrs(ctx)
	if errors.Is(err, gcs.ErrBucketNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PublicURL returns the publicly dereferenceable URL for an object.
func (s *GCSStore) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

// KeyFromURL parses an object key back out of a public URL produced by
// PublicURL.
func (s *GCSStore) KeyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("storage: malformed URL %q: %w", publicURL, err)
	}
	prefix := "/" + s.bucket + "/"
	idx := strings.Index(u.Path, prefix)
	if idx < 0 {
		return "", fmt.Errorf("storage: URL %q does not reference bucket %q", publicURL, s.bucket)
	}
	key := u.Path[idx+len(prefix):]
	if key == "" {
		return "", fmt.Errorf("storage: URL %q has no object key", publicURL)
	}
	return key, nil
}
