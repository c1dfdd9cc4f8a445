package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	apperrors "dreamfund/internal/errors"
	"dreamfund/internal/logger"
	"dreamfund/internal/storage"
	"dreamfund/internal/uuid"
)

// imageService validates dream images and stores them in the object
// store under an owner-namespaced key.
type imageService struct {
	store    storage.ObjectStore
	maxBytes int64
}

// NewImageService creates a new ImageServicer backed by the given store.
func NewImageService(store storage.ObjectStore, maxBytes int64) ImageServicer {
	return &imageService{store: store, maxBytes: maxBytes}
}

// Upload validates the file and writes it to the object store. Type and
// size are rejected before any network call. There is no internal retry;
// a transient storage failure surfaces as STORAGE_UNAVAILABLE and the
// caller decides whether to try again.
func (s *imageService) Upload(ctx context.Context, userID uint, r io.Reader, contentType string, size int64, originalName string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.ErrNotAnImage
	}
	if size > s.maxBytes {
		return "", apperrors.ErrImageTooLarge
	}

	key := objectKey(userID, originalName)
	if err := s.store.Put(ctx, key, contentType, r); err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return s.store.PublicURL(key), nil
}

// Delete removes a superseded image. Failures are logged and swallowed,
// including URLs that do not resolve to a key.
func (s *imageService) Delete(ctx context.Context, publicURL string) {
	if publicURL == "" {
		return
	}

	key, err := s.store.KeyFromURL(publicURL)
	if err != nil {
		logger.Get().Warnw("skipping stale image delete", "url", publicURL, "error", err)
		return
	}

	if err := s.store.Delete(ctx, key); err != nil && err != storage.ErrObjectNotFound {
		logger.Get().Warnw("failed to delete stale image", "key", key, "error", err)
	}
}

// BucketExists reports whether the backing bucket is reachable.
func (s *imageService) BucketExists(ctx context.Context) (bool, error) {
	return s.store.BucketExists(ctx)
}

// objectKey builds a collision-resistant, owner-namespaced object key.
// The UUIDv7 embeds a millisecond timestamp, so keys sort by upload time
// within a user's prefix.
func objectKey(userID uint, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d/%s%s", userID, uuid.New(), ext)
}
