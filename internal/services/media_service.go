package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/bolokisan/fieldforce-backend/internal/storage"
	"github.com/google/uuid"
)

// MediaService owns the association between entities and stored objects:
// upload-target issuance, read-time URL signing, and best-effort release of
// objects that no record references anymore.
type MediaService struct {
	store storage.ObjectStore
}

func NewMediaService(store storage.ObjectStore) *MediaService {
	return &MediaService{store: store}
}

// IssueUploadTarget returns a signed PUT URL and the key the client must
// attach to the entity after uploading. Keys are namespaced by uploader.
func (s *MediaService) IssueUploadTarget(ctx context.Context, userID uuid.UUID, filename string) (*dto.PresignResponse, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrValidation)
	}

	key := fmt.Sprintf("uploads/%s/%d-%s", userID, time.Now().UnixMilli(), filename)
	url, err := s.store.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to issue upload target: %w", err)
	}

	return &dto.PresignResponse{URL: url, Key: key}, nil
}

// SignPhotos swaps each photo's persisted URL for a fresh time-limited read
// URL. Signing failures keep the stored URL rather than dropping the photo.
func (s *MediaService) SignPhotos(ctx context.Context, photos []models.Photo) []models.Photo {
	signed := make([]models.Photo, 0, len(photos))
	for _, photo := range photos {
		if photo.Key != "" {
			url, err := s.store.PresignGet(ctx, photo.Key)
			if err != nil {
				slog.Error("failed to sign read URL", "key", photo.Key, "error", err)
			} else {
				photo.URL = url
			}
		}
		signed = append(signed, photo)
	}
	return signed
}

// Open streams one stored object (authenticated image proxy).
func (s *MediaService) Open(ctx context.Context, key string) (*storage.Object, error) {
	return s.store.Get(ctx, key)
}

// Release deletes one object, best-effort: failures are logged and swallowed
// because record deletion stays authoritative.
func (s *MediaService) Release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		slog.Error("failed to delete stored object", "key", key, "error", err)
		return
	}
	slog.Info("deleted stored object", "key", key)
}

// ReleaseAll batch-deletes objects, best-effort.
func (s *MediaService) ReleaseAll(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.store.DeleteAll(ctx, keys); err != nil {
		slog.Error("failed to delete stored objects", "count", len(keys), "error", err)
	}
}

// KeyFromImagePath extracts the storage key from an internal image-proxy URL
// such as "/api/images/uploads/<id>/123-pic.jpg". Returns "" for external or
// empty URLs.
func KeyFromImagePath(url string) string {
	const marker = "/api/images/"
	if idx := strings.Index(url, marker); idx >= 0 {
		return url[idx+len(marker):]
	}
	return ""
}
