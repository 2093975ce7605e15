package services

import (
	"context"
	"testing"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueUploadTarget(t *testing.T) {
	store := newFakeStore()
	svc := NewMediaService(store)
	userID := uuid.New()

	resp, err := svc.IssueUploadTarget(context.Background(), userID, "photo.jpg")
	require.NoError(t, err)
	assert.Contains(t, resp.Key, "uploads/"+userID.String()+"/")
	assert.Contains(t, resp.Key, "photo.jpg")
	assert.Equal(t, "https://store.test/put/"+resp.Key, resp.URL)

	_, err = svc.IssueUploadTarget(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignPhotos(t *testing.T) {
	svc := NewMediaService(newFakeStore())

	signed := svc.SignPhotos(context.Background(), []models.Photo{
		{Key: "uploads/u/1-a.jpg", URL: "stale"},
		{Key: "", URL: "https://elsewhere.example/pic.png"},
	})
	require.Len(t, signed, 2)
	assert.Equal(t, "https://store.test/get/uploads/u/1-a.jpg", signed[0].URL)
	// Keyless photos pass through untouched.
	assert.Equal(t, "https://elsewhere.example/pic.png", signed[1].URL)
}

func TestKeyFromImagePath(t *testing.T) {
	assert.Equal(t, "uploads/u/1-a.jpg", KeyFromImagePath("/api/images/uploads/u/1-a.jpg"))
	assert.Equal(t, "uploads/u/1-a.jpg", KeyFromImagePath("https://api.example.com/api/images/uploads/u/1-a.jpg"))
	assert.Empty(t, KeyFromImagePath("https://cdn.example.com/pic.jpg"))
	assert.Empty(t, KeyFromImagePath(""))
}
