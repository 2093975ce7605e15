package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYouTubeFixture(t *testing.T, handler http.Handler) *YouTubeService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewYouTubeService(&config.Config{
		YouTubeAPIKey:    "test-key",
		YouTubeChannelID: "UCabcdef",
		YouTubeCacheTTL:  time.Minute,
	}, nil)
	svc.baseURL = server.URL
	return svc
}

func TestYouTubeVideos_NotConfigured(t *testing.T) {
	svc := NewYouTubeService(&config.Config{}, nil)
	_, err := svc.Videos(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrYouTubeNotConfigured)
}

func TestYouTubeVideos_Browse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		// Browse mode derives the uploads playlist from the UC channel ID.
		assert.Equal(t, "UUabcdef", r.URL.Query().Get("playlistId"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"snippet": map[string]interface{}{
					"title":      "Sowing demo",
					"resourceId": map[string]string{"videoId": "vid-1"},
				}},
			},
			"nextPageToken": "page2",
		})
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vid-1", r.URL.Query().Get("id"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": "vid-1", "statistics": map[string]string{"viewCount": "42"}},
			},
		})
	})

	svc := newYouTubeFixture(t, mux)
	resp, err := svc.Videos(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "vid-1", resp.Items[0].ID.VideoID)
	assert.Equal(t, "page2", resp.NextPageToken)
	assert.Contains(t, string(resp.Items[0].Statistics), "42")
}

func TestYouTubeVideos_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cotton", r.URL.Query().Get("q"))
		assert.Equal(t, "UCabcdef", r.URL.Query().Get("channelId"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id":      map[string]string{"videoId": "vid-9"},
					"snippet": map[string]string{"title": "Cotton spraying"},
				},
			},
		})
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	})

	svc := newYouTubeFixture(t, mux)
	resp, err := svc.Videos(context.Background(), "cotton", "")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "vid-9", resp.Items[0].ID.VideoID)
}

func TestYouTubeVideos_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "quotaExceeded"},
		})
	})

	svc := newYouTubeFixture(t, mux)
	_, err := svc.Videos(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quotaExceeded")
}
