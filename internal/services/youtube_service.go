package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/cache"
	"github.com/bolokisan/fieldforce-backend/internal/config"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
)

var ErrYouTubeNotConfigured = errors.New("YouTube API key not configured")

// YouTubeService is an authenticated pass-through to the YouTube Data API.
// Browse mode (no query) reads the channel's uploads playlist, which costs 1
// quota unit; search mode costs 100. Responses are cached in Redis to keep
// the daily quota alive.
type YouTubeService struct {
	apiKey    string
	channelID string
	baseURL   string
	client    *http.Client
	cache     *cache.Client
	cacheTTL  time.Duration
}

func NewYouTubeService(cfg *config.Config, cacheClient *cache.Client) *YouTubeService {
	return &YouTubeService{
		apiKey:    cfg.YouTubeAPIKey,
		channelID: cfg.YouTubeChannelID,
		baseURL:   "https://www.googleapis.com/youtube/v3",
		client:    &http.Client{Timeout: 15 * time.Second},
		cache:     cacheClient,
		cacheTTL:  cfg.YouTubeCacheTTL,
	}
}

func (s *YouTubeService) Videos(ctx context.Context, query, pageToken string) (*dto.VideoListResponse, error) {
	if s.apiKey == "" {
		return nil, ErrYouTubeNotConfigured
	}

	cacheKey := "youtube:" + query + ":" + pageToken
	var cached dto.VideoListResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		slog.Error("youtube cache read failed", "error", err)
	} else if hit {
		return &cached, nil
	}

	var (
		resp *dto.VideoListResponse
		err  error
	)
	if query != "" {
		resp, err = s.search(ctx, query, pageToken)
	} else {
		resp, err = s.browse(ctx, pageToken)
	}
	if err != nil {
		return nil, err
	}

	if err := s.mergeStatistics(ctx, resp.Items); err != nil {
		slog.Error("failed to merge video statistics", "error", err)
	}

	if err := s.cache.SetJSON(ctx, cacheKey, resp, s.cacheTTL); err != nil {
		slog.Error("youtube cache write failed", "error", err)
	}

	return resp, nil
}

func (s *YouTubeService) search(ctx context.Context, query, pageToken string) (*dto.VideoListResponse, error) {
	params := url.Values{
		"part":       {"snippet"},
		"channelId":  {s.channelID},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {"50"},
		"key":        {s.apiKey},
		"pageToken":  {pageToken},
	}

	var data struct {
		Items []struct {
			ID      dto.VideoID     `json:"id"`
			Snippet json.RawMessage `json:"snippet"`
		} `json:"items"`
		NextPageToken string `json:"nextPageToken"`
	}
	if err := s.getJSON(ctx, s.baseURL+"/search?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	items := make([]dto.VideoItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, dto.VideoItem{ID: item.ID, Snippet: item.Snippet})
	}
	return &dto.VideoListResponse{Items: items, NextPageToken: data.NextPageToken}, nil
}

func (s *YouTubeService) browse(ctx context.Context, pageToken string) (*dto.VideoListResponse, error) {
	playlistID, err := s.uploadsPlaylistID(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"part":       {"snippet"},
		"playlistId": {playlistID},
		"maxResults": {"50"},
		"key":        {s.apiKey},
		"pageToken":  {pageToken},
	}

	var data struct {
		Items []struct {
			Snippet json.RawMessage `json:"snippet"`
		} `json:"items"`
		NextPageToken string `json:"nextPageToken"`
	}
	if err := s.getJSON(ctx, s.baseURL+"/playlistItems?"+params.Encode(), &data); err != nil {
		return nil, err
	}

	// Playlist items keep the video ID inside snippet.resourceId; normalize
	// to the search-result shape.
	items := make([]dto.VideoItem, 0, len(data.Items))
	for _, item := range data.Items {
		var snippet struct {
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		}
		if err := json.Unmarshal(item.Snippet, &snippet); err != nil {
			continue
		}
		items = append(items, dto.VideoItem{
			ID:      dto.VideoID{VideoID: snippet.ResourceID.VideoID},
			Snippet: item.Snippet,
		})
	}
	return &dto.VideoListResponse{Items: items, NextPageToken: data.NextPageToken}, nil
}

// uploadsPlaylistID derives the uploads playlist from the channel ID
// (UCxxxx -> UUxxxx), falling back to a channels lookup.
func (s *YouTubeService) uploadsPlaylistID(ctx context.Context) (string, error) {
	if strings.HasPrefix(s.channelID, "UC") {
		return "UU" + s.channelID[2:], nil
	}

	params := url.Values{
		"part": {"contentDetails"},
		"id":   {s.channelID},
		"key":  {s.apiKey},
	}
	var data struct {
		Items []struct {
			ContentDetails struct {
				RelatedPlaylists struct {
					Uploads string `json:"uploads"`
				} `json:"relatedPlaylists"`
			} `json:"contentDetails"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, s.baseURL+"/channels?"+params.Encode(), &data); err != nil {
		return "", err
	}
	if len(data.Items) == 0 || data.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", errors.New("could not find uploads playlist")
	}
	return data.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (s *YouTubeService) mergeStatistics(ctx context.Context, items []dto.VideoItem) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	params := url.Values{
		"part": {"statistics"},
		"id":   {strings.Join(ids, ",")},
		"key":  {s.apiKey},
	}
	var data struct {
		Items []struct {
			ID         string          `json:"id"`
			Statistics json.RawMessage `json:"statistics"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, s.baseURL+"/videos?"+params.Encode(), &data); err != nil {
		return err
	}

	stats := make(map[string]json.RawMessage, len(data.Items))
	for _, item := range data.Items {
		stats[item.ID] = item.Statistics
	}
	for i := range items {
		items[i].Statistics = stats[items[i].ID.VideoID]
	}
	return nil
}

func (s *YouTubeService) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("youtube API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("youtube API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
