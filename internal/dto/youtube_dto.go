package dto

import "encoding/json"

// VideoItem mirrors the YouTube search-result shape; browse-mode playlist
// items are normalized into it.
type VideoItem struct {
	ID         VideoID         `json:"id"`
	Snippet    json.RawMessage `json:"snippet"`
	Statistics json.RawMessage `json:"statistics,omitempty"`
}

type VideoID struct {
	VideoID string `json:"videoId"`
}

type VideoListResponse struct {
	Items         []VideoItem `json:"items"`
	NextPageToken string      `json:"nextPageToken"`
}
