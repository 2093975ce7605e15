package dto

type PresignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type PresignResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
