package dto

type TeamStatsResponse struct {
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}
