package dto

import "github.com/bolokisan/fieldforce-backend/internal/models"

type CreatePlanRequest struct {
	Villages []string `json:"villages"`
	Remarks  string   `json:"remarks"`
}

type PlanResponse struct {
	Plan *models.DailyPlan `json:"plan"`
}

type ListPlansResponse struct {
	Plans []models.DailyPlan `json:"plans"`
}
