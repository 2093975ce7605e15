package dto

import (
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
)

type CreatePortfolioRequest struct {
	Name   string         `json:"name"`
	Images []models.Photo `json:"images"`
}

// UpdatePortfolioRequest replaces the image list; images removed from the set
// are released from storage.
type UpdatePortfolioRequest struct {
	Name   string         `json:"name"`
	Images []models.Photo `json:"images"`
}

type PortfolioResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Images      []models.Photo `json:"images"`
	CreatorID   uuid.UUID      `json:"creatorId"`
	CreatorName string         `json:"creatorName,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ListPortfoliosResponse struct {
	Portfolios []PortfolioResponse `json:"portfolios"`
}
