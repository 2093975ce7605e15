package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")

// PortfolioService manages the RBM-curated image sets. Mutation is RBM-only
// (gated at the route); reads are open to all authenticated users.
type PortfolioService struct {
	db    *gorm.DB
	media *MediaService
}

func NewPortfolioService(db *gorm.DB, media *MediaService) *PortfolioService {
	return &PortfolioService{db: db, media: media}
}

func (s *PortfolioService) List(ctx context.Context) ([]dto.PortfolioResponse, error) {
	var portfolios []models.Portfolio
	if err := s.db.Order("created_at DESC").Find(&portfolios).Error; err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	names := make(map[uuid.UUID]string)
	for i := range portfolios {
		if _, ok := names[portfolios[i].CreatorID]; !ok {
			var creator models.User
			if err := s.db.Select("id", "name").First(&creator, "id = ?", portfolios[i].CreatorID).Error; err == nil {
				names[creator.ID] = creator.Name
			}
		}
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for i := range portfolios {
		p := &portfolios[i]
		responses = append(responses, dto.PortfolioResponse{
			ID:          p.ID,
			Name:        p.Name,
			Images:      s.media.SignPhotos(ctx, p.Images),
			CreatorID:   p.CreatorID,
			CreatorName: names[p.CreatorID],
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return responses, nil
}

func (s *PortfolioService) Create(creatorID uuid.UUID, req *dto.CreatePortfolioRequest) (*models.Portfolio, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: portfolio name is required", ErrValidation)
	}

	portfolio := models.Portfolio{
		ID:        uuid.New(),
		Name:      req.Name,
		Images:    datatypes.NewJSONSlice(req.Images),
		CreatorID: creatorID,
	}

	if err := s.db.Create(&portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return &portfolio, nil
}

// Update replaces the name and image list. Images dropped from the set are
// released from storage, best-effort.
func (s *PortfolioService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePortfolioRequest) (*models.Portfolio, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: portfolio name is required", ErrValidation)
	}

	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}

	kept := make(map[string]struct{}, len(req.Images))
	for _, img := range req.Images {
		kept[img.Key] = struct{}{}
	}
	var removed []string
	for _, img := range portfolio.Images {
		if _, ok := kept[img.Key]; !ok && img.Key != "" {
			removed = append(removed, img.Key)
		}
	}
	s.media.ReleaseAll(ctx, removed)

	portfolio.Name = req.Name
	portfolio.Images = datatypes.NewJSONSlice(req.Images)

	if err := s.db.Save(&portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	return &portfolio, nil
}

func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		return err
	}

	keys := make([]string, 0, len(portfolio.Images))
	for _, img := range portfolio.Images {
		if img.Key != "" {
			keys = append(keys, img.Key)
		}
	}
	s.media.ReleaseAll(ctx, keys)

	return s.db.Delete(&portfolio).Error
}
