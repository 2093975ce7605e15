package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("daily plan not found")

type PlanService struct {
	db     *gorm.DB
	policy *AccessPolicy
}

func NewPlanService(db *gorm.DB, policy *AccessPolicy) *PlanService {
	return &PlanService{db: db, policy: policy}
}

// Create files a plan for today. A user may file any number of plans for the
// same day.
func (s *PlanService) Create(userID uuid.UUID, req *dto.CreatePlanRequest) (*models.DailyPlan, error) {
	villages := make([]string, 0, len(req.Villages))
	for _, v := range req.Villages {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			villages = append(villages, trimmed)
		}
	}
	if len(villages) == 0 {
		return nil, fmt.Errorf("%w: at least one village is required", ErrValidation)
	}

	plan := models.DailyPlan{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     time.Now().UTC().Truncate(24 * time.Hour),
		Villages: datatypes.NewJSONSlice(villages),
		Remarks:  req.Remarks,
	}

	if err := s.db.Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create daily plan: %w", err)
	}
	return &plan, nil
}

// List returns a user's plans, newest date first. Reading another user's
// plans follows the same visibility rule as activities.
func (s *PlanService) List(requester *models.User, targetID uuid.UUID) ([]models.DailyPlan, error) {
	if targetID != requester.ID {
		allowed, err := s.policy.CanViewResourcesOf(requester, targetID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: not authorized to view this user's plans", ErrForbidden)
		}
	}

	var plans []models.DailyPlan
	if err := s.db.Where("user_id = ?", targetID).Order("date DESC").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list daily plans: %w", err)
	}
	return plans, nil
}

// Delete removes a plan. Only the owner may delete it, regardless of role.
func (s *PlanService) Delete(requesterID, planID uuid.UUID) error {
	var plan models.DailyPlan
	if err := s.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	if plan.UserID != requesterID {
		return fmt.Errorf("%w: only the owner may delete a plan", ErrForbidden)
	}

	return s.db.Delete(&plan).Error
}
