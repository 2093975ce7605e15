package services

import (
	"fmt"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db        *gorm.DB
	hierarchy *HierarchyService
}

func NewAnalyticsService(db *gorm.DB, hierarchy *HierarchyService) *AnalyticsService {
	return &AnalyticsService{db: db, hierarchy: hierarchy}
}

// TeamStats counts the activities of a manager and every descendant, broken
// down by the creator's role.
func (s *AnalyticsService) TeamStats(managerID uuid.UUID) (*dto.TeamStatsResponse, error) {
	var manager models.User
	if err := s.db.First(&manager, "id = ?", managerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	subordinateIDs, err := s.hierarchy.SubordinateIDs(managerID)
	if err != nil {
		return nil, err
	}
	teamIDs := append(subordinateIDs, managerID)

	var team []models.User
	if err := s.db.Select("id", "role").Where("id IN ?", teamIDs).Find(&team).Error; err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	roleByID := make(map[uuid.UUID]models.Role, len(team))
	for _, member := range team {
		roleByID[member.ID] = member.Role
	}

	var activities []models.Activity
	if err := s.db.Select("id", "creator_id").Where("creator_id IN ?", teamIDs).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to load team activities: %w", err)
	}

	breakdown := map[string]int{
		string(models.RoleRBM):              0,
		string(models.RoleAreaManager):      0,
		string(models.RoleTerritoryManager): 0,
		string(models.RoleMDO):              0,
	}
	total := 0
	for _, activity := range activities {
		role, ok := roleByID[activity.CreatorID]
		if !ok {
			continue
		}
		breakdown[string(role)]++
		total++
	}

	return &dto.TeamStatsResponse{Total: total, Breakdown: breakdown}, nil
}
