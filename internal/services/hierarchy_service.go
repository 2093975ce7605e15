package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HierarchyService walks the managerId forest: transitive subordinate
// enumeration, cascading deletion, and orphan repair.
type HierarchyService struct {
	db    *gorm.DB
	media *MediaService
}

func NewHierarchyService(db *gorm.DB, media *MediaService) *HierarchyService {
	return &HierarchyService{db: db, media: media}
}

// SubordinateIDs returns the transitive closure of manager_id = userID edges,
// expanded breadth-first. Edges are only ever created top-down, so no cycle
// guard is needed.
func (s *HierarchyService) SubordinateIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var all []uuid.UUID
	frontier := []uuid.UUID{userID}

	for len(frontier) > 0 {
		var reports []models.User
		if err := s.db.Select("id").Where("manager_id IN ?", frontier).Find(&reports).Error; err != nil {
			return nil, fmt.Errorf("failed to expand subordinates: %w", err)
		}

		frontier = frontier[:0]
		for _, r := range reports {
			all = append(all, r.ID)
			frontier = append(frontier, r.ID)
		}
	}

	return all, nil
}

// DeleteUserRecursively removes the user, every transitive subordinate, and
// all activities, plans, and stored objects they own. Children are deleted
// before the parent. Storage cleanup is best-effort; record deletion is
// authoritative. The walk is not transactional by design: a crash mid-walk is
// repaired later by the orphan sweep.
func (s *HierarchyService) DeleteUserRecursively(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		// Already gone; nothing to do.
		return nil
	}

	var reports []models.User
	if err := s.db.Where("manager_id = ?", userID).Find(&reports).Error; err != nil {
		return fmt.Errorf("failed to list direct reports: %w", err)
	}
	for _, report := range reports {
		if err := s.DeleteUserRecursively(ctx, report.ID); err != nil {
			return err
		}
	}

	// Release activity photos before the rows go away. Unscoped so that
	// soft-deleted activities are cleaned up too.
	var activities []models.Activity
	if err := s.db.Unscoped().Where("creator_id = ?", userID).Find(&activities).Error; err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	for _, activity := range activities {
		for _, photo := range activity.Photos {
			s.media.Release(ctx, photo.Key)
		}
	}
	if err := s.db.Unscoped().Where("creator_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	if err := s.db.Where("user_id = ?", userID).Delete(&models.DailyPlan{}).Error; err != nil {
		return fmt.Errorf("failed to delete daily plans: %w", err)
	}

	if key := KeyFromImagePath(user.ProfilePicURL); key != "" {
		s.media.Release(ctx, key)
	}

	s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{})

	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("deleted user and owned records", "emp_id", user.EmpID, "role", user.Role)
	return nil
}

// FindOrphans returns users whose manager pointer references a user that no
// longer exists (a partially completed cascade).
func (s *HierarchyService) FindOrphans() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	ids := make(map[uuid.UUID]struct{}, len(users))
	for _, u := range users {
		ids[u.ID] = struct{}{}
	}

	var orphans []models.User
	for _, u := range users {
		if u.ManagerID == nil {
			continue
		}
		if _, ok := ids[*u.ManagerID]; !ok {
			orphans = append(orphans, u)
		}
	}
	return orphans, nil
}

// CleanupOrphans deletes every orphan and its subtree. Returns how many
// orphan roots were found and deleted.
func (s *HierarchyService) CleanupOrphans(ctx context.Context) (found, deleted int, err error) {
	orphans, err := s.FindOrphans()
	if err != nil {
		return 0, 0, err
	}

	for _, orphan := range orphans {
		slog.Info("deleting orphaned user", "emp_id", orphan.EmpID, "name", orphan.Name)
		if err := s.DeleteUserRecursively(ctx, orphan.ID); err != nil {
			return len(orphans), deleted, err
		}
		deleted++
	}

	return len(orphans), deleted, nil
}
