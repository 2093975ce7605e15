package services

import (
	"errors"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessPolicy centralizes the read-visibility rules. It is consulted on
// every request and never caches: the hierarchy can change between requests.
type AccessPolicy struct {
	db        *gorm.DB
	hierarchy *HierarchyService
}

func NewAccessPolicy(db *gorm.DB, hierarchy *HierarchyService) *AccessPolicy {
	return &AccessPolicy{db: db, hierarchy: hierarchy}
}

// CanViewResourcesOf reports whether the requester may read targetID's
// activities and plans: self, any RBM, or the target's direct manager.
func (p *AccessPolicy) CanViewResourcesOf(requester *models.User, targetID uuid.UUID) (bool, error) {
	if requester.ID == targetID {
		return true, nil
	}
	if requester.Role == models.RoleRBM {
		return true, nil
	}

	var target models.User
	if err := p.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return target.ManagerID != nil && *target.ManagerID == requester.ID, nil
}

// CanSeeExpense reports whether the requester may see an activity's
// tentative expense: only RBMs and the activity's creator.
func (p *AccessPolicy) CanSeeExpense(requester *models.User, creatorID uuid.UUID) bool {
	return requester.Role == models.RoleRBM || requester.ID == creatorID
}

// TeamIDs returns the requester plus every transitive subordinate, the
// creator set behind scope=team reads.
func (p *AccessPolicy) TeamIDs(requester *models.User) ([]uuid.UUID, error) {
	ids, err := p.hierarchy.SubordinateIDs(requester.ID)
	if err != nil {
		return nil, err
	}
	return append(ids, requester.ID), nil
}
