package dto

import (
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
)

type CreateActivityRequest struct {
	Title            string              `json:"title"`
	FarmerName       string              `json:"farmerName"`
	FarmerMobile     string              `json:"farmerMobile"`
	Village          string              `json:"village"`
	Taluka           string              `json:"taluka"`
	District         string              `json:"district"`
	CropOrHybrid     string              `json:"cropOrHybrid"`
	FarmersInvolved  int                 `json:"farmersInvolved"`
	TentativeExpense *float64            `json:"tentativeExpense"`
	Remarks          string              `json:"remarks"`
	ActivityType     models.ActivityType `json:"activityType"`
	ContactType      models.ContactType  `json:"contactType"`
	Photos           []models.Photo      `json:"photos"`
}

// UpdateActivityRequest is an RBM-only patch. Photos, when present, replace
// the stored list wholesale.
type UpdateActivityRequest struct {
	Title            *string              `json:"title"`
	FarmerName       *string              `json:"farmerName"`
	FarmerMobile     *string              `json:"farmerMobile"`
	Village          *string              `json:"village"`
	Taluka           *string              `json:"taluka"`
	District         *string              `json:"district"`
	CropOrHybrid     *string              `json:"cropOrHybrid"`
	FarmersInvolved  *int                 `json:"farmersInvolved"`
	TentativeExpense *float64             `json:"tentativeExpense"`
	Remarks          *string              `json:"remarks"`
	ActivityType     *models.ActivityType `json:"activityType"`
	ContactType      *models.ContactType  `json:"contactType"`
	Photos           []models.Photo       `json:"photos"`
}

// ActivityResponse is an activity with its creator summary populated and,
// depending on the requester, the expense redacted.
type ActivityResponse struct {
	ID               uuid.UUID           `json:"id"`
	CreatorID        uuid.UUID           `json:"creatorId"`
	CreatorName      string              `json:"creatorName,omitempty"`
	EmpID            string              `json:"empId"`
	Title            string              `json:"title,omitempty"`
	FarmerName       string              `json:"farmerName"`
	FarmerMobile     string              `json:"farmerMobile"`
	Village          string              `json:"village"`
	Taluka           string              `json:"taluka"`
	District         string              `json:"district"`
	CropOrHybrid     string              `json:"cropOrHybrid"`
	FarmersInvolved  int                 `json:"farmersInvolved"`
	TentativeExpense *float64            `json:"tentativeExpense,omitempty"`
	Remarks          string              `json:"remarks,omitempty"`
	ActivityType     models.ActivityType `json:"activityType"`
	ContactType      models.ContactType  `json:"contactType,omitempty"`
	Photos           []models.Photo      `json:"photos"`
	IsPublished      bool                `json:"isPublished"`
	PublishedAt      *time.Time          `json:"publishedAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}
