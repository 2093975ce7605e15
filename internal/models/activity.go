package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityGeneral ActivityType = "General"
	ActivitySpecial ActivityType = "Special"
)

type ContactType string

const (
	ContactCalling ContactType = "Calling"
	ContactDirect  ContactType = "Direct"
)

// Photo references one stored object. URL is derived at read time from Key;
// signed URLs are never persisted.
type Photo struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Activity is a logged farmer-outreach event. Special activities carry an
// expense estimate, General ones a contact type.
type Activity struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"creatorId"`
	EmpID            string                      `gorm:"size:20;not null" json:"empId"`
	Title            string                      `gorm:"size:255" json:"title,omitempty"`
	FarmerName       string                      `gorm:"size:255;not null" json:"farmerName"`
	FarmerMobile     string                      `gorm:"size:20;not null" json:"farmerMobile"`
	Village          string                      `gorm:"size:255;not null" json:"village"`
	Taluka           string                      `gorm:"size:255;not null" json:"taluka"`
	District         string                      `gorm:"size:255;not null" json:"district"`
	CropOrHybrid     string                      `gorm:"size:255;not null" json:"cropOrHybrid"`
	FarmersInvolved  int                         `gorm:"not null" json:"farmersInvolved"`
	TentativeExpense *float64                    `json:"tentativeExpense,omitempty"`
	Remarks          string                      `gorm:"type:text" json:"remarks,omitempty"`
	ActivityType     ActivityType                `gorm:"size:20;not null" json:"activityType"`
	ContactType      ContactType                 `gorm:"size:20" json:"contactType,omitempty"`
	Photos           datatypes.JSONSlice[Photo]  `json:"photos"`
	IsPublished      bool                        `gorm:"default:false" json:"isPublished"`
	PublishedAt      *time.Time                  `json:"publishedAt,omitempty"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt              `gorm:"index" json:"-"`
}
