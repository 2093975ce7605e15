package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Portfolio is an RBM-curated image set visible to every authenticated user.
type Portfolio struct {
	ID        uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                     `gorm:"size:255;not null" json:"name"`
	Images    datatypes.JSONSlice[Photo] `json:"images"`
	CreatorID uuid.UUID                  `gorm:"type:uuid;not null" json:"creatorId"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}
