package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyPlan is a user's stated village-visit plan for one day. The
// (user_id, date) index is deliberately non-unique: a user may file several
// plans for the same day.
type DailyPlan struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_daily_plans_user_date" json:"userId"`
	Date      time.Time                   `gorm:"not null;index:idx_daily_plans_user_date" json:"date"`
	Villages  datatypes.JSONSlice[string] `json:"villages"`
	Remarks   string                      `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}
