package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is one of the four levels of the fixed management chain.
type Role string

const (
	RoleRBM              Role = "RBM"
	RoleAreaManager      Role = "AreaManager"
	RoleTerritoryManager Role = "TerritoryManager"
	RoleMDO              Role = "MDO"
)

// ChildRole returns the only role a holder of r is allowed to create.
func (r Role) ChildRole() (Role, bool) {
	switch r {
	case RoleRBM:
		return RoleAreaManager, true
	case RoleAreaManager:
		return RoleTerritoryManager, true
	case RoleTerritoryManager:
		return RoleMDO, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case RoleRBM, RoleAreaManager, RoleTerritoryManager, RoleMDO:
		return true
	}
	return false
}

// EmpIDPrefix returns the human-readable employee-ID prefix for the role.
func (r Role) EmpIDPrefix() string {
	switch r {
	case RoleRBM:
		return "RBM"
	case RoleAreaManager:
		return "AM"
	case RoleTerritoryManager:
		return "TM"
	case RoleMDO:
		return "MDO"
	}
	return ""
}

// EmpIDPad returns the zero-pad width of the numeric part (RBM001, AM0001).
func (r Role) EmpIDPad() int {
	if r == RoleRBM {
		return 3
	}
	return 4
}

// User is a node in the management forest. ManagerID is nil only for RBMs.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmpID         string     `gorm:"size:20;not null;uniqueIndex" json:"empId"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Role          Role       `gorm:"size:20;not null;index" json:"role"`
	Email         string     `gorm:"size:255" json:"email,omitempty"`
	Mobile        string     `gorm:"size:20" json:"mobile,omitempty"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	ManagerID     *uuid.UUID `gorm:"type:uuid;index" json:"managerId,omitempty"`
	ProfilePicURL string     `gorm:"type:text" json:"profilePicUrl,omitempty"`
	Active        bool       `gorm:"default:true" json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
