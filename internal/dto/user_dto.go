package dto

import "github.com/bolokisan/fieldforce-backend/internal/models"

type CreateUserRequest struct {
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Mobile   string      `json:"mobile"`
	Password string      `json:"password"`
}

type CreateUserResponse struct {
	EmpID string `json:"empId"`
}

type BootstrapRequest struct {
	Secret   string `json:"secret"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// UpdateMeRequest is a partial self-update; nil fields are left untouched.
type UpdateMeRequest struct {
	Name          *string `json:"name"`
	Mobile        *string `json:"mobile"`
	Password      *string `json:"password"`
	ProfilePicURL *string `json:"profilePicUrl"`
}

type TeamResponse struct {
	Team []UserResponse `json:"team"`
}

type CleanupOrphansResponse struct {
	Message      string `json:"message"`
	OrphansFound int    `json:"orphansFound"`
	DeletedCount int    `json:"deletedCount"`
}
