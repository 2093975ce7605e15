package dto

import (
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	EmpID    string `json:"empId"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uuid.UUID    `json:"id"`
	EmpID         string       `json:"empId"`
	Name          string       `json:"name"`
	Role          models.Role  `json:"role"`
	Mobile        string       `json:"mobile,omitempty"`
	ManagerID     *uuid.UUID   `json:"managerId,omitempty"`
	ProfilePicURL string       `json:"profilePicUrl,omitempty"`
	Active        bool         `json:"active"`
	Manager       *ManagerInfo `json:"manager,omitempty"`
}

// ManagerInfo is the populated manager summary returned by GET /users/me.
type ManagerInfo struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmpID:         u.EmpID,
		Name:          u.Name,
		Role:          u.Role,
		Mobile:        u.Mobile,
		ManagerID:     u.ManagerID,
		ProfilePicURL: u.ProfilePicURL,
		Active:        u.Active,
	}
}
