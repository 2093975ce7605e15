package services

import (
	"errors"
	"fmt"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRoleNotAllowed = errors.New("not authorized to create this role")
	ErrRBMExists      = errors.New("RBM already exists")
	ErrBadSecret      = errors.New("invalid bootstrap secret")
)

type UserService struct {
	db       *gorm.DB
	counters *CounterService
}

func NewUserService(db *gorm.DB, counters *CounterService) *UserService {
	return &UserService{db: db, counters: counters}
}

// CreateSubordinate creates a user exactly one level below the creator in the
// RBM -> AreaManager -> TerritoryManager -> MDO chain.
func (s *UserService) CreateSubordinate(creatorID uuid.UUID, req *dto.CreateUserRequest) (*models.User, error) {
	creator, err := s.Get(creatorID)
	if err != nil {
		return nil, err
	}

	child, ok := creator.Role.ChildRole()
	if !ok || child != req.Role {
		return nil, fmt.Errorf("%w: a %s cannot create a %s", ErrRoleNotAllowed, creator.Role, req.Role)
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	empID, err := s.counters.NextEmpID(req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		EmpID:        empID,
		Name:         req.Name,
		Role:         req.Role,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		ManagerID:    &creator.ID,
		Active:       true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// BootstrapRBM creates the very first RBM. It is usable exactly once: it
// fails when the secret mismatches or any RBM already exists, and it seeds
// the role counters as a side effect.
func (s *UserService) BootstrapRBM(configuredSecret string, req *dto.BootstrapRequest) (*models.User, error) {
	if configuredSecret == "" || req.Secret != configuredSecret {
		return nil, ErrBadSecret
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleRBM).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for existing RBM: %w", err)
	}
	if count > 0 {
		return nil, ErrRBMExists
	}

	if req.Name == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name and password are required", ErrValidation)
	}

	if err := s.counters.EnsureCounters(); err != nil {
		return nil, fmt.Errorf("failed to seed counters: %w", err)
	}

	empID, err := s.counters.NextEmpID(models.RoleRBM)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rbm := models.User{
		ID:           uuid.New(),
		EmpID:        empID,
		Name:         req.Name,
		Role:         models.RoleRBM,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		Active:       true,
	}

	if err := s.db.Create(&rbm).Error; err != nil {
		return nil, fmt.Errorf("failed to create RBM: %w", err)
	}

	return &rbm, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetProfile returns the user with the manager summary populated.
func (s *UserService) GetProfile(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	if user.ManagerID != nil {
		var manager models.User
		if err := s.db.First(&manager, "id = ?", *user.ManagerID).Error; err == nil {
			resp.Manager = &dto.ManagerInfo{Name: manager.Name, Role: manager.Role}
		}
	}
	return &resp, nil
}

// UpdateSelf applies a partial profile update; a new password is re-hashed.
func (s *UserService) UpdateSelf(id uuid.UUID, req *dto.UpdateMeRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Mobile != nil && *req.Mobile != "" {
		updates["mobile"] = *req.Mobile
	}
	if req.ProfilePicURL != nil && *req.ProfilePicURL != "" {
		updates["profile_pic_url"] = *req.ProfilePicURL
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return nil
	}

	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DirectReports lists the users whose manager is managerID.
func (s *UserService) DirectReports(managerID uuid.UUID) ([]models.User, error) {
	var team []models.User
	if err := s.db.Where("manager_id = ?", managerID).Order("emp_id").Find(&team).Error; err != nil {
		return nil, err
	}
	return team, nil
}
