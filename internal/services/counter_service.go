package services

import (
	"fmt"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterService issues human-readable employee IDs from per-role sequences.
type CounterService struct {
	db *gorm.DB
}

func NewCounterService(db *gorm.DB) *CounterService {
	return &CounterService{db: db}
}

// NextEmpID atomically advances the counter for role and returns the
// formatted employee ID. The increment is a single upsert statement, so two
// concurrent calls for the same role can never observe the same number.
func (s *CounterService) NextEmpID(role models.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	var last int64
	err := s.db.Raw(
		`INSERT INTO emp_counters (role, last_number) VALUES (?, 1)
		 ON CONFLICT (role) DO UPDATE SET last_number = emp_counters.last_number + 1
		 RETURNING last_number`,
		string(role),
	).Scan(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to advance counter for %s: %w", role, err)
	}

	return fmt.Sprintf("%s%0*d", role.EmpIDPrefix(), role.EmpIDPad(), last), nil
}

// EnsureCounters seeds a zero row for every role so sequences start at 1.
func (s *CounterService) EnsureCounters() error {
	counters := []models.EmpCounter{
		{Role: string(models.RoleRBM)},
		{Role: string(models.RoleAreaManager)},
		{Role: string(models.RoleTerritoryManager)},
		{Role: string(models.RoleMDO)},
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&counters).Error
}
