package services

import (
	"testing"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPlanFixture(t *testing.T) (*PlanService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	policy := NewAccessPolicy(db, NewHierarchyService(db, NewMediaService(newFakeStore())))
	return NewPlanService(db, policy), db
}

func TestCreatePlan(t *testing.T) {
	svc, db := newPlanFixture(t)
	mdo := seedUser(t, db, models.RoleMDO, nil)

	t.Run("trims and stores villages", func(t *testing.T) {
		plan, err := svc.Create(mdo.ID, &dto.CreatePlanRequest{
			Villages: []string{" Wagholi ", "", "Shirur"},
			Remarks:  "seed demo visits",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Wagholi", "Shirur"}, []string(plan.Villages))
	})

	t.Run("rejects empty village list", func(t *testing.T) {
		_, err := svc.Create(mdo.ID, &dto.CreatePlanRequest{Villages: []string{"  ", ""}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("same-day plans accumulate", func(t *testing.T) {
		_, err := svc.Create(mdo.ID, &dto.CreatePlanRequest{Villages: []string{"A"}})
		require.NoError(t, err)
		_, err = svc.Create(mdo.ID, &dto.CreatePlanRequest{Villages: []string{"B"}})
		require.NoError(t, err)

		plans, err := svc.List(mdo, mdo.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(plans), 3)
	})
}

func TestListPlans_Visibility(t *testing.T) {
	svc, db := newPlanFixture(t)
	rbm, am, tm, mdo := seedChain(t, db)

	_, err := svc.Create(mdo.ID, &dto.CreatePlanRequest{Villages: []string{"V"}})
	require.NoError(t, err)

	t.Run("direct manager may read", func(t *testing.T) {
		plans, err := svc.List(tm, mdo.ID)
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})

	t.Run("RBM may read", func(t *testing.T) {
		plans, err := svc.List(rbm, mdo.ID)
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})

	t.Run("skip-level manager may not", func(t *testing.T) {
		_, err := svc.List(am, mdo.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestDeletePlan_OwnerOnly(t *testing.T) {
	svc, db := newPlanFixture(t)
	rbm, _, _, mdo := seedChain(t, db)

	plan, err := svc.Create(mdo.ID, &dto.CreatePlanRequest{Villages: []string{"V"}})
	require.NoError(t, err)

	// Even an RBM may not delete someone else's plan.
	assert.ErrorIs(t, svc.Delete(rbm.ID, plan.ID), ErrForbidden)

	require.NoError(t, svc.Delete(mdo.ID, plan.ID))
	assert.ErrorIs(t, svc.Delete(mdo.ID, plan.ID), ErrPlanNotFound)
	assert.ErrorIs(t, svc.Delete(mdo.ID, uuid.New()), ErrPlanNotFound)
}
