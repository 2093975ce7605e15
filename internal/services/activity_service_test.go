package services

import (
	"context"
	"testing"

	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newActivityFixture(t *testing.T) (*ActivityService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	media := NewMediaService(newFakeStore())
	policy := NewAccessPolicy(db, NewHierarchyService(db, media))
	return NewActivityService(db, media, policy), db
}

func validCreateRequest() *dto.CreateActivityRequest {
	return &dto.CreateActivityRequest{
		FarmerName:       "Ramesh",
		FarmerMobile:     "9876543210",
		Village:          "Wagholi",
		Taluka:           "Haveli",
		District:         "Pune",
		CropOrHybrid:     "Cotton BT-2",
		FarmersInvolved:  5,
		ActivityType:     models.ActivitySpecial,
		TentativeExpense: floatPtr(1500),
	}
}

func TestCreateActivity(t *testing.T) {
	svc, db := newActivityFixture(t)
	mdo := seedUser(t, db, models.RoleMDO, nil)

	t.Run("publishes immediately", func(t *testing.T) {
		activity, err := svc.Create(mdo, validCreateRequest())
		require.NoError(t, err)
		assert.True(t, activity.IsPublished)
		assert.NotNil(t, activity.PublishedAt)
		assert.Equal(t, mdo.EmpID, activity.EmpID)
	})

	t.Run("defaults to Special", func(t *testing.T) {
		req := validCreateRequest()
		req.ActivityType = ""
		activity, err := svc.Create(mdo, req)
		require.NoError(t, err)
		assert.Equal(t, models.ActivitySpecial, activity.ActivityType)
	})

	t.Run("Special requires tentativeExpense", func(t *testing.T) {
		req := validCreateRequest()
		req.TentativeExpense = nil
		_, err := svc.Create(mdo, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("General requires contactType", func(t *testing.T) {
		req := validCreateRequest()
		req.ActivityType = models.ActivityGeneral
		req.TentativeExpense = nil
		_, err := svc.Create(mdo, req)
		assert.ErrorIs(t, err, ErrValidation)

		req.ContactType = models.ContactCalling
		activity, err := svc.Create(mdo, req)
		require.NoError(t, err)
		assert.Equal(t, models.ContactCalling, activity.ContactType)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := validCreateRequest()
		req.Village = ""
		_, err := svc.Create(mdo, req)
		assert.ErrorIs(t, err, ErrValidation)

		req = validCreateRequest()
		req.FarmersInvolved = 0
		_, err = svc.Create(mdo, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.ActivityType = models.ActivityType("Weekly")
		_, err := svc.Create(mdo, req)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListActivities_Scopes(t *testing.T) {
	svc, db := newActivityFixture(t)
	ctx := context.Background()

	rbm, am, tm, mdo := seedChain(t, db)
	outsider := seedUser(t, db, models.RoleMDO, nil)

	for _, u := range []*models.User{am, tm, mdo, outsider} {
		_, err := svc.Create(u, validCreateRequest())
		require.NoError(t, err)
	}

	t.Run("default scope is own activities", func(t *testing.T) {
		got, err := svc.List(ctx, mdo, "", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, mdo.ID, got[0].CreatorID)
	})

	t.Run("team scope spans the whole subtree", func(t *testing.T) {
		got, err := svc.List(ctx, am, "team", nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("team scope for RBM excludes outsiders", func(t *testing.T) {
		got, err := svc.List(ctx, rbm, "team", nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("direct manager may target a report", func(t *testing.T) {
		got, err := svc.List(ctx, tm, "", &mdo.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("grandparent manager may not target", func(t *testing.T) {
		_, err := svc.List(ctx, am, "", &mdo.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("RBM may target anyone", func(t *testing.T) {
		got, err := svc.List(ctx, rbm, "", &outsider.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestListActivities_ExpenseRedaction(t *testing.T) {
	svc, db := newActivityFixture(t)
	ctx := context.Background()

	rbm, _, tm, mdo := seedChain(t, db)
	_, err := svc.Create(mdo, validCreateRequest())
	require.NoError(t, err)

	t.Run("creator sees own expense", func(t *testing.T) {
		got, err := svc.List(ctx, mdo, "", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].TentativeExpense)
		assert.Equal(t, 1500.0, *got[0].TentativeExpense)
	})

	t.Run("RBM sees expense", func(t *testing.T) {
		got, err := svc.List(ctx, rbm, "team", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].TentativeExpense)
	})

	t.Run("direct manager does not see expense", func(t *testing.T) {
		got, err := svc.List(ctx, tm, "", &mdo.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].TentativeExpense)
	})
}

func TestUpdateActivity(t *testing.T) {
	svc, db := newActivityFixture(t)
	mdo := seedUser(t, db, models.RoleMDO, nil)

	activity, err := svc.Create(mdo, validCreateRequest())
	require.NoError(t, err)

	village := "Shirur"
	updated, err := svc.Update(activity.ID, &dto.UpdateActivityRequest{
		Village: &village,
		Photos:  []models.Photo{{Key: "uploads/x/1-new.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Shirur", updated.Village)
	require.Len(t, updated.Photos, 1)
	assert.Equal(t, "uploads/x/1-new.jpg", updated.Photos[0].Key)
	// Untouched fields survive the patch.
	assert.Equal(t, "Ramesh", updated.FarmerName)

	_, err = svc.Update(uuid.New(), &dto.UpdateActivityRequest{Village: &village})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDeleteActivity_SoftDeletes(t *testing.T) {
	svc, db := newActivityFixture(t)
	ctx := context.Background()
	mdo := seedUser(t, db, models.RoleMDO, nil)

	activity, err := svc.Create(mdo, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(activity.ID))

	// Hidden from listings but still present unscoped.
	got, err := svc.List(ctx, mdo, "", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, svc.Delete(activity.ID), ErrActivityNotFound)
}
