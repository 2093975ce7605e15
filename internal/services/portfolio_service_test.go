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

func newPortfolioFixture(t *testing.T) (*PortfolioService, *fakeStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := newFakeStore()
	return NewPortfolioService(db, NewMediaService(store)), store, db
}

func TestCreatePortfolio(t *testing.T) {
	svc, _, db := newPortfolioFixture(t)
	rbm := seedUser(t, db, models.RoleRBM, nil)

	portfolio, err := svc.Create(rbm.ID, &dto.CreatePortfolioRequest{
		Name:   "Kharif 2026",
		Images: []models.Photo{{Key: "uploads/rbm/1-a.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, rbm.ID, portfolio.CreatorID)

	_, err = svc.Create(rbm.ID, &dto.CreatePortfolioRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListPortfolios_SignsImages(t *testing.T) {
	svc, _, db := newPortfolioFixture(t)
	ctx := context.Background()
	rbm := seedUser(t, db, models.RoleRBM, nil)

	_, err := svc.Create(rbm.ID, &dto.CreatePortfolioRequest{
		Name:   "Demo plots",
		Images: []models.Photo{{Key: "uploads/rbm/1-a.jpg"}},
	})
	require.NoError(t, err)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rbm.Name, got[0].CreatorName)
	require.Len(t, got[0].Images, 1)
	assert.Equal(t, "https://store.test/get/uploads/rbm/1-a.jpg", got[0].Images[0].URL)
}

func TestUpdatePortfolio_ReleasesRemovedImages(t *testing.T) {
	svc, store, db := newPortfolioFixture(t)
	ctx := context.Background()
	rbm := seedUser(t, db, models.RoleRBM, nil)

	portfolio, err := svc.Create(rbm.ID, &dto.CreatePortfolioRequest{
		Name: "Before",
		Images: []models.Photo{
			{Key: "uploads/rbm/1-a.jpg"},
			{Key: "uploads/rbm/2-b.jpg"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, portfolio.ID, &dto.UpdatePortfolioRequest{
		Name: "After",
		Images: []models.Photo{
			{Key: "uploads/rbm/2-b.jpg"},
			{Key: "uploads/rbm/3-c.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, []string{"uploads/rbm/1-a.jpg"}, store.deletedKeys())

	_, err = svc.Update(ctx, uuid.New(), &dto.UpdatePortfolioRequest{Name: "X"})
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}

func TestDeletePortfolio_ReleasesAllImages(t *testing.T) {
	svc, store, db := newPortfolioFixture(t)
	ctx := context.Background()
	rbm := seedUser(t, db, models.RoleRBM, nil)

	portfolio, err := svc.Create(rbm.ID, &dto.CreatePortfolioRequest{
		Name: "Doomed",
		Images: []models.Photo{
			{Key: "uploads/rbm/1-a.jpg"},
			{Key: "uploads/rbm/2-b.jpg"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, portfolio.ID))
	assert.ElementsMatch(t, []string{"uploads/rbm/1-a.jpg", "uploads/rbm/2-b.jpg"}, store.deletedKeys())

	var count int64
	require.NoError(t, db.Model(&models.Portfolio{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, portfolio.ID), ErrPortfolioNotFound)
}
