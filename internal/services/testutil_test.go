package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/bolokisan/fieldforce-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.EmpCounter{},
		&models.Activity{},
		&models.DailyPlan{},
		&models.Portfolio{},
	))

	return db
}

// fakeStore is an in-memory ObjectStore that records deletions.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) PresignPut(_ context.Context, key string) (string, error) {
	return "https://store.test/put/" + key, nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string) (string, error) {
	return "https://store.test/get/" + key, nil
}

func (f *fakeStore) Get(_ context.Context, key string) (*storage.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return &storage.Object{
		Body:        io.NopCloser(strings.NewReader(data)),
		ContentType: "image/jpeg",
	}, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) DeleteAll(ctx context.Context, keys []string) error {
	for _, key := range keys {
		f.Delete(ctx, key)
	}
	return nil
}

func (f *fakeStore) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

var testUserSeq int

// seedUser inserts a user directly, bypassing the counter.
func seedUser(t *testing.T, db *gorm.DB, role models.Role, managerID *uuid.UUID) *models.User {
	t.Helper()

	testUserSeq++
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		EmpID:        fmt.Sprintf("%s9%03d", role.EmpIDPrefix(), testUserSeq),
		Name:         fmt.Sprintf("%s User %d", role, testUserSeq),
		Role:         role,
		Mobile:       "9000000000",
		PasswordHash: string(hash),
		ManagerID:    managerID,
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedChain creates an RBM -> AreaManager -> TerritoryManager -> MDO chain.
func seedChain(t *testing.T, db *gorm.DB) (rbm, am, tm, mdo *models.User) {
	t.Helper()
	rbm = seedUser(t, db, models.RoleRBM, nil)
	am = seedUser(t, db, models.RoleAreaManager, &rbm.ID)
	tm = seedUser(t, db, models.RoleTerritoryManager, &am.ID)
	mdo = seedUser(t, db, models.RoleMDO, &tm.ID)
	return
}

func floatPtr(f float64) *float64 { return &f }
