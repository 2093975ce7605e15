package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bolokisan/fieldforce-backend/internal/config"
	"github.com/bolokisan/fieldforce-backend/internal/database"
	"github.com/bolokisan/fieldforce-backend/internal/dto"
	"github.com/bolokisan/fieldforce-backend/internal/handlers"
	"github.com/bolokisan/fieldforce-backend/internal/models"
	"github.com/bolokisan/fieldforce-backend/internal/services"
	"github.com/bolokisan/fieldforce-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullStore struct{}

func (nullStore) PresignPut(_ context.Context, key string) (string, error) {
	return "https://store.test/put/" + key, nil
}
func (nullStore) PresignGet(_ context.Context, key string) (string, error) {
	return "https://store.test/get/" + key, nil
}
func (nullStore) Get(context.Context, string) (*storage.Object, error) {
	return nil, errors.New("object not found")
}
func (nullStore) Delete(context.Context, string) error      { return nil }
func (nullStore) DeleteAll(context.Context, []string) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
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
	database.DB = db

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		BootstrapSecret:  "boot-secret",
	}

	counters := services.NewCounterService(db)
	require.NoError(t, counters.EnsureCounters())
	media := services.NewMediaService(nullStore{})
	users := services.NewUserService(db, counters)
	auth := services.NewAuthService(db, cfg)
	hierarchy := services.NewHierarchyService(db, media)
	policy := services.NewAccessPolicy(db, hierarchy)
	activities := services.NewActivityService(db, media, policy)
	plans := services.NewPlanService(db, policy)
	portfolios := services.NewPortfolioService(db, media)
	analytics := services.NewAnalyticsService(db, hierarchy)
	youtube := services.NewYouTubeService(cfg, nil)

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(auth),
		handlers.NewUserHandler(users, hierarchy, cfg),
		handlers.NewActivityHandler(activities, users),
		handlers.NewPlanHandler(plans, users),
		handlers.NewPortfolioHandler(portfolios),
		handlers.NewUploadHandler(media),
		handlers.NewAnalyticsHandler(analytics),
		handlers.NewYouTubeHandler(youtube),
		handlers.NewAdminHandler(hierarchy),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func login(t *testing.T, app *fiber.App, empID, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		EmpID: empID, Password: password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth.AccessToken
}

func TestAPI_FullLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Bootstrap the first RBM.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/bootstrap-rbm", "", dto.BootstrapRequest{
		Secret: "boot-secret", Name: "Regional Head", Password: "rbm-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created dto.CreateUserResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "RBM001", created.EmpID)

	rbmToken := login(t, app, "RBM001", "rbm-pass")

	// Build the chain: RBM -> AM -> TM -> MDO.
	chain := []struct {
		role     models.Role
		expected string
	}{
		{models.RoleAreaManager, "AM0001"},
		{models.RoleTerritoryManager, "TM0001"},
		{models.RoleMDO, "MDO0001"},
	}
	token := rbmToken
	for _, step := range chain {
		resp, body = doJSON(t, app, fiber.MethodPost, "/api/users", token, dto.CreateUserRequest{
			Name: string(step.role) + " One", Role: step.role, Password: "pass-" + step.expected,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Equal(t, step.expected, created.EmpID)

		token = login(t, app, created.EmpID, "pass-"+created.EmpID)
	}
	mdoToken := token

	// The MDO logs a Special activity with an expense.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/activities", mdoToken, dto.CreateActivityRequest{
		FarmerName: "Ramesh", FarmerMobile: "9876543210",
		Village: "Wagholi", Taluka: "Haveli", District: "Pune",
		CropOrHybrid: "Cotton", FarmersInvolved: 4,
		ActivityType: models.ActivitySpecial, TentativeExpense: floatPtr(900),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	// The RBM sees it via the team scope, expense included.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/activities?scope=team", rbmToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var list dto.ListActivitiesResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Activities, 1)
	require.NotNil(t, list.Activities[0].TentativeExpense)

	// The MDO files a daily plan.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/dailyplans", mdoToken, dto.CreatePlanRequest{
		Villages: []string{"Wagholi", "Shirur"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	// Team stats roll up the subtree.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/analytics/team-stats", rbmToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var stats dto.TeamStatsResponse
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Breakdown[string(models.RoleMDO)])
}

func TestAPI_RBMGate(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/bootstrap-rbm", "", dto.BootstrapRequest{
		Secret: "boot-secret", Name: "Regional Head", Password: "rbm-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	rbmToken := login(t, app, "RBM001", "rbm-pass")

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/users", rbmToken, dto.CreateUserRequest{
		Name: "Area One", Role: models.RoleAreaManager, Password: "am-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	amToken := login(t, app, "AM0001", "am-pass")

	// Non-RBM callers are rejected from the management surface.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/portfolios", amToken, dto.CreatePortfolioRequest{Name: "X"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/admin/cleanup-orphans", amToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Unauthenticated requests never reach a handler.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/activities", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// RBMs pass the gate.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/portfolios", rbmToken, dto.CreatePortfolioRequest{Name: "Kharif"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
}

func TestAPI_CascadeDelete(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/bootstrap-rbm", "", dto.BootstrapRequest{
		Secret: "boot-secret", Name: "Regional Head", Password: "rbm-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	rbmToken := login(t, app, "RBM001", "rbm-pass")

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/users", rbmToken, dto.CreateUserRequest{
		Name: "Area One", Role: models.RoleAreaManager, Password: "am-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	var am models.User
	require.NoError(t, database.DB.First(&am, "emp_id = ?", "AM0001").Error)

	amToken := login(t, app, "AM0001", "am-pass")
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/users", amToken, dto.CreateUserRequest{
		Name: "Territory One", Role: models.RoleTerritoryManager, Password: "tm-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/users/%s", am.ID), rbmToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.True(t, strings.Contains(string(body), "deleted"))

	var count int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Deleting an unknown user reports 404.
	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/users/%s", uuid.New()), rbmToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func floatPtr(f float64) *float64 { return &f }
