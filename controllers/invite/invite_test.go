package inviteController

import (
	"basic/config"
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inviteValidators "basic/validators/invite"
)

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        4,
		InviteExpiryDays: 30,
	}
	return db
}

func setupApp() *fiber.App {
	app := fiber.New()
	app.Post("/invites", inviteValidators.CreateInvite(), middleware.JWTMiddleware, middleware.AdminOnly, CreateInvite)
	app.Get("/invites", middleware.JWTMiddleware, middleware.AdminOnly, ListInvites)
	app.Get("/invites/pending", middleware.JWTMiddleware, middleware.AdminOnly, ListPendingInvites)
	app.Delete("/invites/:code", middleware.JWTMiddleware, middleware.AdminOnly, CancelInvite)
	return app
}

func createAdmin(t *testing.T, db *gorm.DB) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), 4)
	require.NoError(t, err)

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@basic.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Email, admin.Role)
	require.NoError(t, err)
	return admin, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestCreateInvite(t *testing.T) {
	db := setupTest(t)
	app := setupApp()
	_, token := createAdmin(t, db)

	course := courseModels.Course{Title: "Russa Perfeita", IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	resp, body := doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email":     "Jane@Example.com",
		"courseIds": []uint{course.ID},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, body["status"].(bool))

	var invite models.Invite
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&invite).Error)
	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.Regexp(t, `^BASIC-[A-Z0-9]{6}$`, invite.Code)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), invite.ExpiresAt, time.Minute)
}

func TestCreateInviteRejectsDuplicatePending(t *testing.T) {
	db := setupTest(t)
	app := setupApp()
	_, token := createAdmin(t, db)

	resp, _ := doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email":     "jane@example.com",
		"courseIds": []uint{1},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email":     "JANE@example.com",
		"courseIds": []uint{2},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateInviteRequiresValidPayload(t *testing.T) {
	db := setupTest(t)
	app := setupApp()
	_, token := createAdmin(t, db)

	resp, _ := doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email":     "not-an-email",
		"courseIds": []uint{1},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateInviteRequiresAdmin(t *testing.T) {
	db := setupTest(t)
	app := setupApp()

	student := models.User{
		Name: "Student", Email: "student@example.com",
		Password: "x", Role: models.RoleStudent, IsActive: true,
	}
	require.NoError(t, db.Create(&student).Error)
	token, err := middleware.GenerateJWT(student.ID, student.Email, student.Role)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "POST", "/invites", token, fiber.Map{
		"email":     "jane@example.com",
		"courseIds": []uint{1},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestValidateInvite(t *testing.T) {
	db := setupTest(t)
	admin, _ := createAdmin(t, db)

	invite := models.Invite{
		Code: "BASIC-AB12CD", Email: "jane@example.com",
		Status: models.InviteStatusPending, CreatedByID: admin.ID,
		ExpiresAt: time.Now().AddDate(0, 0, 30),
	}
	require.NoError(t, db.Create(&invite).Error)

	assert.NotNil(t, ValidateInvite(db, "BASIC-AB12CD", "jane@example.com"))
	assert.Nil(t, ValidateInvite(db, "BASIC-AB12CD", "other@example.com"))
	assert.Nil(t, ValidateInvite(db, "BASIC-NOPE00", "jane@example.com"))
}

func TestValidateInviteExpiresOverdue(t *testing.T) {
	db := setupTest(t)
	admin, _ := createAdmin(t, db)

	invite := models.Invite{
		Code: "BASIC-OLD000", Email: "jane@example.com",
		Status: models.InviteStatusPending, CreatedByID: admin.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&invite).Error)

	assert.Nil(t, ValidateInvite(db, "BASIC-OLD000", "jane@example.com"))

	var stored models.Invite
	require.NoError(t, db.Where("code = ?", "BASIC-OLD000").First(&stored).Error)
	assert.Equal(t, models.InviteStatusExpired, stored.Status)
}

func TestConsumeInviteOnlyOnce(t *testing.T) {
	db := setupTest(t)
	admin, _ := createAdmin(t, db)

	invite := models.Invite{
		Code: "BASIC-ONCE01", Email: "jane@example.com",
		Status: models.InviteStatusPending, CreatedByID: admin.ID,
		ExpiresAt: time.Now().AddDate(0, 0, 30),
	}
	require.NoError(t, db.Create(&invite).Error)

	assert.True(t, ConsumeInvite(db, "BASIC-ONCE01", 7))
	assert.False(t, ConsumeInvite(db, "BASIC-ONCE01", 8))

	var stored models.Invite
	require.NoError(t, db.Where("code = ?", "BASIC-ONCE01").First(&stored).Error)
	assert.Equal(t, models.InviteStatusUsed, stored.Status)
	assert.Equal(t, uint(7), *stored.UsedByID)
	assert.NotNil(t, stored.UsedAt)
}

func TestCancelInvite(t *testing.T) {
	db := setupTest(t)
	app := setupApp()
	admin, token := createAdmin(t, db)

	invite := models.Invite{
		Code: "BASIC-GONE01", Email: "jane@example.com",
		Status: models.InviteStatusPending, CreatedByID: admin.ID,
		ExpiresAt: time.Now().AddDate(0, 0, 30),
	}
	require.NoError(t, db.Create(&invite).Error)

	resp, _ := doRequest(t, app, "DELETE", "/invites/BASIC-GONE01", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Invite
	require.NoError(t, db.Where("code = ?", "BASIC-GONE01").First(&stored).Error)
	assert.Equal(t, models.InviteStatusCancelled, stored.Status)

	// A cancelled invite cannot be cancelled again
	resp, _ = doRequest(t, app, "DELETE", "/invites/BASIC-GONE01", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListPendingInvites(t *testing.T) {
	db := setupTest(t)
	app := setupApp()
	admin, token := createAdmin(t, db)

	for _, invite := range []models.Invite{
		{Code: "BASIC-AAA001", Email: "a@example.com", Status: models.InviteStatusPending, CreatedByID: admin.ID, ExpiresAt: time.Now().AddDate(0, 0, 30)},
		{Code: "BASIC-BBB002", Email: "b@example.com", Status: models.InviteStatusUsed, CreatedByID: admin.ID, ExpiresAt: time.Now().AddDate(0, 0, 30)},
	} {
		require.NoError(t, db.Create(&invite).Error)
	}

	resp, body := doRequest(t, app, "GET", "/invites/pending", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "a@example.com", data[0].(map[string]interface{})["email"])
}
