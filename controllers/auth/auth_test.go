package authController

import (
	"basic/config"
	"basic/database"
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

	authValidators "basic/validators/auth"
)

func setupTest(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		InviteExpiryDays:  30,
		ResetTokenMinutes: 60,
	}

	app := fiber.New()
	app.Post("/auth/register", authValidators.Register(), Register)
	app.Post("/auth/login", authValidators.Login(), Login)
	app.Get("/auth/validate-invite", CheckInvite)
	app.Post("/auth/forgot-password", authValidators.ForgotPassword(), ForgotPassword)
	app.Post("/auth/reset-password", authValidators.ResetPassword(), ResetPassword)
	return db, app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

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

func seedInvite(t *testing.T, db *gorm.DB, courseIDs []uint) models.Invite {
	t.Helper()

	invite := models.Invite{
		Code:        "BASIC-AB12CD",
		Email:       "jane@example.com",
		CourseIDs:   courseIDs,
		Status:      models.InviteStatusPending,
		CreatedByID: 1,
		ExpiresAt:   time.Now().AddDate(0, 0, 30),
	}
	require.NoError(t, db.Create(&invite).Error)
	return invite
}

func TestRegister(t *testing.T) {
	db, app := setupTest(t)

	course := courseModels.Course{Title: "Russa Perfeita", IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	seedInvite(t, db, []uint{course.ID})

	resp, body := doRequest(t, app, "POST", "/auth/register", fiber.Map{
		"name":       "Jane Doe",
		"email":      "Jane@Example.com",
		"password":   "secret123",
		"inviteCode": "BASIC-AB12CD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "BASIC-AB12CD", user.InviteCode)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)

	var invite models.Invite
	require.NoError(t, db.Where("code = ?", "BASIC-AB12CD").First(&invite).Error)
	assert.Equal(t, models.InviteStatusUsed, invite.Status)
	assert.Equal(t, user.ID, *invite.UsedByID)

	var updated courseModels.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Equal(t, 1, updated.TotalStudents)
}

func TestRegisterRejectsWrongEmail(t *testing.T) {
	db, app := setupTest(t)
	seedInvite(t, db, nil)

	resp, _ := doRequest(t, app, "POST", "/auth/register", fiber.Map{
		"name":       "Someone Else",
		"email":      "else@example.com",
		"password":   "secret123",
		"inviteCode": "BASIC-AB12CD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterRejectsUsedInvite(t *testing.T) {
	db, app := setupTest(t)
	seedInvite(t, db, nil)

	resp, _ := doRequest(t, app, "POST", "/auth/register", fiber.Map{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"password":   "secret123",
		"inviteCode": "BASIC-AB12CD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/auth/register", fiber.Map{
		"name":       "Jane Again",
		"email":      "jane@example.com",
		"password":   "secret123",
		"inviteCode": "BASIC-AB12CD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterRejectsExpiredInvite(t *testing.T) {
	db, app := setupTest(t)

	invite := models.Invite{
		Code:        "BASIC-OLD000",
		Email:       "jane@example.com",
		Status:      models.InviteStatusPending,
		CreatedByID: 1,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&invite).Error)

	resp, _ := doRequest(t, app, "POST", "/auth/register", fiber.Map{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"password":   "secret123",
		"inviteCode": "BASIC-OLD000",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	db, app := setupTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, err)
	user := models.User{
		Name: "Jane", Email: "jane@example.com",
		Password: string(hashed), Role: models.RoleStudent, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	resp, body := doRequest(t, app, "POST", "/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["token"])
}

func TestLoginAnswersTheSameForEveryFailure(t *testing.T) {
	db, app := setupTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name: "Jane", Email: "jane@example.com",
		Password: string(hashed), Role: models.RoleStudent, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Name: "Idle", Email: "idle@example.com",
		Password: string(hashed), Role: models.RoleStudent, IsActive: false,
	}).Error)

	cases := []fiber.Map{
		{"email": "unknown@example.com", "password": "secret123"},
		{"email": "jane@example.com", "password": "wrong-password"},
		{"email": "idle@example.com", "password": "secret123"},
	}
	for _, payload := range cases {
		resp, body := doRequest(t, app, "POST", "/auth/login", payload)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials!", body["message"])
	}
}

func TestCheckInvite(t *testing.T) {
	db, app := setupTest(t)
	seedInvite(t, db, []uint{3})

	resp, body := doRequest(t, app, "GET", "/auth/validate-invite?code=BASIC-AB12CD", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.True(t, data["valid"].(bool))
	assert.Equal(t, "jane@example.com", data["email"])

	resp, body = doRequest(t, app, "GET", "/auth/validate-invite?code=BASIC-NOPE00", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, body["data"].(map[string]interface{})["valid"].(bool))
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	db, app := setupTest(t)

	require.NoError(t, db.Create(&models.User{
		Name: "Jane", Email: "jane@example.com",
		Password: "x", Role: models.RoleStudent, IsActive: true,
	}).Error)

	resp, bodyKnown := doRequest(t, app, "POST", "/auth/forgot-password", fiber.Map{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, bodyUnknown := doRequest(t, app, "POST", "/auth/forgot-password", fiber.Map{
		"email": "unknown@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bodyKnown["message"], bodyUnknown["message"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Len(t, user.PasswordResetToken, 64)
	assert.NotNil(t, user.PasswordResetExpires)
}

func TestResetPassword(t *testing.T) {
	db, app := setupTest(t)

	expires := time.Now().Add(time.Hour)
	require.NoError(t, db.Create(&models.User{
		Name: "Jane", Email: "jane@example.com",
		Password: "x", Role: models.RoleStudent, IsActive: true,
		MustChangePassword: true,
		PasswordResetToken: "valid-token", PasswordResetExpires: &expires,
	}).Error)

	resp, _ := doRequest(t, app, "POST", "/auth/reset-password", fiber.Map{
		"token":       "valid-token",
		"newPassword": "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-pass")))
	assert.Empty(t, user.PasswordResetToken)
	assert.False(t, user.MustChangePassword)

	// The token cannot be replayed
	resp, _ = doRequest(t, app, "POST", "/auth/reset-password", fiber.Map{
		"token":       "valid-token",
		"newPassword": "another-pass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	db, app := setupTest(t)

	expires := time.Now().Add(-time.Minute)
	require.NoError(t, db.Create(&models.User{
		Name: "Jane", Email: "jane@example.com",
		Password: "x", Role: models.RoleStudent, IsActive: true,
		PasswordResetToken: "stale-token", PasswordResetExpires: &expires,
	}).Error)

	resp, _ := doRequest(t, app, "POST", "/auth/reset-password", fiber.Map{
		"token":       "stale-token",
		"newPassword": "brand-new-pass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
