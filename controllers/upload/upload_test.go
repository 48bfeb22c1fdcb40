package uploadController

import (
	"basic/config"
	"basic/database"
	"basic/middleware"
	"basic/models"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	uploadValidators "basic/validators/upload"
)

func setupTest(t *testing.T) (*gorm.DB, *fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "x", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 52 * 1024 * 1024})
	app.Post("/uploads", uploadValidators.CreateUpload(), middleware.JWTMiddleware, CreateUpload)
	app.Get("/uploads/:fileId", GetFile)
	app.Get("/uploads/:fileId/info", GetFileInfo)
	return db, app, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
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
	return resp, raw
}

func imageDataURI(content []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)
}

func TestUploadAndDownloadRoundTrip(t *testing.T) {
	_, app, token := setupTest(t)

	content := []byte("fake png bytes")
	resp, raw := doRequest(t, app, "POST", "/uploads", token, fiber.Map{
		"filename": "avatar.png",
		"type":     "image",
		"base64":   imageDataURI(content),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	data := body["data"].(map[string]interface{})
	fileID := data["fileId"].(string)
	assert.Equal(t, "/uploads/"+fileID, data["url"])
	assert.Equal(t, float64(len(content)), data["size"])

	resp, raw = doRequest(t, app, "GET", "/uploads/"+fileID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, content, raw)
}

func TestUploadRejectsDisallowedMimeType(t *testing.T) {
	_, app, token := setupTest(t)

	payload := base64.StdEncoding.EncodeToString([]byte("#!/bin/sh"))
	resp, _ := doRequest(t, app, "POST", "/uploads", token, fiber.Map{
		"filename": "script.sh",
		"type":     "image",
		"base64":   "data:application/x-sh;base64," + payload,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	_, app, token := setupTest(t)

	oversized := strings.Repeat("A", (maxImageSize/3+10)*4)
	resp, _ := doRequest(t, app, "POST", "/uploads", token, fiber.Map{
		"filename": "huge.png",
		"type":     "image",
		"base64":   "data:image/png;base64," + oversized,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsMalformedDataURI(t *testing.T) {
	_, app, token := setupTest(t)

	resp, _ := doRequest(t, app, "POST", "/uploads", token, fiber.Map{
		"filename": "avatar.png",
		"type":     "image",
		"base64":   "not a data uri",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetFileInfo(t *testing.T) {
	_, app, token := setupTest(t)

	resp, raw := doRequest(t, app, "POST", "/uploads", token, fiber.Map{
		"filename": "avatar.png",
		"type":     "image",
		"base64":   imageDataURI([]byte("bytes")),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	fileID := body["data"].(map[string]interface{})["fileId"].(string)

	resp, raw = doRequest(t, app, "GET", "/uploads/"+fileID+"/info", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(raw, &body))
	info := body["data"].(map[string]interface{})
	assert.Equal(t, "avatar.png", info["filename"])
	assert.Equal(t, "image/png", info["mimeType"])
	assert.Equal(t, "image", info["type"])
}

func TestDecodedSize(t *testing.T) {
	for _, content := range [][]byte{
		[]byte("a"), []byte("ab"), []byte("abc"), []byte("abcd"),
	} {
		encoded := base64.StdEncoding.EncodeToString(content)
		assert.Equal(t, int64(len(content)), decodedSize(encoded))
	}
}
