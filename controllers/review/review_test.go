package reviewController

import (
	"basic/config"
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	reviewValidators "basic/validators/review"
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

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	app.Post("/reviews", reviewValidators.CreateReview(), middleware.JWTMiddleware, CreateReview)
	app.Get("/reviews/me", middleware.JWTMiddleware, MyReviews)
	app.Get("/reviews/course/:courseId", ListCourseReviews)
	app.Get("/reviews/course/:courseId/stats", GetCourseReviewStats)
	app.Put("/reviews/:id", reviewValidators.UpdateReview(), middleware.JWTMiddleware, UpdateReview)
	app.Delete("/reviews/:id", middleware.JWTMiddleware, DeleteReview)
	return db, app
}

func createStudent(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name: "Student " + email, Email: email, Password: "x",
		Role: models.RoleStudent, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, db *gorm.DB) courseModels.Course {
	t.Helper()

	course := courseModels.Course{Title: "Russa Perfeita", IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	return course
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

func TestCreateReviewUpdatesCourseAggregates(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)

	ratings := []int{5, 5, 5, 4}
	for i, rating := range ratings {
		_, token := createStudent(t, db, fmt.Sprintf("student%d@example.com", i))
		resp, _ := doRequest(t, app, "POST", "/reviews", token, fiber.Map{
			"courseId": course.ID,
			"rating":   rating,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var stored courseModels.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, 4.8, stored.AverageRating)
	assert.Equal(t, 4, stored.TotalReviews)
}

func TestCreateReviewRejectsSecondReview(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	_, token := createStudent(t, db, "jane@example.com")

	resp, _ := doRequest(t, app, "POST", "/reviews", token, fiber.Map{
		"courseId": course.ID, "rating": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/reviews", token, fiber.Map{
		"courseId": course.ID, "rating": 3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	_, token := createStudent(t, db, "jane@example.com")

	for _, rating := range []int{0, 6, -1} {
		resp, _ := doRequest(t, app, "POST", "/reviews", token, fiber.Map{
			"courseId": course.ID, "rating": rating,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestUpdateReviewRecomputesAggregates(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	user, token := createStudent(t, db, "jane@example.com")

	review := models.Review{UserID: user.ID, CourseID: course.ID, Rating: 2, IsActive: true}
	require.NoError(t, db.Create(&review).Error)
	recalculateCourseRating(db, course.ID)

	resp, _ := doRequest(t, app, "PUT", fmt.Sprintf("/reviews/%d", review.ID), token, fiber.Map{
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored courseModels.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, 5.0, stored.AverageRating)
}

func TestUpdateReviewIsAuthorOnly(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	author, _ := createStudent(t, db, "author@example.com")
	_, otherToken := createStudent(t, db, "other@example.com")

	review := models.Review{UserID: author.ID, CourseID: course.ID, Rating: 4, IsActive: true}
	require.NoError(t, db.Create(&review).Error)

	resp, _ := doRequest(t, app, "PUT", fmt.Sprintf("/reviews/%d", review.ID), otherToken, fiber.Map{
		"rating": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteReviewAllowsReviewingAgain(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	user, token := createStudent(t, db, "jane@example.com")

	review := models.Review{UserID: user.ID, CourseID: course.ID, Rating: 4, IsActive: true}
	require.NoError(t, db.Create(&review).Error)
	recalculateCourseRating(db, course.ID)

	resp, _ := doRequest(t, app, "DELETE", fmt.Sprintf("/reviews/%d", review.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored courseModels.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, 0.0, stored.AverageRating)
	assert.Equal(t, 0, stored.TotalReviews)

	resp, _ = doRequest(t, app, "POST", "/reviews", token, fiber.Map{
		"courseId": course.ID, "rating": 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetCourseReviewStats(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)

	ratings := []int{5, 5, 5, 4}
	for i, rating := range ratings {
		user, _ := createStudent(t, db, fmt.Sprintf("student%d@example.com", i))
		require.NoError(t, db.Create(&models.Review{
			UserID: user.ID, CourseID: course.ID, Rating: rating, IsActive: true,
		}).Error)
	}

	resp, body := doRequest(t, app, "GET", fmt.Sprintf("/reviews/course/%d/stats", course.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 4.8, data["averageRating"])
	assert.Equal(t, 4.0, data["totalReviews"])

	distribution := data["distribution"].(map[string]interface{})
	assert.Equal(t, 3.0, distribution["5"])
	assert.Equal(t, 1.0, distribution["4"])
	assert.Equal(t, 0.0, distribution["3"])
}

func TestGetCourseReviewStatsEmptyCourse(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)
	_ = db

	resp, body := doRequest(t, app, "GET", fmt.Sprintf("/reviews/course/%d/stats", course.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["averageRating"])
	assert.Equal(t, 0.0, data["totalReviews"])
}

func TestListCourseReviewsMasksAnonymousAuthors(t *testing.T) {
	db, app := setupTest(t)
	course := createCourse(t, db)

	open, _ := createStudent(t, db, "open@example.com")
	hidden, _ := createStudent(t, db, "hidden@example.com")

	require.NoError(t, db.Create(&models.Review{
		UserID: open.ID, CourseID: course.ID, Rating: 5, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Review{
		UserID: hidden.ID, CourseID: course.ID, Rating: 4, IsAnonymous: true, IsActive: true,
	}).Error)

	resp, body := doRequest(t, app, "GET", fmt.Sprintf("/reviews/course/%d", course.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 2)

	names := make(map[string]bool)
	for _, entry := range data {
		names[entry.(map[string]interface{})["author_name"].(string)] = true
	}
	assert.True(t, names["Student open@example.com"])
	assert.True(t, names["Anônimo"])
	assert.False(t, names["Student hidden@example.com"])
}
