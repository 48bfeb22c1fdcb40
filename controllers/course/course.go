package courseController

import (
	"basic/database"
	"basic/middleware"
	courseModels "basic/models/course"
	"log"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// ListCoursesWithRatings recomputes rating figures from the reviews table so
// the landing page never shows stale cached numbers.
func ListCoursesWithRatings(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	for i := range courses {
		var stats struct {
			Avg   float64
			Count int64
		}
		err := db.Table("reviews").
			Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
			Where("course_id = ? AND is_active = ? AND deleted_at IS NULL", courses[i].ID, true).
			Scan(&stats).Error
		if err != nil {
			log.Printf("Error computing ratings for course %d: %v", courses[i].ID, err)
			continue
		}
		courses[i].AverageRating = roundRating(stats.Avg)
		courses[i].TotalReviews = int(stats.Count)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func GetCourse(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("id = ? AND is_active = ? AND is_deleted = ?", courseId, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", course)
}

type outlineLesson struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"order_index"`
	IsCompleted bool   `json:"is_completed"`
	IsLocked    bool   `json:"is_locked"`
}

type outlineModule struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	OrderIndex  int             `json:"order_index"`
	Lessons     []outlineLesson `json:"lessons"`
}

// GetCourseOutline walks the course in order and marks each lesson completed
// or locked for the requesting student. A lesson unlocks once the one before
// it is completed; the first lesson is always open.
func GetCourseOutline(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userId, course.ID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch outline!", nil)
	}

	completed := make(map[uint]bool)
	var completions []courseModels.LessonCompletion
	if err := db.Where("user_id = ? AND course_id = ?", userId, course.ID).Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch outline!", nil)
	}
	for _, completion := range completions {
		completed[completion.LessonID] = true
	}

	outline := make([]outlineModule, 0, len(modules))
	previousDone := true
	for _, module := range modules {
		var lessons []courseModels.Lesson
		if err := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc, id asc").Find(&lessons).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch outline!", nil)
		}

		entry := outlineModule{
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
			OrderIndex:  module.OrderIndex,
			Lessons:     make([]outlineLesson, 0, len(lessons)),
		}
		for _, lesson := range lessons {
			isCompleted := completed[lesson.ID]
			entry.Lessons = append(entry.Lessons, outlineLesson{
				ID:          lesson.ID,
				Title:       lesson.Title,
				Description: lesson.Description,
				ContentType: lesson.ContentType,
				Duration:    lesson.Duration,
				OrderIndex:  lesson.OrderIndex,
				IsCompleted: isCompleted,
				IsLocked:    !previousDone,
			})
			previousDone = isCompleted
		}
		outline = append(outline, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Outline fetched successfully.", fiber.Map{
		"course":   course,
		"modules":  outline,
		"progress": enrollment.Progress,
	})
}

// GetLesson serves lesson content to enrolled students, refusing lessons that
// are still locked by the sequential order.
func GetLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	lessonId, err := strconv.ParseUint(c.Params("lessonId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		lessonId, courseId, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userId, lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	locked, err := lessonLocked(db, userId, &lesson)
	if err != nil {
		log.Printf("Error checking lesson lock for user %d lesson %d: %v", userId, lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson!", nil)
	}
	if locked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous lesson first!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully.", lesson)
}

func lessonLocked(db *gorm.DB, userID uint, lesson *courseModels.Lesson) (bool, error) {
	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", lesson.CourseID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return false, err
	}

	var ordered []uint
	for _, module := range modules {
		var lessonIDs []uint
		if err := db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc, id asc").
			Pluck("id", &lessonIDs).Error; err != nil {
			return false, err
		}
		ordered = append(ordered, lessonIDs...)
	}

	position := -1
	for i, id := range ordered {
		if id == lesson.ID {
			position = i
			break
		}
	}
	if position <= 0 {
		return false, nil
	}

	var count int64
	if err := db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, ordered[position-1]).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
