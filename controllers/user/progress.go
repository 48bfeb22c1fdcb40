package userController

import (
	"basic/database"
	"basic/middleware"
	courseModels "basic/models/course"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// orderedLessonIDs flattens a course into its viewing order: modules by
// order index, lessons by order index inside each module.
func orderedLessonIDs(db *gorm.DB, courseID uint) ([]uint, error) {
	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var ordered []uint
	for _, module := range modules {
		var lessonIDs []uint
		if err := db.Model(&courseModels.Lesson{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("order_index asc, id asc").
			Pluck("id", &lessonIDs).Error; err != nil {
			return nil, err
		}
		ordered = append(ordered, lessonIDs...)
	}
	return ordered, nil
}

func GetMyCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	progressByCourse := make(map[uint]float64, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
		progressByCourse[enrollment.CourseID] = enrollment.Progress
	}

	var courses []courseModels.Course
	if len(courseIDs) > 0 {
		if err := db.Where("id IN ? AND is_deleted = ?", courseIDs, false).Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
	}

	type enrolledCourse struct {
		courseModels.Course
		Progress float64 `json:"progress"`
	}

	result := make([]enrolledCourse, 0, len(courses))
	for _, course := range courses {
		result = append(result, enrolledCourse{Course: course, Progress: progressByCourse[course.ID]})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", result)
}

func GetMyProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var completions []courseModels.LessonCompletion
	if err := db.Where("user_id = ?", userId).Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userId, false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	courseProgress := make(map[uint]float64, len(enrollments))
	for _, enrollment := range enrollments {
		courseProgress[enrollment.CourseID] = enrollment.Progress
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"completedLessons": completions,
		"courseProgress":   courseProgress,
	})
}

// MarkLessonComplete records a completion. A lesson can only be completed
// once its predecessor in the course order is done; the first lesson is
// always open. Completing the same lesson twice is a no-op.
func MarkLessonComplete(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonId, err := strconv.ParseUint(c.Params("lessonId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonId, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?",
		userId, lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	ordered, err := orderedLessonIDs(db, lesson.CourseID)
	if err != nil {
		log.Printf("Error resolving lesson order for course %d: %v", lesson.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	position := -1
	for i, id := range ordered {
		if id == lesson.ID {
			position = i
			break
		}
	}
	if position > 0 {
		previousID := ordered[position-1]
		var count int64
		if err := db.Model(&courseModels.LessonCompletion{}).
			Where("user_id = ? AND lesson_id = ?", userId, previousID).
			Count(&count).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
		}
		if count == 0 {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous lesson first!", nil)
		}
	}

	completion := courseModels.LessonCompletion{
		UserID:   userId,
		LessonID: lesson.ID,
		CourseID: lesson.CourseID,
	}
	if err := db.Where("user_id = ? AND lesson_id = ?", userId, lesson.ID).
		FirstOrCreate(&completion).Error; err != nil {
		log.Printf("Error recording completion for user %d lesson %d: %v", userId, lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete.", completion)
}

// UpdateCourseProgress stores the client reported percentage on the
// enrollment. Last write wins.
func UpdateCourseProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("courseId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress float64 `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	result := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		Update("progress", reqData.Progress)
	if result.Error != nil {
		log.Printf("Error updating progress for user %d course %d: %v", userId, courseId, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully.", fiber.Map{
		"courseId": courseId,
		"progress": reqData.Progress,
	})
}
