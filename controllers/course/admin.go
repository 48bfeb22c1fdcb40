package courseController

import (
	"basic/database"
	"basic/middleware"
	courseModels "basic/models/course"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func ListCoursesAdmin(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string         `json:"title"`
		Subtitle     string         `json:"subtitle"`
		Description  string         `json:"description"`
		Instructor   string         `json:"instructor"`
		ImageURL     string         `json:"imageUrl"`
		ThumbnailURL string         `json:"thumbnailUrl"`
		Benefits     datatypes.JSON `json:"benefits"`
		IsActive     *bool          `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Subtitle:     reqData.Subtitle,
		Description:  reqData.Description,
		Instructor:   reqData.Instructor,
		ImageURL:     reqData.ImageURL,
		ThumbnailURL: reqData.ThumbnailURL,
		Benefits:     reqData.Benefits,
		IsActive:     true,
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error saving course to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        *string        `json:"title"`
		Subtitle     *string        `json:"subtitle"`
		Description  *string        `json:"description"`
		Instructor   *string        `json:"instructor"`
		ImageURL     *string        `json:"imageUrl"`
		ThumbnailURL *string        `json:"thumbnailUrl"`
		Benefits     datatypes.JSON `json:"benefits"`
		IsActive     *bool          `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := make(map[string]interface{})
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Subtitle != nil {
		updates["subtitle"] = *reqData.Subtitle
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Instructor != nil {
		updates["instructor"] = *reqData.Instructor
	}
	if reqData.ImageURL != nil {
		updates["image_url"] = *reqData.ImageURL
	}
	if reqData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *reqData.ThumbnailURL
	}
	if reqData.Benefits != nil {
		updates["benefits"] = reqData.Benefits
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}

	if len(updates) > 0 {
		if err := db.Model(&course).Updates(updates).Error; err != nil {
			log.Printf("Error updating course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// DeleteCourse soft deletes. Enrollments and reviews keep their rows so a
// restore brings everything back.
func DeleteCourse(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ?", courseId, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

func CreateModule(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"orderIndex"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).
		First(&courseModels.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:    uint(courseId),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error saving module to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", module)
}

func UpdateModule(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	moduleId, err := strconv.ParseUint(c.Params("moduleId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"orderIndex"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleId, courseId, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := db.Model(&module).Updates(map[string]interface{}{
		"title":       reqData.Title,
		"description": reqData.Description,
		"order_index": reqData.OrderIndex,
	}).Error; err != nil {
		log.Printf("Error updating module %d: %v", module.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully.", module)
}

func DeleteModule(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	moduleId, err := strconv.ParseUint(c.Params("moduleId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	db := database.Database.Db

	result := db.Model(&courseModels.Module{}).
		Where("id = ? AND course_id = ? AND is_deleted = ?", moduleId, courseId, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	// Lessons of a deleted module drop out of the course order with it
	if err := db.Model(&courseModels.Lesson{}).
		Where("module_id = ?", moduleId).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting lessons of module %d: %v", moduleId, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully.", nil)
}

func CreateLesson(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	moduleId, err := strconv.ParseUint(c.Params("moduleId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title                 string         `json:"title"`
		Description           string         `json:"description"`
		ContentType           string         `json:"contentType"`
		VideoURL              string         `json:"videoUrl"`
		ThumbnailURL          string         `json:"thumbnailUrl"`
		Duration              int            `json:"duration"`
		TextContent           string         `json:"textContent"`
		Quiz                  datatypes.JSON `json:"quiz"`
		SupplementaryMaterial []string       `json:"supplementaryMaterial"`
		OrderIndex            int            `json:"orderIndex"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleId, courseId, false).First(&courseModels.Module{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	contentType := reqData.ContentType
	if contentType == "" {
		contentType = "VIDEO"
	}

	lesson := courseModels.Lesson{
		CourseID:              uint(courseId),
		ModuleID:              uint(moduleId),
		Title:                 reqData.Title,
		Description:           reqData.Description,
		ContentType:           contentType,
		VideoURL:              reqData.VideoURL,
		ThumbnailURL:          reqData.ThumbnailURL,
		Duration:              reqData.Duration,
		TextContent:           reqData.TextContent,
		Quiz:                  reqData.Quiz,
		SupplementaryMaterial: datatypes.NewJSONSlice(reqData.SupplementaryMaterial),
		OrderIndex:            reqData.OrderIndex,
	}

	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error saving lesson to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully.", lesson)
}

func UpdateLesson(c *fiber.Ctx) error {
	moduleId, err := strconv.ParseUint(c.Params("moduleId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}
	lessonId, err := strconv.ParseUint(c.Params("lessonId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title                 string         `json:"title"`
		Description           string         `json:"description"`
		ContentType           string         `json:"contentType"`
		VideoURL              string         `json:"videoUrl"`
		ThumbnailURL          string         `json:"thumbnailUrl"`
		Duration              int            `json:"duration"`
		TextContent           string         `json:"textContent"`
		Quiz                  datatypes.JSON `json:"quiz"`
		SupplementaryMaterial []string       `json:"supplementaryMaterial"`
		OrderIndex            int            `json:"orderIndex"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND module_id = ? AND is_deleted = ?",
		lessonId, moduleId, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	updates := map[string]interface{}{
		"title":         reqData.Title,
		"description":   reqData.Description,
		"video_url":     reqData.VideoURL,
		"thumbnail_url": reqData.ThumbnailURL,
		"duration":      reqData.Duration,
		"text_content":  reqData.TextContent,
		"order_index":   reqData.OrderIndex,
	}
	if reqData.ContentType != "" {
		updates["content_type"] = reqData.ContentType
	}
	if reqData.Quiz != nil {
		updates["quiz"] = reqData.Quiz
	}
	if reqData.SupplementaryMaterial != nil {
		updates["supplementary_material"] = datatypes.NewJSONSlice(reqData.SupplementaryMaterial)
	}

	if err := db.Model(&lesson).Updates(updates).Error; err != nil {
		log.Printf("Error updating lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully.", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	moduleId, err := strconv.ParseUint(c.Params("moduleId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}
	lessonId, err := strconv.ParseUint(c.Params("lessonId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	result := database.Database.Db.Model(&courseModels.Lesson{}).
		Where("id = ? AND module_id = ? AND is_deleted = ?", lessonId, moduleId, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully.", nil)
}
