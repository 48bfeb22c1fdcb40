package reviewController

import (
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"log"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recalculateCourseRating refreshes the cached rating fields on the course
// from the active reviews. Called after every review write.
func recalculateCourseRating(db *gorm.DB, courseID uint) {
	var stats struct {
		Avg   float64
		Count int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("course_id = ? AND is_active = ?", courseID, true).
		Scan(&stats).Error
	if err != nil {
		log.Printf("Error computing rating for course %d: %v", courseID, err)
		return
	}

	average := math.Round(stats.Avg*10) / 10
	if stats.Count == 0 {
		average = 0
	}

	if err := db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  stats.Count,
		}).Error; err != nil {
		log.Printf("Error updating rating for course %d: %v", courseID, err)
	}
}

// CreateReview stores one review per student per course.
func CreateReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		CourseID    uint   `json:"courseId"`
		Rating      int    `json:"rating"`
		Comment     string `json:"comment"`
		IsAnonymous bool   `json:"isAnonymous"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).
		First(&courseModels.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ?", userId, reqData.CourseID).
		First(&models.Review{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		UserID:      userId,
		CourseID:    reqData.CourseID,
		Rating:      reqData.Rating,
		Comment:     reqData.Comment,
		IsAnonymous: reqData.IsAnonymous,
		IsActive:    true,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error saving review to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review!", nil)
	}

	recalculateCourseRating(db, review.CourseID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review created successfully.", review)
}

// UpdateReview lets the author edit their own review. Someone else's review
// id answers not found rather than forbidden.
func UpdateReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	reqData, ok := c.Locals("validatedReviewUpdate").(*struct {
		Rating      *int    `json:"rating"`
		Comment     *string `json:"comment"`
		IsAnonymous *bool   `json:"isAnonymous"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ? AND user_id = ?", reviewId, userId).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	updates := make(map[string]interface{})
	if reqData.Rating != nil {
		updates["rating"] = *reqData.Rating
	}
	if reqData.Comment != nil {
		updates["comment"] = *reqData.Comment
	}
	if reqData.IsAnonymous != nil {
		updates["is_anonymous"] = *reqData.IsAnonymous
	}

	if len(updates) > 0 {
		if err := db.Model(&review).Updates(updates).Error; err != nil {
			log.Printf("Error updating review %d: %v", review.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
		}
		recalculateCourseRating(db, review.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully.", review)
}

// DeleteReview removes the author's review for good so the course can be
// reviewed again later.
func DeleteReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reviewId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ? AND user_id = ?", reviewId, userId).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if err := db.Unscoped().Delete(&review).Error; err != nil {
		log.Printf("Error deleting review %d: %v", review.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	recalculateCourseRating(db, review.CourseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully.", nil)
}

// ListCourseReviews returns the active reviews of a course, newest first,
// hiding the author name on anonymous ones.
func ListCourseReviews(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("courseId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var reviews []models.Review
	if err := db.Where("course_id = ? AND is_active = ?", courseId, true).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	userIDs := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		if !review.IsAnonymous {
			userIDs = append(userIDs, review.UserID)
		}
	}

	names := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err == nil {
			for _, user := range users {
				names[user.ID] = user.Name
			}
		}
	}

	type publicReview struct {
		models.Review
		AuthorName string `json:"author_name"`
	}

	result := make([]publicReview, 0, len(reviews))
	for _, review := range reviews {
		name := "Anônimo"
		if !review.IsAnonymous {
			name = names[review.UserID]
		}
		result = append(result, publicReview{Review: review, AuthorName: name})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully.", result)
}

// GetCourseReviewStats reports the average rounded to one decimal and the
// count per star. A course with no reviews reports zeroes.
func GetCourseReviewStats(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("courseId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var reviews []models.Review
	if err := db.Where("course_id = ? AND is_active = ?", courseId, true).Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int
	for _, review := range reviews {
		distribution[review.Rating]++
		sum += review.Rating
	}

	average := 0.0
	if len(reviews) > 0 {
		average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully.", fiber.Map{
		"averageRating": average,
		"totalReviews":  len(reviews),
		"distribution":  distribution,
	})
}

func MyReviews(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var reviews []models.Review
	if err := database.Database.Db.Where("user_id = ?", userId).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully.", reviews)
}

// ListAllReviews is the admin view: every review with author and course.
func ListAllReviews(c *fiber.Ctx) error {
	db := database.Database.Db

	var reviews []models.Review
	if err := db.Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	userIDs := make([]uint, 0, len(reviews))
	courseIDs := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		userIDs = append(userIDs, review.UserID)
		courseIDs = append(courseIDs, review.CourseID)
	}

	names := make(map[uint]string)
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err == nil {
			for _, user := range users {
				names[user.ID] = user.Name
			}
		}
	}

	titles := make(map[uint]string)
	if len(courseIDs) > 0 {
		var courses []courseModels.Course
		if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err == nil {
			for _, course := range courses {
				titles[course.ID] = course.Title
			}
		}
	}

	type adminReview struct {
		models.Review
		AuthorName  string `json:"author_name"`
		CourseTitle string `json:"course_title"`
	}

	result := make([]adminReview, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, adminReview{
			Review:      review,
			AuthorName:  names[review.UserID],
			CourseTitle: titles[review.CourseID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully.", result)
}
