package userController

import (
	"basic/config"
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"basic/utils"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ListStudents(c *fiber.Ctx) error {
	var students []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Order("created_at desc").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully.", students)
}

func ListAdmins(c *fiber.Ctx) error {
	var admins []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).
		Order("created_at desc").Find(&admins).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch admins!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admins fetched successfully.", admins)
}

// CreateAdmin provisions an admin with a generated password that must be
// changed on first login. The password is only ever sent by email.
func CreateAdmin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdmin").(*struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	password := utils.GenerateSecurePassword(12)
	if password == "" {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate password!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newAdmin := models.User{
		Name:               strings.TrimSpace(reqData.Name),
		Email:              email,
		Password:           string(hashedPassword),
		Role:               models.RoleAdmin,
		IsActive:           true,
		MustChangePassword: true,
	}

	if err := db.Create(&newAdmin).Error; err != nil {
		log.Printf("Error saving admin to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create admin!", nil)
	}

	go func(email, name, password string) {
		if err := utils.SendAdminWelcomeEmail(email, name, password); err != nil {
			log.Printf("Failed to send admin welcome email to %s: %v", email, err)
		}
	}(newAdmin.Email, newAdmin.Name, password)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Admin created successfully.", newAdmin)
}

func GetUser(c *fiber.Ctx) error {
	userId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", user)
}

func UpdateUser(c *fiber.Ctx) error {
	userId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		City    *string `json:"city"`
		Avatar  *string `json:"avatar"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := make(map[string]interface{})
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Phone != nil {
		updates["phone"] = *reqData.Phone
	}
	if reqData.Address != nil {
		updates["address"] = *reqData.Address
	}
	if reqData.City != nil {
		updates["city"] = *reqData.City
	}
	if reqData.Avatar != nil {
		updates["avatar"] = *reqData.Avatar
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("Error updating user %d: %v", userId, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// UpdateUserCourses rewrites a student's enrollments. By default the given
// list replaces the current one; with additive set, courses are only added.
// Completions are kept either way so re-enrolling restores progress.
func UpdateUserCourses(c *fiber.Ctx) error {
	userId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedCourses").(*struct {
		CourseIDs []uint `json:"courseIds"`
		Additive  bool   `json:"additive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var current []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&current).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	currentSet := make(map[uint]bool, len(current))
	for _, enrollment := range current {
		currentSet[enrollment.CourseID] = true
	}
	wantedSet := make(map[uint]bool, len(reqData.CourseIDs))
	for _, courseID := range reqData.CourseIDs {
		wantedSet[courseID] = true
	}

	if !reqData.Additive {
		for _, enrollment := range current {
			if wantedSet[enrollment.CourseID] {
				continue
			}
			if err := db.Unscoped().Delete(&enrollment).Error; err != nil {
				log.Printf("Error removing enrollment %d: %v", enrollment.ID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollments!", nil)
			}
		}
	}

	for _, courseID := range reqData.CourseIDs {
		if currentSet[courseID] {
			continue
		}
		enrollment := courseModels.Enrollment{UserID: user.ID, CourseID: courseID}
		if err := db.Create(&enrollment).Error; err != nil {
			log.Printf("Error enrolling user %d in course %d: %v", user.ID, courseID, err)
			continue
		}
		if err := db.Model(&courseModels.Course{}).Where("id = ?", courseID).
			UpdateColumn("total_students", gorm.Expr("total_students + ?", 1)).Error; err != nil {
			log.Printf("Error updating student count for course %d: %v", courseID, err)
		}
	}

	var updated []courseModels.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&updated).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments updated successfully.", updated)
}

func SetActiveStatus(c *fiber.Ctx) error {
	userId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData, ok := c.Locals("validatedActiveStatus").(*struct {
		IsActive *bool `json:"isActive"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userId, false).
		Update("is_active", *reqData.IsActive)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User status updated successfully.", nil)
}

func DeleteUser(c *fiber.Ctx) error {
	userId, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	adminId, ok := c.Locals("userId").(uint)
	if ok && uint(userId) == adminId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Where("user_id = ?", user.ID).Unscoped().Delete(&courseModels.Enrollment{}).Error; err != nil {
		log.Printf("Error removing enrollments for user %d: %v", user.ID, err)
	}

	if err := db.Unscoped().Delete(&user).Error; err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}
