package authController

import (
	"basic/config"
	inviteController "basic/controllers/invite"
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"basic/utils"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a student account from a valid invite, enrolls it in the
// invite's courses, consumes the invite and returns a session token.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		InviteCode string `json:"inviteCode"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		City       string `json:"city"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))
	code := strings.TrimSpace(reqData.InviteCode)

	// Check if email already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Email is already registered!", nil)
	}

	invite := inviteController.ValidateInvite(db, code, email)
	if invite == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired invite code!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:       strings.TrimSpace(reqData.Name),
		Email:      email,
		Password:   string(hashedPassword),
		Role:       models.RoleStudent,
		Phone:      reqData.Phone,
		Address:    reqData.Address,
		City:       reqData.City,
		IsActive:   true,
		InviteCode: invite.Code,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Enroll the new student in every course the invite grants
	for _, courseID := range invite.CourseIDs {
		enrollment := courseModels.Enrollment{
			UserID:   newUser.ID,
			CourseID: courseID,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			log.Printf("Error enrolling user %d in course %d: %v", newUser.ID, courseID, err)
			continue
		}
		if err := db.Model(&courseModels.Course{}).Where("id = ?", courseID).
			UpdateColumn("total_students", gorm.Expr("total_students + ?", 1)).Error; err != nil {
			log.Printf("Error updating student count for course %d: %v", courseID, err)
		}
	}

	if !inviteController.ConsumeInvite(db, invite.Code, newUser.ID) {
		// Another registration won the invite between validation and consume.
		// The account already exists, so keep going and just record it.
		log.Printf("Invite %s was consumed concurrently, user %d registered anyway", invite.Code, newUser.ID)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Email, newUser.Role)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered successfully.", fiber.Map{
		"user":  newUser,
		"token": token,
	})
}

// Login responds with the same message for unknown email, inactive account
// and wrong password.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// CheckInvite lets the registration page verify a code before the form is
// submitted. Invalid codes still answer 200 so the page can render the reason.
func CheckInvite(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invite code is required!", nil)
	}

	db := database.Database.Db

	var invite models.Invite
	if err := db.Where("code = ?", code).First(&invite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite checked.", fiber.Map{"valid": false})
	}

	if invite.Status == models.InviteStatusPending && time.Now().After(invite.ExpiresAt) {
		if err := db.Model(&invite).Update("status", models.InviteStatusExpired).Error; err != nil {
			log.Printf("Error expiring invite %s: %v", invite.Code, err)
		}
		invite.Status = models.InviteStatusExpired
	}

	if invite.Status != models.InviteStatusPending {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite checked.", fiber.Map{"valid": false})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite checked.", fiber.Map{
		"valid":     true,
		"email":     invite.Email,
		"courseIds": invite.CourseIDs,
	})
}

// ForgotPassword always answers 200 so the endpoint cannot be used to probe
// which emails have accounts.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))
	genericMessage := "If the email is registered, a reset link has been sent."

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, genericMessage, nil)
	}

	token := utils.GenerateResetToken()
	if token == "" {
		log.Printf("Error generating reset token for user %d", user.ID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, genericMessage, nil)
	}

	expires := time.Now().Add(time.Duration(config.AppConfig.ResetTokenMinutes) * time.Minute)
	if err := db.Model(&user).Updates(map[string]interface{}{
		"password_reset_token":   token,
		"password_reset_expires": expires,
	}).Error; err != nil {
		log.Printf("Error storing reset token for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, genericMessage, nil)
	}

	utils.SendPasswordResetEmail(user.Email, user.Name, token)

	return middleware.JsonResponse(c, fiber.StatusOK, true, genericMessage, nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("password_reset_token = ? AND is_deleted = ?",
		strings.TrimSpace(reqData.Token), false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset token!", nil)
	}

	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":               string(hashedPassword),
		"password_reset_token":   "",
		"password_reset_expires": nil,
		"must_change_password":   false,
	}).Error; err != nil {
		log.Printf("Error resetting password for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
