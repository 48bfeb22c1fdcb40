package inviteController

import (
	"basic/config"
	"basic/database"
	"basic/middleware"
	"basic/models"
	courseModels "basic/models/course"
	"basic/utils"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ValidateInvite returns the invite only if code and email match a PENDING
// record that has not expired. An invite found past its expiry is flipped to
// EXPIRED before reporting invalid, so repeated validation converges.
func ValidateInvite(db *gorm.DB, code, email string) *models.Invite {
	var invite models.Invite
	err := db.Where("code = ? AND email = ? AND status = ?",
		code, strings.ToLower(strings.TrimSpace(email)), models.InviteStatusPending).
		First(&invite).Error
	if err != nil {
		return nil
	}

	if time.Now().After(invite.ExpiresAt) {
		if err := db.Model(&invite).Update("status", models.InviteStatusExpired).Error; err != nil {
			log.Printf("Error expiring invite %s: %v", invite.Code, err)
		}
		return nil
	}

	return &invite
}

// ConsumeInvite transitions an invite from PENDING to USED. The update is
// conditioned on the current status so concurrent consumers cannot both win;
// the caller learns from the return value whether it held the winning write.
func ConsumeInvite(db *gorm.DB, code string, userID uint) bool {
	now := time.Now()
	result := db.Model(&models.Invite{}).
		Where("code = ? AND status = ?", code, models.InviteStatusPending).
		Updates(map[string]interface{}{
			"status":     models.InviteStatusUsed,
			"used_by_id": userID,
			"used_at":    now,
		})

	if result.Error != nil {
		log.Printf("Error consuming invite %s: %v", code, result.Error)
		return false
	}
	return result.RowsAffected > 0
}

func CreateInvite(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedInvite").(*struct {
		Email     string `json:"email"`
		CourseIDs []uint `json:"courseIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	// At most one pending invite per email
	var existing models.Invite
	if err := db.Where("email = ? AND status = ?", email, models.InviteStatusPending).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A pending invite already exists for this email!", nil)
	}

	code := utils.GenerateInviteCode()
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate invite code!", nil)
	}

	invite := models.Invite{
		Code:        code,
		Email:       email,
		CourseIDs:   reqData.CourseIDs,
		Status:      models.InviteStatusPending,
		CreatedByID: adminID,
		ExpiresAt:   time.Now().AddDate(0, 0, config.AppConfig.InviteExpiryDays),
	}

	if err := db.Create(&invite).Error; err != nil {
		log.Printf("Error saving invite: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create invite!", nil)
	}

	// Best effort: invite creation succeeds even if the email does not go out
	go func(email, code string, courseIDs []uint) {
		if err := utils.SendInviteEmail(email, code, courseTitles(courseIDs)); err != nil {
			log.Printf("Failed to send invite email to %s: %v", email, err)
		}
	}(email, code, reqData.CourseIDs)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Invite created successfully.", invite)
}

func ListInvites(c *fiber.Ctx) error {
	var invites []models.Invite
	if err := database.Database.Db.Order("created_at desc").Find(&invites).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invites!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invites fetched successfully.", invites)
}

func ListPendingInvites(c *fiber.Ctx) error {
	var invites []models.Invite
	if err := database.Database.Db.Where("status = ?", models.InviteStatusPending).
		Order("created_at desc").Find(&invites).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch invites!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending invites fetched successfully.", invites)
}

// CancelInvite cancels a PENDING invite. Used or already cancelled invites
// report not found.
func CancelInvite(c *fiber.Ctx) error {
	code := c.Params("code")

	result := database.Database.Db.Model(&models.Invite{}).
		Where("code = ? AND status = ?", code, models.InviteStatusPending).
		Update("status", models.InviteStatusCancelled)

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel invite!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invite not found or already used!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite cancelled successfully.", nil)
}

func ResendInvite(c *fiber.Ctx) error {
	code := c.Params("code")
	db := database.Database.Db

	var invite models.Invite
	if err := db.Where("code = ? AND status = ?", code, models.InviteStatusPending).First(&invite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invite not found or already used!", nil)
	}

	if err := utils.SendInviteEmail(invite.Email, invite.Code, courseTitles(invite.CourseIDs)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resend invite email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invite resent to "+invite.Email, nil)
}

func courseTitles(courseIDs []uint) []string {
	if len(courseIDs) == 0 {
		return nil
	}

	var titles []string
	if err := database.Database.Db.Model(&courseModels.Course{}).
		Where("id IN ? AND is_deleted = ?", courseIDs, false).
		Pluck("title", &titles).Error; err != nil {
		log.Printf("Error fetching course titles: %v", err)
		return nil
	}
	return titles
}
