package uploadController

import (
	"basic/database"
	"basic/middleware"
	"basic/models"
	"encoding/base64"
	"log"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxImageSize = 5 * 1024 * 1024
	maxMediaSize = 50 * 1024 * 1024
)

var dataURIPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+/-]+);base64,(.+)$`)

var allowedMimeTypes = map[string]map[string]bool{
	"image": {
		"image/jpeg":    true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
	},
	"video": {
		"video/mp4":       true,
		"video/webm":      true,
		"video/quicktime": true,
	},
	"document": {
		"application/pdf": true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
}

// decodedSize derives the byte size from the base64 payload without decoding.
func decodedSize(payload string) int64 {
	length := int64(len(payload))
	padding := int64(0)
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}
	return length*3/4 - padding
}

// CreateUpload stores a base64 data URI after checking MIME type and size
// against the limits for the declared upload type.
func CreateUpload(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpload").(*struct {
		Filename string `json:"filename"`
		Type     string `json:"type"`
		Base64   string `json:"base64"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	matches := dataURIPattern.FindStringSubmatch(reqData.Base64)
	if matches == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid file data!", nil)
	}
	mimeType, payload := matches[1], matches[2]

	if !allowedMimeTypes[reqData.Type][mimeType] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File type not allowed!", nil)
	}

	size := decodedSize(payload)
	limit := int64(maxMediaSize)
	if reqData.Type == "image" {
		limit = maxImageSize
	}
	if size > limit {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is too large!", nil)
	}

	upload := models.Upload{
		FileID:       uuid.NewString(),
		Filename:     reqData.Filename,
		MimeType:     mimeType,
		Base64Data:   payload,
		Size:         size,
		Type:         reqData.Type,
		UploadedByID: &userId,
	}

	if err := database.Database.Db.Create(&upload).Error; err != nil {
		log.Printf("Error saving upload to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully.", fiber.Map{
		"fileId":   upload.FileID,
		"url":      "/uploads/" + upload.FileID,
		"filename": upload.Filename,
		"mimeType": upload.MimeType,
		"size":     upload.Size,
	})
}

// GetFile streams the decoded bytes with the stored content type.
func GetFile(c *fiber.Ctx) error {
	fileId := c.Params("fileId")

	var upload models.Upload
	if err := database.Database.Db.Where("file_id = ?", fileId).First(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}

	data, err := base64.StdEncoding.DecodeString(upload.Base64Data)
	if err != nil {
		log.Printf("Error decoding upload %s: %v", upload.FileID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}

	c.Set("Content-Type", upload.MimeType)
	c.Set("Content-Disposition", `inline; filename="`+upload.Filename+`"`)
	return c.Send(data)
}

func GetFileInfo(c *fiber.Ctx) error {
	fileId := c.Params("fileId")

	var upload models.Upload
	if err := database.Database.Db.Where("file_id = ?", fileId).First(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File info fetched successfully.", fiber.Map{
		"fileId":   upload.FileID,
		"filename": upload.Filename,
		"mimeType": upload.MimeType,
		"size":     upload.Size,
		"type":     upload.Type,
		"url":      "/uploads/" + upload.FileID,
	})
}

func DeleteFile(c *fiber.Ctx) error {
	fileId := c.Params("fileId")

	result := database.Database.Db.Unscoped().
		Where("file_id = ?", fileId).Delete(&models.Upload{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete file!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File deleted successfully.", nil)
}
