package uploadValidator

import (
	"basic/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateUpload validator middleware
func CreateUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Filename string `json:"filename"`
			Type     string `json:"type"`
			Base64   string `json:"base64"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Filename) == "" {
			errors["filename"] = "Filename is required!"
		}

		switch reqData.Type {
		case "image", "video", "document":
		default:
			errors["type"] = "Type must be image, video or document!"
		}

		if strings.TrimSpace(reqData.Base64) == "" {
			errors["base64"] = "File content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpload", reqData)
		return c.Next()
	}
}
