package courseValidator

import (
	"basic/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string         `json:"title"`
			Subtitle     string         `json:"subtitle"`
			Description  string         `json:"description"`
			Instructor   string         `json:"instructor"`
			ImageURL     string         `json:"imageUrl"`
			ThumbnailURL string         `json:"thumbnailUrl"`
			Benefits     datatypes.JSON `json:"benefits"`
			IsActive     *bool          `json:"isActive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        *string        `json:"title"`
			Subtitle     *string        `json:"subtitle"`
			Description  *string        `json:"description"`
			Instructor   *string        `json:"instructor"`
			ImageURL     *string        `json:"imageUrl"`
			ThumbnailURL *string        `json:"thumbnailUrl"`
			Benefits     datatypes.JSON `json:"benefits"`
			IsActive     *bool          `json:"isActive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// SaveModule validator middleware, shared by create and update
func SaveModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"orderIndex"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// SaveLesson validator middleware, shared by create and update
func SaveLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		switch reqData.ContentType {
		case "", "VIDEO", "TEXT", "QUIZ":
		default:
			errors["contentType"] = "Content type must be VIDEO, TEXT or QUIZ!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
