package inviteValidator

import (
	"basic/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateInvite validator middleware
func CreateInvite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email     string `json:"email"`
			CourseIDs []uint `json:"courseIds"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Email
		if reqData.Email == "" || validate.Var(reqData.Email, "email") != nil {
			errors["email"] = "Invalid email!"
		}

		// Validate Courses
		if len(reqData.CourseIDs) == 0 {
			errors["courseIds"] = "At least one course is required!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated invite to the next middleware
		c.Locals("validatedInvite", reqData)
		return c.Next()
	}
}
