package reviewRoutes

import (
	reviewControllers "basic/controllers/review"
	"basic/middleware"
	reviewValidators "basic/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/reviews")

	reviewGroup.Post("/", reviewValidators.CreateReview(), middleware.JWTMiddleware, reviewControllers.CreateReview)
	reviewGroup.Get("/", middleware.JWTMiddleware, middleware.AdminOnly, reviewControllers.ListAllReviews)
	reviewGroup.Get("/me", middleware.JWTMiddleware, reviewControllers.MyReviews)
	reviewGroup.Get("/course/:courseId", reviewControllers.ListCourseReviews)
	reviewGroup.Get("/course/:courseId/stats", reviewControllers.GetCourseReviewStats)
	reviewGroup.Put("/:id", reviewValidators.UpdateReview(), middleware.JWTMiddleware, reviewControllers.UpdateReview)
	reviewGroup.Delete("/:id", middleware.JWTMiddleware, reviewControllers.DeleteReview)
}
