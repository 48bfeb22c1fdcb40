package userRoutes

import (
	userControllers "basic/controllers/user"
	"basic/middleware"
	userValidators "basic/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/me", middleware.JWTMiddleware, userControllers.GetMe)
	userGroup.Put("/me", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateMe)
	userGroup.Get("/me/courses", middleware.JWTMiddleware, userControllers.GetMyCourses)
	userGroup.Get("/me/progress", middleware.JWTMiddleware, userControllers.GetMyProgress)
	userGroup.Put("/me/lessons/:lessonId/complete", middleware.JWTMiddleware, userControllers.MarkLessonComplete)
	userGroup.Put("/me/courses/:courseId/progress", userValidators.UpdateProgress(), middleware.JWTMiddleware, userControllers.UpdateCourseProgress)
	userGroup.Post("/change-password", userValidators.ChangePassword(), middleware.JWTMiddleware, userControllers.ChangePassword)

	userGroup.Get("/students", middleware.JWTMiddleware, middleware.AdminOnly, userControllers.ListStudents)
	userGroup.Get("/admins", middleware.JWTMiddleware, middleware.AdminOnly, userControllers.ListAdmins)
	userGroup.Post("/admins", userValidators.CreateAdmin(), middleware.JWTMiddleware, middleware.AdminOnly, userControllers.CreateAdmin)
	userGroup.Get("/:id", middleware.JWTMiddleware, middleware.AdminOnly, userControllers.GetUser)
	userGroup.Put("/:id", userValidators.UpdateProfile(), middleware.JWTMiddleware, middleware.AdminOnly, userControllers.UpdateUser)
	userGroup.Put("/:id/courses", userValidators.UpdateCourses(), middleware.JWTMiddleware, middleware.AdminOnly, userControllers.UpdateUserCourses)
	userGroup.Put("/:id/active", userValidators.SetActiveStatus(), middleware.JWTMiddleware, middleware.AdminOnly, userControllers.SetActiveStatus)
	userGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, userControllers.DeleteUser)
}
