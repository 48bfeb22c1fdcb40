package courseRoutes

import (
	courseControllers "basic/controllers/course"
	"basic/middleware"
	courseValidators "basic/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", courseControllers.ListCourses)
	courseGroup.Get("/with-ratings", courseControllers.ListCoursesWithRatings)
	courseGroup.Get("/admin", middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.ListCoursesAdmin)
	courseGroup.Post("/", courseValidators.CreateCourse(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.CreateCourse)

	courseGroup.Get("/:id", courseControllers.GetCourse)
	courseGroup.Put("/:id", courseValidators.UpdateCourse(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.DeleteCourse)

	courseGroup.Get("/:id/outline", middleware.JWTMiddleware, courseControllers.GetCourseOutline)
	courseGroup.Get("/:id/lessons/:lessonId", middleware.JWTMiddleware, courseControllers.GetLesson)

	courseGroup.Post("/:id/modules", courseValidators.SaveModule(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.CreateModule)
	courseGroup.Put("/:id/modules/:moduleId", courseValidators.SaveModule(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.UpdateModule)
	courseGroup.Delete("/:id/modules/:moduleId", middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.DeleteModule)

	courseGroup.Post("/:id/modules/:moduleId/lessons", courseValidators.SaveLesson(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.CreateLesson)
	courseGroup.Put("/:id/modules/:moduleId/lessons/:lessonId", courseValidators.SaveLesson(), middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.UpdateLesson)
	courseGroup.Delete("/:id/modules/:moduleId/lessons/:lessonId", middleware.JWTMiddleware, middleware.AdminOnly, courseControllers.DeleteLesson)
}
