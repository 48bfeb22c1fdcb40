package uploadRoutes

import (
	uploadControllers "basic/controllers/upload"
	"basic/middleware"
	uploadValidators "basic/validators/upload"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	uploadGroup := app.Group("/uploads")

	uploadGroup.Post("/", uploadValidators.CreateUpload(), middleware.JWTMiddleware, uploadControllers.CreateUpload)
	uploadGroup.Get("/:fileId", uploadControllers.GetFile)
	uploadGroup.Get("/:fileId/info", uploadControllers.GetFileInfo)
	uploadGroup.Delete("/:fileId", middleware.JWTMiddleware, middleware.AdminOnly, uploadControllers.DeleteFile)
}
