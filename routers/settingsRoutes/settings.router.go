package settingsRoutes

import (
	settingsControllers "basic/controllers/settings"
	"basic/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App) {
	settingsGroup := app.Group("/settings")

	settingsGroup.Get("/", settingsControllers.GetSettings)
	settingsGroup.Put("/", middleware.JWTMiddleware, middleware.AdminOnly, settingsControllers.UpdateSettings)
	settingsGroup.Post("/reset", middleware.JWTMiddleware, middleware.AdminOnly, settingsControllers.ResetSettings)
}
