package inviteRoutes

import (
	inviteControllers "basic/controllers/invite"
	"basic/middleware"
	inviteValidators "basic/validators/invite"

	"github.com/gofiber/fiber/v2"
)

func SetupInviteRoutes(app *fiber.App) {
	inviteGroup := app.Group("/invites")

	inviteGroup.Post("/", inviteValidators.CreateInvite(), middleware.JWTMiddleware, middleware.AdminOnly, inviteControllers.CreateInvite)
	inviteGroup.Get("/", middleware.JWTMiddleware, middleware.AdminOnly, inviteControllers.ListInvites)
	inviteGroup.Get("/pending", middleware.JWTMiddleware, middleware.AdminOnly, inviteControllers.ListPendingInvites)
	inviteGroup.Delete("/:code", middleware.JWTMiddleware, middleware.AdminOnly, inviteControllers.CancelInvite)
	inviteGroup.Post("/:code/resend", middleware.JWTMiddleware, middleware.AdminOnly, inviteControllers.ResendInvite)
}
