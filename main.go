package main

import (
	"basic/config"
	"basic/database"
	authRoutes "basic/routers/authRoutes"
	courseRoutes "basic/routers/courseRoutes"
	inviteRoutes "basic/routers/inviteRoutes"
	reviewRoutes "basic/routers/reviewRoutes"
	settingsRoutes "basic/routers/settingsRoutes"
	uploadRoutes "basic/routers/uploadRoutes"
	userRoutes "basic/routers/userRoutes"
	"basic/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.SeedDefaultAdmin()

	scheduler := utils.InitializeInviteScheduler()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 52 * 1024 * 1024, // video uploads arrive base64 encoded
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	inviteRoutes.SetupInviteRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)
	settingsRoutes.SetupSettingsRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
