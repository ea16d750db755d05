package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	authRoutes "lms/routers/authRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	notificationRoutes "lms/routers/notificationRoutes"
	"lms/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded submission files to authenticated users only
	app.Use("/uploads", middleware.JWTMiddleware)
	app.Static("/uploads", "./uploads")

	authRoutes.SetupAuthRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)

	utils.InitializeMaintenanceScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
