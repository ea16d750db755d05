package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)

	authGroup.Get("/activities", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, authValidators.ActivityList(), authControllers.ListUserActivities)
	authGroup.Post("/admin", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, authValidators.Signup(), authControllers.AddAdmin)
}
