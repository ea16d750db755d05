package notificationRoutes

import (
	"github.com/gofiber/fiber/v2"

	notificationControllers "lms/controllers/notification"
	"lms/middleware"
	notificationValidators "lms/validators/notification"
)

func SetupNotificationRoutes(app *fiber.App) {
	notifGroup := app.Group("/notifications")

	notifGroup.Get("/", middleware.JWTMiddleware, notificationControllers.GetNotifications)
	notifGroup.Get("/count", middleware.JWTMiddleware, notificationControllers.GetNotificationCount)
	notifGroup.Post("/", middleware.JWTMiddleware, notificationValidators.SendNotification(), notificationControllers.SendNotification)
	notifGroup.Put("/:id/read", middleware.JWTMiddleware, notificationValidators.NotificationID(), notificationControllers.MarkNotificationRead)
	notifGroup.Delete("/:id", middleware.JWTMiddleware, notificationValidators.NotificationID(), notificationControllers.DeleteNotification)
}
