package notificationValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// SendNotification validates a notification send request. The audience is
// derived from the type server-side; clients never choose a role.
func SendNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type       string `json:"type"`
			To         string `json:"to"`
			Message    string `json:"message"`
			CourseName string `json:"course_name"`
			RelatedID  uint   `json:"related_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Type = strings.TrimSpace(reqData.Type)
		reqData.Message = strings.TrimSpace(reqData.Message)

		if reqData.Type == "" {
			errors["type"] = "Type is required!"
		}
		if reqData.Message == "" {
			errors["message"] = "Message is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}

// NotificationID validates the :id path parameter
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
		}

		c.Locals("notificationID", id)
		return c.Next()
	}
}
