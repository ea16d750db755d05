package certificateValidator

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// RequestCertificate validates a student certificate request
func RequestCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_id": "Course is required!",
			})
		}

		c.Locals("validatedCertificateRequest", reqData)
		return c.Next()
	}
}

// RejectCertificate validates the optional rejection reason
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		// Body is optional on reject
		_ = c.BodyParser(reqData)

		c.Locals("validatedCertificateReject", reqData)
		return c.Next()
	}
}

// CertificateID validates the :id path parameter
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
		}

		c.Locals("certificateID", id)
		return c.Next()
	}
}
