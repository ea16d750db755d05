package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateBatch validates admin batch creation
func CreateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint      `json:"course_id"`
			BatchNumber int       `json:"batch_number"`
			Name        string    `json:"name"`
			StartDate   time.Time `json:"start_date"`
			EndDate     time.Time `json:"end_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course is required!"
		}
		if reqData.BatchNumber < 1 {
			errors["batch_number"] = "Batch number must be greater than 0!"
		}
		if reqData.Name == "" {
			errors["name"] = "Batch name is required!"
		}
		if reqData.StartDate.IsZero() {
			errors["start_date"] = "Start date is required!"
		}
		if reqData.EndDate.IsZero() {
			errors["end_date"] = "End date is required!"
		} else if !reqData.StartDate.IsZero() && reqData.EndDate.Before(reqData.StartDate) {
			errors["end_date"] = "End date must be after the start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", reqData)
		return c.Next()
	}
}

// UpdateBatch validates admin batch updates (all fields optional)
func UpdateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchNumber int        `json:"batch_number"`
			Name        string     `json:"name"`
			StartDate   *time.Time `json:"start_date"`
			EndDate     *time.Time `json:"end_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.StartDate != nil && reqData.EndDate != nil && reqData.EndDate.Before(*reqData.StartDate) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"end_date": "End date must be after the start date!",
			})
		}

		c.Locals("validatedBatchUpdate", reqData)
		return c.Next()
	}
}

// BatchID validates the :id path parameter
func BatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid batch ID!", nil)
		}

		c.Locals("batchID", id)
		return c.Next()
	}
}
