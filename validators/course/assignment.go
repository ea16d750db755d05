package courseValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateAssignment validates admin assignment creation
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchID     uint      `json:"batch_id"`
			Title       string    `json:"title"`
			Description string    `json:"description"`
			DueDate     time.Time `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.BatchID == 0 {
			errors["batch_id"] = "Batch is required!"
		}
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.DueDate.IsZero() {
			errors["due_date"] = "Due date is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// UpdateAssignment validates admin assignment updates (all fields optional)
func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			DueDate     *time.Time `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedAssignmentUpdate", reqData)
		return c.Next()
	}
}

// AssignmentID validates the :id path parameter
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
		}

		c.Locals("assignmentID", id)
		return c.Next()
	}
}
