package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateCourse validates admin course creation
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Instructor  string `json:"instructor"`
			Category    string `json:"category"`
			Duration    string `json:"duration"`
			Level       string `json:"level"`
			Description string `json:"description"`
			ImageURL    string `json:"img"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Instructor = strings.TrimSpace(reqData.Instructor)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Instructor == "" {
			errors["instructor"] = "Instructor is required!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates admin course updates (all fields optional)
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Instructor  string `json:"instructor"`
			Category    string `json:"category"`
			Duration    string `json:"duration"`
			Level       string `json:"level"`
			Description string `json:"description"`
			ImageURL    string `json:"img"`
			Status      string `json:"status"`
			Rating      *uint  `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != "" {
			switch reqData.Status {
			case "DRAFT", "ACTIVE", "INACTIVE":
			default:
				errors["status"] = "Status must be DRAFT, ACTIVE or INACTIVE!"
			}
		}

		if reqData.Rating != nil && *reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}
