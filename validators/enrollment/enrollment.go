package enrollmentValidator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type enrollmentRequestBody struct {
	Name       string `json:"name" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	CourseName string `json:"course_name" validate:"required"`
}

// CreateEnrollment validates the public enroll form. Tag validation catches
// the shape problems, the phone regex the format.
func CreateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(enrollmentRequestBody)

		if err := c.BodyParser(body); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(body.Email)
		body.Phone = strings.TrimSpace(body.Phone)
		body.CourseName = strings.TrimSpace(body.CourseName)

		errors := make(map[string]string)

		if err := validator.New().Struct(body); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Name":
					errors["name"] = "Name is required and must be at least 3 characters long!"
				case "Email":
					errors["email"] = "A valid email is required!"
				case "Phone":
					errors["phone"] = "Phone number is required!"
				case "CourseName":
					errors["course_name"] = "Course name is required!"
				}
			}
		}

		if body.Phone != "" && !phoneRegex.MatchString(body.Phone) {
			errors["phone"] = "Phone number must be 10-15 digits!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := new(struct {
			Name       string `json:"name"`
			Email      string `json:"email"`
			Phone      string `json:"phone"`
			CourseName string `json:"course_name"`
		})
		reqData.Name = body.Name
		reqData.Email = body.Email
		reqData.Phone = body.Phone
		reqData.CourseName = body.CourseName

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// EnrollmentID validates the :id path parameter
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// ApproveEnrollment validates the admin approval payload. Username, password
// and batch are all mandatory; without them no write happens.
func ApproveEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
			BatchID  uint   `json:"batch_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Username = strings.TrimSpace(reqData.Username)

		if reqData.Username == "" {
			errors["username"] = "Username is required!"
		} else if len(reqData.Username) < 3 {
			errors["username"] = "Username must be at least 3 characters long!"
		}

		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		} else if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		if reqData.BatchID == 0 {
			errors["batch_id"] = "Batch is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApproval", reqData)
		return c.Next()
	}
}

// EnrolledCourseID validates the :id path parameter for enrolled courses
func EnrolledCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrolled course ID!", nil)
		}

		c.Locals("enrolledID", id)
		return c.Next()
	}
}

// UpdateEnrolledCourse validates a batch reassignment
func UpdateEnrolledCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchID uint `json:"batch_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.BatchID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"batch_id": "Batch is required!",
			})
		}

		c.Locals("validatedEnrolledUpdate", reqData)
		return c.Next()
	}
}
