package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateVideo validates admin video creation. No order field is accepted:
// ordering is server-assigned.
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchID      uint   `json:"batch_id"`
			Title        string `json:"title"`
			Description  string `json:"description"`
			VideoURL     string `json:"video_url"`
			Duration     string `json:"duration"`
			ThumbnailURL string `json:"thumbnail"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		if reqData.BatchID == 0 {
			errors["batch_id"] = "Batch is required!"
		}
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.VideoURL == "" {
			errors["video_url"] = "Video URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo validates admin video updates (all fields optional)
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			VideoURL     string `json:"video_url"`
			Duration     string `json:"duration"`
			ThumbnailURL string `json:"thumbnail"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedVideoUpdate", reqData)
		return c.Next()
	}
}

// VideoID validates the :id path parameter
func VideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video ID!", nil)
		}

		c.Locals("videoID", id)
		return c.Next()
	}
}
