package courseController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
)

// GetBatchVideos lists a batch's videos in playback order. Students can only
// read batches they are enrolled in; admins see everything.
func GetBatchVideos(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	batchID := c.QueryInt("batchId", 0)
	if batchID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "batchId query parameter is required!", nil)
	}

	db := database.Database.Db

	if role != models.RoleAdmin {
		var membership courseModels.EnrolledCourse
		if err := db.Where("user_id = ? AND batch_id = ? AND is_deleted = ?", userID, batchID, false).First(&membership).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this batch!", nil)
		}
	}

	var videos []courseModels.Video
	err := db.Where("batch_id = ? AND is_deleted = ?", batchID, false).
		Order("order_index asc").
		Find(&videos).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", videos)
}

// CreateVideo appends a video to a batch (admin only). The playback order is
// computed inside the insert transaction as max existing order + 1, so a
// deleted middle video never gets its slot reused.
func CreateVideo(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVideo").(*struct {
		BatchID      uint   `json:"batch_id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		VideoURL     string `json:"video_url"`
		Duration     string `json:"duration"`
		ThumbnailURL string `json:"thumbnail"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	var video courseModels.Video

	err := db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&courseModels.Video{}).
			Select("COALESCE(MAX(order_index), 0)").
			Where("batch_id = ?", batch.ID).
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		video = courseModels.Video{
			CourseID:     batch.CourseID,
			BatchID:      batch.ID,
			Title:        reqData.Title,
			Description:  reqData.Description,
			VideoURL:     reqData.VideoURL,
			Duration:     reqData.Duration,
			OrderIndex:   maxOrder + 1,
			ThumbnailURL: reqData.ThumbnailURL,
		}
		return tx.Create(&video).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// UpdateVideo updates provided fields of a video (admin only). The order
// index is server-owned and never client-writable.
func UpdateVideo(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideoUpdate").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		VideoURL     string `json:"video_url"`
		Duration     string `json:"duration"`
		ThumbnailURL string `json:"thumbnail"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.Description != "" {
		video.Description = reqData.Description
	}
	if reqData.VideoURL != "" {
		video.VideoURL = reqData.VideoURL
	}
	if reqData.Duration != "" {
		video.Duration = reqData.Duration
	}
	if reqData.ThumbnailURL != "" {
		video.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// DeleteVideo soft deletes a video (admin only). Remaining videos keep their
// order indexes; the gap is intentional.
func DeleteVideo(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	video.IsDeleted = true
	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}
