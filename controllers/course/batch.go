package courseController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// batchWithCourse decorates a batch with its course title for display. The
// title is denormalized onto the response only; matching always uses the id.
type batchWithCourse struct {
	courseModels.Batch
	CourseName string `json:"course_name"`
}

// batchStatusFor derives the lifecycle status from the cohort dates
func batchStatusFor(start, end time.Time) string {
	now := time.Now()
	switch {
	case end.Before(now):
		return courseModels.BatchCompleted
	case start.Before(now):
		return courseModels.BatchOngoing
	default:
		return courseModels.BatchUpcoming
	}
}

// GetBatches lists batches, optionally filtered by courseId
func GetBatches(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if courseID := c.QueryInt("courseId", 0); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var batches []courseModels.Batch
	if err := query.Order("start_date desc").Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	result := make([]batchWithCourse, len(batches))
	for i, batch := range batches {
		var course courseModels.Course
		db.Where("id = ?", batch.CourseID).First(&course)
		result[i] = batchWithCourse{Batch: batch, CourseName: course.Title}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", result)
}

// CreateBatch adds a cohort to a course (admin only)
func CreateBatch(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatch").(*struct {
		CourseID    uint      `json:"course_id"`
		BatchNumber int       `json:"batch_number"`
		Name        string    `json:"name"`
		StartDate   time.Time `json:"start_date"`
		EndDate     time.Time `json:"end_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	batch := courseModels.Batch{
		CourseID:    course.ID,
		BatchNumber: reqData.BatchNumber,
		Name:        reqData.Name,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
		Status:      batchStatusFor(reqData.StartDate, reqData.EndDate),
	}

	if err := db.Create(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", batchWithCourse{
		Batch:      batch,
		CourseName: course.Title,
	})
}

// UpdateBatch updates provided fields of a batch (admin only)
func UpdateBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	var batch courseModels.Batch
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	reqData, ok := c.Locals("validatedBatchUpdate").(*struct {
		BatchNumber int        `json:"batch_number"`
		Name        string     `json:"name"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.BatchNumber > 0 {
		batch.BatchNumber = reqData.BatchNumber
	}
	if reqData.Name != "" {
		batch.Name = reqData.Name
	}
	if reqData.StartDate != nil {
		batch.StartDate = *reqData.StartDate
	}
	if reqData.EndDate != nil {
		batch.EndDate = *reqData.EndDate
	}
	// New dates take effect immediately instead of waiting for the nightly sweep
	if reqData.StartDate != nil || reqData.EndDate != nil {
		batch.Status = batchStatusFor(batch.StartDate, batch.EndDate)
	}

	if err := database.Database.Db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch updated successfully!", batch)
}

// DeleteBatch soft deletes a batch (admin only)
func DeleteBatch(c *fiber.Ctx) error {
	batchID := c.Locals("batchID").(int)

	db := database.Database.Db

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	// A batch with active members cannot disappear from under them
	var members int64
	db.Model(&courseModels.EnrolledCourse{}).
		Where("batch_id = ? AND is_deleted = ?", batch.ID, false).
		Count(&members)
	if members > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Batch has enrolled students and cannot be deleted!", nil)
	}

	batch.IsDeleted = true
	if err := db.Save(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch deleted successfully!", nil)
}
