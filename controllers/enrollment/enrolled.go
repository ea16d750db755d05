package enrollmentController

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	notificationController "lms/controllers/notification"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
)

// GetMyEnrolledCourses lists the caller's active course memberships
func GetMyEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.EnrolledCourse
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("enrolled_date desc").
		Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", enrollments)
}

// GetAllEnrolledCourses lists every active membership with per-course and
// per-batch counts for the admin drill-down view. An email query narrows the
// listing to one student's memberships.
func GetAllEnrolledCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}

	var enrollments []courseModels.EnrolledCourse
	if err := query.Order("enrolled_date desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}

	type countRow struct {
		ID    uint  `json:"id"`
		Count int64 `json:"count"`
	}

	var perCourse []countRow
	db.Model(&courseModels.EnrolledCourse{}).
		Select("course_id as id, count(*) as count").
		Where("is_deleted = ?", false).
		Group("course_id").
		Scan(&perCourse)

	var perBatch []countRow
	db.Model(&courseModels.EnrolledCourse{}).
		Select("batch_id as id, count(*) as count").
		Where("is_deleted = ?", false).
		Group("batch_id").
		Scan(&perBatch)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
		"enrollments":       enrollments,
		"per_course_counts": perCourse,
		"per_batch_counts":  perBatch,
	})
}

// UpdateEnrolledCourse reassigns a membership to another batch (admin only)
func UpdateEnrolledCourse(c *fiber.Ctx) error {
	enrolledID := c.Locals("enrolledID").(int)

	reqData, ok := c.Locals("validatedEnrolledUpdate").(*struct {
		BatchID uint `json:"batch_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrolled courseModels.EnrolledCourse
	if err := db.Where("id = ? AND is_deleted = ?", enrolledID, false).First(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrolled course not found!", nil)
	}

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	// Reassignment must stay within the same course
	if batch.CourseID != enrolled.CourseID {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Batch does not belong to this course!", nil)
	}

	enrolled.BatchID = batch.ID
	if err := db.Save(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrolled course!", nil)
	}

	// Tell the student which batch they now belong to
	var student models.User
	if err := db.Where("id = ?", enrolled.UserID).First(&student).Error; err == nil {
		message := fmt.Sprintf("You have been assigned to %s for %s", batch.Name, enrolled.CourseName)
		if _, err := notificationController.PushNotification(db, models.NotifyBatchAssigned, "", student.Username, message, enrolled.CourseName, enrolled.ID); err != nil {
			log.Printf("Error pushing batch assignment notification: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled course updated successfully!", enrolled)
}

// DeleteEnrolledCourse removes a membership (admin only)
func DeleteEnrolledCourse(c *fiber.Ctx) error {
	enrolledID := c.Locals("enrolledID").(int)

	var enrolled courseModels.EnrolledCourse
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrolledID, false).First(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrolled course not found!", nil)
	}

	enrolled.IsDeleted = true
	if err := database.Database.Db.Save(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrolled course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled course deleted successfully!", nil)
}
