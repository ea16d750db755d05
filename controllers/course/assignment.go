package courseController

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	notificationController "lms/controllers/notification"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// GetAssignments lists assignments, optionally filtered by courseId/batchId.
// Students only see assignments for batches they belong to.
func GetAssignments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	db := database.Database.Db
	query := db.Where("is_deleted = ?", false)

	if courseID := c.QueryInt("courseId", 0); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if batchID := c.QueryInt("batchId", 0); batchID > 0 {
		query = query.Where("batch_id = ?", batchID)
	}

	if role != models.RoleAdmin {
		var batchIDs []uint
		db.Model(&courseModels.EnrolledCourse{}).
			Where("user_id = ? AND is_deleted = ?", userID, false).
			Pluck("batch_id", &batchIDs)
		query = query.Where("batch_id IN ?", batchIDs)
	}

	var assignments []courseModels.Assignment
	if err := query.Order("due_date asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}

// CreateAssignment adds coursework to a batch and notifies its students
// (admin only)
func CreateAssignment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*struct {
		BatchID     uint      `json:"batch_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		DueDate     time.Time `json:"due_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	var course courseModels.Course
	db.Where("id = ?", batch.CourseID).First(&course)

	assignment := courseModels.Assignment{
		CourseID:    batch.CourseID,
		BatchID:     batch.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     reqData.DueDate,
	}

	if err := db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	// Fan out one mailbox row per student in the batch
	var members []courseModels.EnrolledCourse
	db.Where("batch_id = ? AND is_deleted = ?", batch.ID, false).Find(&members)
	message := fmt.Sprintf("New assignment in %s: %s (due %s)", course.Title, assignment.Title, assignment.DueDate.Format("02 Jan 2006"))
	for _, member := range members {
		var student models.User
		if err := db.Where("id = ?", member.UserID).First(&student).Error; err != nil {
			continue
		}
		if _, err := notificationController.PushNotification(db, models.NotifyAssignmentCreated, "", student.Username, message, course.Title, assignment.ID); err != nil {
			log.Printf("Error pushing assignment notification: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// UpdateAssignment updates provided fields of an assignment (admin only)
func UpdateAssignment(c *fiber.Ctx) error {
	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignmentUpdate").(*struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		assignment.Title = reqData.Title
	}
	if reqData.Description != "" {
		assignment.Description = reqData.Description
	}
	if reqData.DueDate != nil {
		assignment.DueDate = *reqData.DueDate
	}

	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment soft deletes an assignment (admin only)
func DeleteAssignment(c *fiber.Ctx) error {
	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	assignment.IsDeleted = true
	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// SubmitAssignment records a student's submission. One submission per
// student per assignment; the file can arrive as a multipart upload or as a
// pre-uploaded file URL.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var assignment courseModels.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	// Must be enrolled in the assignment's batch
	var membership courseModels.EnrolledCourse
	if err := db.Where("user_id = ? AND batch_id = ? AND is_deleted = ?", userID, assignment.BatchID, false).First(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this batch!", nil)
	}

	var existing courseModels.Submission
	if err := db.Where("assignment_id = ? AND user_id = ? AND is_deleted = ?", assignment.ID, userID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Assignment already submitted!", nil)
	}

	fileURL := c.FormValue("file_url")
	if file, err := c.FormFile("file"); err == nil {
		savedPath, err := utils.SaveUploadedFile(file, "./uploads/submissions")
		if err != nil {
			log.Printf("Error saving submission file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store submission file!", nil)
		}
		fileURL = utils.GetFileURL(savedPath)
	}
	if fileURL == "" {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "A file or file_url is required!", nil)
	}

	submission := courseModels.Submission{
		AssignmentID: assignment.ID,
		UserID:       userID,
		UserName:     user.Username,
		FileURL:      fileURL,
		SubmittedAt:  time.Now(),
	}

	if err := db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	message := fmt.Sprintf("%s submitted %s", user.Username, assignment.Title)
	if _, err := notificationController.PushNotification(db, models.NotifyAssignmentSubmitted, user.Username, "", message, "", submission.ID); err != nil {
		log.Printf("Error pushing submission notification: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// GetAssignmentSubmissions lists all submissions for one assignment
// (admin only)
func GetAssignmentSubmissions(c *fiber.Ctx) error {
	assignmentID := c.Locals("assignmentID").(int)

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submissions []courseModels.Submission
	err := database.Database.Db.
		Where("assignment_id = ? AND is_deleted = ?", assignment.ID, false).
		Order("submitted_at desc").
		Find(&submissions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", submissions)
}

// GetMySubmissions lists the caller's own submissions
func GetMySubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var submissions []courseModels.Submission
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("submitted_at desc").
		Find(&submissions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", submissions)
}
