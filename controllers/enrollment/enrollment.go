package enrollmentController

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	notificationController "lms/controllers/notification"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// CreateEnrollmentRequest handles the public enroll form. The server stamps
// the submission date; duplicate pending requests for the same email and
// course are rejected.
func CreateEnrollmentRequest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		CourseName string `json:"course_name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Duplicate-submission guard
	var existing courseModels.EnrollmentRequest
	if err := db.Where("email = ? AND course_name = ? AND is_approved = ? AND is_deleted = ?",
		reqData.Email, reqData.CourseName, false, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An enrollment request for this course is already pending!", nil)
	}

	request := courseModels.EnrollmentRequest{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Phone:      reqData.Phone,
		CourseName: reqData.CourseName,
		FilledDate: time.Now(),
	}

	// Resolve the course id when the title matches a catalog entry
	var course courseModels.Course
	if err := db.Where("title = ? AND is_deleted = ?", reqData.CourseName, false).First(&course).Error; err == nil {
		request.CourseID = course.ID
	}

	if err := db.Create(&request).Error; err != nil {
		log.Printf("Error saving enrollment request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit enrollment request!", nil)
	}

	message := fmt.Sprintf("%s requested enrollment in %s", request.Name, request.CourseName)
	if _, err := notificationController.PushNotification(db, models.NotifyEnrollmentReceived, request.Email, "", message, request.CourseName, request.ID); err != nil {
		log.Printf("Error pushing enrollment notification: %v", err)
	}

	go func(r courseModels.EnrollmentRequest) {
		if err := utils.SendEnrollmentReceivedEmail(r.Name, r.Email, r.Phone, r.CourseName, r.FilledDate); err != nil {
			log.Printf("Error sending enrollment email: %v", err)
		}
	}(request)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", request)
}

// GetPendingEnrollments lists pending requests, newest first (admin only)
func GetPendingEnrollments(c *fiber.Ctx) error {
	var requests []courseModels.EnrollmentRequest
	err := database.Database.Db.
		Where("is_approved = ? AND is_deleted = ?", false, false).
		Order("filled_date desc").
		Find(&requests).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment requests fetched successfully!", requests)
}

// ApproveEnrollment converts a pending request into a user account plus an
// active course membership. All writes run in one transaction: mark request
// approved, create user, create enrolled course, retire the request. A
// request that is already approved comes back 409 and nothing is written.
func ApproveEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedApproval").(*struct {
		Username string `json:"username"`
		Password string `json:"password"`
		BatchID  uint   `json:"batch_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request courseModels.EnrollmentRequest
	if err := db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}
	if request.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment request is already approved!", nil)
	}

	var batch courseModels.Batch
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BatchID, false).First(&batch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", batch.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course for this batch not found!", nil)
	}

	// The batch must belong to the course the student asked for
	if request.CourseID != 0 && request.CourseID != batch.CourseID {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Batch does not belong to the requested course!", nil)
	}

	// Credential collision checks before any write
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already taken!", nil)
	}
	if err := db.Where("email = ?", request.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A user with this email already exists!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	var newUser models.User
	var enrolled courseModels.EnrolledCourse

	err = db.Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction so two admins cannot approve the
		// same request twice.
		var pending courseModels.EnrollmentRequest
		if err := tx.Where("id = ? AND is_approved = ? AND is_deleted = ?", enrollmentID, false, false).First(&pending).Error; err != nil {
			return err
		}

		pending.IsApproved = true
		pending.Username = reqData.Username
		if err := tx.Save(&pending).Error; err != nil {
			return err
		}

		newUser = models.User{
			Name:     pending.Name,
			Email:    pending.Email,
			Phone:    pending.Phone,
			Username: reqData.Username,
			Password: string(hashedPassword),
			Role:     models.RoleUser,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		enrolled = courseModels.EnrolledCourse{
			UserID:       newUser.ID,
			Email:        pending.Email,
			CourseID:     course.ID,
			CourseName:   course.Title,
			BatchID:      batch.ID,
			EnrolledDate: time.Now(),
			CourseImg:    course.ImageURL,
		}
		if err := tx.Create(&enrolled).Error; err != nil {
			return err
		}

		// Retire the request so it drops off the pending list
		pending.IsDeleted = true
		return tx.Save(&pending).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment request was already processed!", nil)
		}
		log.Printf("Error approving enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}

	message := fmt.Sprintf("Your enrollment in %s has been approved. Batch: %s", course.Title, batch.Name)
	if _, err := notificationController.PushNotification(db, models.NotifyEnrollmentApproved, "", newUser.Username, message, course.Title, enrolled.ID); err != nil {
		log.Printf("Error pushing approval notification: %v", err)
	}

	go func(name, email, username, password, courseName, batchName string) {
		if err := utils.SendWelcomeEmail(name, email, username, password, courseName, batchName); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}(newUser.Name, newUser.Email, reqData.Username, reqData.Password, course.Title, batch.Name)

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment approved successfully!", fiber.Map{
		"user":            newUser,
		"enrolled_course": enrolled,
	})
}

// RejectEnrollment soft deletes a pending request (admin only)
func RejectEnrollment(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	var request courseModels.EnrollmentRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	}
	if request.IsApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Approved requests cannot be rejected!", nil)
	}

	request.IsDeleted = true
	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete enrollment request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request deleted successfully!", nil)
}
