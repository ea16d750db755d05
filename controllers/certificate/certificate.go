package certificateController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms/config"
	notificationController "lms/controllers/notification"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// RequestCertificate opens a certificate request for one of the caller's
// enrolled courses. Requests are idempotent per (user, course): a second
// request comes back 409 whatever state the first one is in.
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCertificateRequest").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var membership courseModels.EnrolledCourse
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&membership).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var existing courseModels.CertificateRequest
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&existing).Error; err == nil {
		if existing.Status == courseModels.CertificateIssued {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", fiber.Map{
				"certificate": existing,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
	}

	request := courseModels.CertificateRequest{
		UserID:      userID,
		UserName:    user.Username,
		CourseID:    membership.CourseID,
		CourseName:  membership.CourseName,
		Status:      courseModels.CertificateRequested,
		RequestedAt: time.Now(),
	}

	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	message := fmt.Sprintf("%s requested a certificate for %s", user.Username, request.CourseName)
	if _, err := notificationController.PushNotification(db, models.NotifyCertificateRequested, user.Username, "", message, request.CourseName, request.ID); err != nil {
		log.Printf("Error pushing certificate notification: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// GetMyCertificates lists the caller's certificate requests across all states
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.CertificateRequest
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("requested_at desc").
		Find(&certificates).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// GetCertificateRequests lists requests for the admin queue, optionally
// filtered by status
func GetCertificateRequests(c *fiber.Ctx) error {
	query := database.Database.Db.Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}

	var requests []courseModels.CertificateRequest
	if err := query.Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate requests fetched successfully!", requests)
}

// ApproveCertificate issues a requested certificate: stamps the issue date,
// assigns a certificate number and download URL, and notifies the student.
func ApproveCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(int)

	db := database.Database.Db

	var request courseModels.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != courseModels.CertificateRequested {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request is not pending!", nil)
	}

	now := time.Now()
	request.Status = courseModels.CertificateIssued
	request.IssuedAt = &now
	request.ApprovedBy = &adminID
	request.CertificateNumber = uuid.NewString()
	request.DownloadURL = fmt.Sprintf("%s/%s.pdf", config.AppConfig.CertificateBaseURL, request.CertificateNumber)

	if err := db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}

	message := fmt.Sprintf("Your certificate for %s is ready to download", request.CourseName)
	if _, err := notificationController.PushNotification(db, models.NotifyCertificateApproved, "", request.UserName, message, request.CourseName, request.ID); err != nil {
		log.Printf("Error pushing certificate notification: %v", err)
	}

	var student models.User
	if err := db.Where("id = ?", request.UserID).First(&student).Error; err == nil {
		go func(name, email, courseName, number, url string) {
			if err := utils.SendCertificateIssuedEmail(name, email, courseName, number, url); err != nil {
				log.Printf("Error sending certificate email: %v", err)
			}
		}(student.Name, student.Email, request.CourseName, request.CertificateNumber, request.DownloadURL)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved and issued!", request)
}

// RejectCertificate soft deletes a pending request with a reason (admin only)
func RejectCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(int)

	reqData, _ := c.Locals("validatedCertificateReject").(*struct {
		Reason string `json:"reason"`
	})

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", certificateID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status == courseModels.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Issued certificates cannot be rejected!", nil)
	}

	request.Status = courseModels.CertificateRejected
	if reqData != nil {
		request.RejectionReason = reqData.Reason
	}
	request.IsDeleted = true
	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", nil)
}
