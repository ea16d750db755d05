package notificationController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// PushNotification stores a typed notification addressed by the server-side
// audience registry and forwards it to the webhook relay if one is
// configured. Unknown types are rejected so clients can never smuggle a
// message into the wrong mailbox.
func PushNotification(db *gorm.DB, notifType, from, to, message, courseName string, relatedID uint) (models.Notification, error) {
	forRole, ok := models.NotificationAudience[notifType]
	if !ok {
		return models.Notification{}, gorm.ErrInvalidData
	}

	notification := models.Notification{
		Type:       notifType,
		FromUser:   from,
		ToUser:     to,
		Message:    message,
		CourseName: courseName,
		RelatedID:  relatedID,
		ForRole:    forRole,
		Status:     models.NotificationUnread,
	}

	if err := db.Create(&notification).Error; err != nil {
		return models.Notification{}, err
	}

	utils.RelayNotification(notification)
	return notification, nil
}

// SendNotification creates a notification from a validated request body
func SendNotification(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedNotification").(*struct {
		Type       string `json:"type"`
		To         string `json:"to"`
		Message    string `json:"message"`
		CourseName string `json:"course_name"`
		RelatedID  uint   `json:"related_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	from, _ := c.Locals("username").(string)

	notification, err := PushNotification(database.Database.Db, reqData.Type, from, reqData.To, reqData.Message, reqData.CourseName, reqData.RelatedID)
	if err != nil {
		if err == gorm.ErrInvalidData {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Unknown notification type!", nil)
		}
		log.Printf("Error creating notification: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Notification sent successfully!", notification)
}

// GetNotifications lists the caller's mailbox: rows matching their role whose
// recipient is them or a role-wide broadcast, newest first.
func GetNotifications(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	var notifications []models.Notification
	err := database.Database.Db.
		Where("for_role = ? AND is_deleted = ?", role, false).
		Where("to_user = ? OR to_user = ''", username).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// GetNotificationCount returns the caller's unread badge count
func GetNotificationCount(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	var count int64
	err := database.Database.Db.Model(&models.Notification{}).
		Where("for_role = ? AND status = ? AND is_deleted = ?", role, models.NotificationUnread, false).
		Where("to_user = ? OR to_user = ''", username).
		Count(&count).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched successfully!", fiber.Map{
		"unread": count,
	})
}

// MarkNotificationRead marks one notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	err := database.Database.Db.
		Where("id = ? AND for_role = ? AND is_deleted = ?", notificationID, role, false).
		Where("to_user = ? OR to_user = ''", username).
		First(&notification).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.Status = models.NotificationRead
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// DeleteNotification soft deletes one notification from the caller's mailbox
func DeleteNotification(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	err := database.Database.Db.
		Where("id = ? AND for_role = ? AND is_deleted = ?", notificationID, role, false).
		Where("to_user = ? OR to_user = ''", username).
		First(&notification).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsDeleted = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted successfully!", nil)
}
