package models

import "gorm.io/gorm"

// Notification is a mailbox row addressed to a username (or a whole role
// when ToUser is empty). The audience is decided server-side from the type
// registry, never by the client.
type Notification struct {
	gorm.Model
	Type       string `json:"type" gorm:"index;not null"`
	FromUser   string `json:"from"`
	ToUser     string `json:"to" gorm:"index"` // empty = broadcast to ForRole
	Message    string `json:"message"`
	CourseName string `json:"course_name"`
	RelatedID  uint   `json:"related_id"`
	ForRole    string `json:"for_role" gorm:"index;not null"` // ADMIN, USER
	Status     string `json:"status" gorm:"default:'UNREAD'"` // UNREAD, READ
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

const (
	NotificationUnread = "UNREAD"
	NotificationRead   = "READ"
)

// Admin-facing types
const (
	NotifyEnrollmentReceived   = "enrollment_received"
	NotifyCertificateRequested = "certificate_requested"
	NotifyAssignmentSubmitted  = "assignment_submitted"
)

// Student-facing types
const (
	NotifyEnrollmentApproved  = "enrollment_approved"
	NotifyCertificateApproved = "certificate_approved"
	NotifyAssignmentCreated   = "assignment_created"
	NotifyBatchAssigned       = "batch_assigned"
)

// NotificationAudience maps every known notification type to the role whose
// mailbox it belongs in.
var NotificationAudience = map[string]string{
	NotifyEnrollmentReceived:   RoleAdmin,
	NotifyCertificateRequested: RoleAdmin,
	NotifyAssignmentSubmitted:  RoleAdmin,

	NotifyEnrollmentApproved:  RoleUser,
	NotifyCertificateApproved: RoleUser,
	NotifyAssignmentCreated:   RoleUser,
	NotifyBatchAssigned:       RoleUser,
}
