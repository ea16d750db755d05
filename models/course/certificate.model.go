package course

import (
	"time"

	"gorm.io/gorm"
)

// CertificateRequest is a student-initiated, admin-approved record authorizing
// a downloadable completion document.
//
// Lifecycle: REQUESTED -> ISSUED (admin approve) or REJECTED (admin delete).
// There is no path back to REQUESTED.
type CertificateRequest struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"index;not null"`
	UserName          string     `json:"user_name"`
	CourseID          uint       `json:"course_id" gorm:"index;not null"`
	CourseName        string     `json:"course_name"`
	Status            string     `json:"status" gorm:"default:'REQUESTED'"`
	RequestedAt       time.Time  `json:"requested_at"`
	IssuedAt          *time.Time `json:"issued_date"`
	ApprovedBy        *uint      `json:"approved_by"`
	CertificateNumber string     `json:"certificate_number"`
	DownloadURL       string     `json:"download_url"`
	RejectionReason   string     `json:"rejection_reason"`
	IsDeleted         bool       `json:"-" gorm:"default:false"`
}

const (
	CertificateRequested = "REQUESTED"
	CertificateIssued    = "ISSUED"
	CertificateRejected  = "REJECTED"
)
