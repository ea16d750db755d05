package course

import (
	"time"

	"gorm.io/gorm"
)

// EnrollmentRequest is a prospective student's pre-approval interest record,
// created by the public enroll form. Approval converts it into a User plus an
// EnrolledCourse and removes the request, all in one transaction.
type EnrollmentRequest struct {
	gorm.Model
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"index;not null"`
	Phone      string    `json:"phone"`
	CourseID   uint      `json:"course_id" gorm:"index"`
	CourseName string    `json:"course_name"`
	FilledDate time.Time `json:"filled_date"`
	IsApproved bool      `json:"is_approved" gorm:"default:false"`
	Username   string    `json:"username"` // set at approval time
	IsDeleted  bool      `json:"-" gorm:"default:false"`
}

// EnrolledCourse is an approved, active course membership for a student.
type EnrolledCourse struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Email        string    `json:"email" gorm:"index;not null"`
	CourseID     uint      `json:"course_id" gorm:"index;not null"`
	CourseName   string    `json:"course_name"`
	BatchID      uint      `json:"batch_id" gorm:"index;not null"`
	EnrolledDate time.Time `json:"enrolled_date"`
	CourseImg    string    `json:"course_img"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`
}
