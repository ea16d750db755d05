package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is coursework attached to a batch
type Assignment struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	BatchID     uint      `json:"batch_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}

// Submission records one student's answer to an assignment. The unique index
// enforces one row per (assignment, user) even under concurrent submits.
type Submission struct {
	gorm.Model
	AssignmentID uint      `json:"assignment_id" gorm:"not null;uniqueIndex:idx_assignment_user"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_assignment_user"`
	UserName     string    `json:"user_name"`
	FileURL      string    `json:"file_url"`
	SubmittedAt  time.Time `json:"submitted_date"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`
}
