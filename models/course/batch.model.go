package course

import (
	"time"

	"gorm.io/gorm"
)

// Batch is a scheduled cohort of students within one course. CourseID is the
// only linkage used for matching; course titles are denormalized onto
// responses for display.
type Batch struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	BatchNumber int       `json:"batch_number" gorm:"default:1"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status" gorm:"default:'UPCOMING'"` // UPCOMING, ONGOING, COMPLETED
	IsDeleted   bool      `json:"-" gorm:"default:false"`
}

const (
	BatchUpcoming  = "UPCOMING"
	BatchOngoing   = "ONGOING"
	BatchCompleted = "COMPLETED"
)
