package course

import "gorm.io/gorm"

// Course represents a learning course in the catalog
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Instructor  string `json:"instructor"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`                      // e.g. "8 weeks"
	Level       string `json:"level"`                         // Beginner, Intermediate, Advanced
	Status      string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	Description string `json:"description"`
	ImageURL    string `json:"img"`
	Rating      uint   `json:"rating" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
