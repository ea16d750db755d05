package course

import "gorm.io/gorm"

// Video is a lesson recording within a batch. OrderIndex is assigned by the
// server at insert time (max existing order + 1); deleting a video leaves a
// gap which is never reused.
type Video struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	BatchID      uint   `json:"batch_id" gorm:"index;not null"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	VideoURL     string `json:"video_url"`
	Duration     string `json:"duration"`
	OrderIndex   int    `json:"order" gorm:"default:0"`
	ThumbnailURL string `json:"thumbnail"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}
