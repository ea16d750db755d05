package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

// InitializeMaintenanceScheduler sets up the daily maintenance jobs:
// notification retention and batch status sweeps.
func InitializeMaintenanceScheduler() {
	log.Println("[MAINTENANCE-SCHEDULER] Initializing maintenance scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		log.Println("[MAINTENANCE-SCHEDULER] Running daily maintenance...")
		PurgeReadNotifications()
		SweepBatchStatuses()
	})

	c.Start()
	log.Println("[MAINTENANCE-SCHEDULER] Maintenance scheduler started - runs daily at 2 AM")
}

// PurgeReadNotifications removes read notifications older than 30 days.
func PurgeReadNotifications() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -30)

	result := db.Model(&models.Notification{}).
		Where("status = ? AND is_deleted = false AND created_at < ?", models.NotificationRead, cutoff).
		Update("is_deleted", true)

	if result.Error != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Failed to purge notifications: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[MAINTENANCE-SCHEDULER] Purged %d read notifications", result.RowsAffected)
	}
}

// SweepBatchStatuses moves batches through UPCOMING -> ONGOING -> COMPLETED
// based on their scheduled dates, so batch status is never hand-maintained.
func SweepBatchStatuses() {
	db := database.Database.Db
	now := time.Now()

	started := db.Model(&courseModels.Batch{}).
		Where("status = ? AND is_deleted = false AND start_date <= ?", courseModels.BatchUpcoming, now).
		Update("status", courseModels.BatchOngoing)
	if started.Error != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Failed to start batches: %v", started.Error)
	} else if started.RowsAffected > 0 {
		log.Printf("[MAINTENANCE-SCHEDULER] Marked %d batches ONGOING", started.RowsAffected)
	}

	finished := db.Model(&courseModels.Batch{}).
		Where("status = ? AND is_deleted = false AND end_date < ?", courseModels.BatchOngoing, now).
		Update("status", courseModels.BatchCompleted)
	if finished.Error != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Failed to complete batches: %v", finished.Error)
	} else if finished.RowsAffected > 0 {
		log.Printf("[MAINTENANCE-SCHEDULER] Marked %d batches COMPLETED", finished.RowsAffected)
	}
}
