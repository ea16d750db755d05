package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	return db
}

func TestPurgeReadNotificationsRespectsRetentionWindow(t *testing.T) {
	db := setupTestDb(t)

	oldRead := models.Notification{
		Type: models.NotifyEnrollmentApproved, ToUser: "user1",
		Message: "old read", ForRole: models.RoleUser, Status: models.NotificationRead,
	}
	oldRead.CreatedAt = time.Now().AddDate(0, 0, -40)
	require.NoError(t, db.Create(&oldRead).Error)

	recentRead := models.Notification{
		Type: models.NotifyEnrollmentApproved, ToUser: "user1",
		Message: "recent read", ForRole: models.RoleUser, Status: models.NotificationRead,
	}
	require.NoError(t, db.Create(&recentRead).Error)

	oldUnread := models.Notification{
		Type: models.NotifyEnrollmentApproved, ToUser: "user1",
		Message: "old unread", ForRole: models.RoleUser, Status: models.NotificationUnread,
	}
	oldUnread.CreatedAt = time.Now().AddDate(0, 0, -40)
	require.NoError(t, db.Create(&oldUnread).Error)

	PurgeReadNotifications()

	var remaining []models.Notification
	db.Where("is_deleted = ?", false).Find(&remaining)
	require.Len(t, remaining, 2)
	messages := []string{remaining[0].Message, remaining[1].Message}
	assert.Contains(t, messages, "recent read")
	assert.Contains(t, messages, "old unread")
}

func TestSweepBatchStatusesFollowsDates(t *testing.T) {
	db := setupTestDb(t)

	now := time.Now()

	upcoming := courseModels.Batch{
		CourseID: 1, BatchNumber: 1, Name: "Not yet started",
		StartDate: now.AddDate(0, 0, 7), EndDate: now.AddDate(0, 0, 30),
		Status: courseModels.BatchUpcoming,
	}
	started := courseModels.Batch{
		CourseID: 1, BatchNumber: 2, Name: "Started yesterday",
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30),
		Status: courseModels.BatchUpcoming,
	}
	ended := courseModels.Batch{
		CourseID: 1, BatchNumber: 3, Name: "Ended yesterday",
		StartDate: now.AddDate(0, 0, -30), EndDate: now.AddDate(0, 0, -1),
		Status: courseModels.BatchOngoing,
	}
	require.NoError(t, db.Create(&upcoming).Error)
	require.NoError(t, db.Create(&started).Error)
	require.NoError(t, db.Create(&ended).Error)

	SweepBatchStatuses()

	var got courseModels.Batch
	require.NoError(t, db.First(&got, upcoming.ID).Error)
	assert.Equal(t, courseModels.BatchUpcoming, got.Status)

	got = courseModels.Batch{}
	require.NoError(t, db.First(&got, started.ID).Error)
	assert.Equal(t, courseModels.BatchOngoing, got.Status)

	got = courseModels.Batch{}
	require.NoError(t, db.First(&got, ended.ID).Error)
	assert.Equal(t, courseModels.BatchCompleted, got.Status)
}

func TestSweepDoesNotResurrectDeletedBatches(t *testing.T) {
	db := setupTestDb(t)

	now := time.Now()
	deleted := courseModels.Batch{
		CourseID: 1, BatchNumber: 4, Name: "Deleted",
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30),
		Status: courseModels.BatchUpcoming, IsDeleted: true,
	}
	require.NoError(t, db.Create(&deleted).Error)

	SweepBatchStatuses()

	var got courseModels.Batch
	require.NoError(t, db.First(&got, deleted.ID).Error)
	assert.Equal(t, courseModels.BatchUpcoming, got.Status)
}
