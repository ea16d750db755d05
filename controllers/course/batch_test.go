package courseController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
	courseModels "lms/models/course"
)

func TestCreateBatchDerivesStatusFromDates(t *testing.T) {
	app, db := setupTestApp(t)
	_, adminToken := createUser(t, db, "admin20", models.RoleAdmin)

	course := courseModels.Course{Title: "Rust", Instructor: "Kim", Description: "Systems programming", Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	resp := jsonRequest(t, app, http.MethodPost, "/batches", adminToken, map[string]interface{}{
		"course_id":    course.ID,
		"batch_number": 1,
		"name":         "Rust Batch 1",
		"start_date":   time.Now().AddDate(0, 0, -60).Format(time.RFC3339),
		"end_date":     time.Now().AddDate(0, 0, -30).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created courseModels.Batch
	require.NoError(t, json.Unmarshal(decodeData(t, resp), &created))
	assert.Equal(t, courseModels.BatchCompleted, created.Status)
}

func TestUpdateBatchRecomputesStatusFromNewDates(t *testing.T) {
	app, db := setupTestApp(t)
	_, adminToken := createUser(t, db, "admin21", models.RoleAdmin)
	batch := createBatch(t, db)

	resp := jsonRequest(t, app, http.MethodPut, fmt.Sprintf("/batches/%d", batch.ID), adminToken, map[string]interface{}{
		"start_date": time.Now().AddDate(0, 0, -60).Format(time.RFC3339),
		"end_date":   time.Now().AddDate(0, 0, -30).Format(time.RFC3339),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated courseModels.Batch
	require.NoError(t, db.First(&updated, batch.ID).Error)
	assert.Equal(t, courseModels.BatchCompleted, updated.Status)
}

func TestUpdateBatchNameLeavesStatusAlone(t *testing.T) {
	app, db := setupTestApp(t)
	_, adminToken := createUser(t, db, "admin22", models.RoleAdmin)
	batch := createBatch(t, db)
	require.NoError(t, db.Model(&batch).Update("status", courseModels.BatchOngoing).Error)

	resp := jsonRequest(t, app, http.MethodPut, fmt.Sprintf("/batches/%d", batch.ID), adminToken, map[string]interface{}{
		"name": "Renamed Batch",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated courseModels.Batch
	require.NoError(t, db.First(&updated, batch.ID).Error)
	assert.Equal(t, "Renamed Batch", updated.Name)
	assert.Equal(t, courseModels.BatchOngoing, updated.Status)
}
