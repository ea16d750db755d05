package certificateController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	certificateValidators "lms/validators/certificate"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()

	app.Post("/certificates/request", middleware.JWTMiddleware, certificateValidators.RequestCertificate(), RequestCertificate)
	app.Get("/certificates/my", middleware.JWTMiddleware, GetMyCertificates)
	app.Get("/certificates", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, GetCertificateRequests)
	app.Post("/certificates/:id/approve", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, certificateValidators.CertificateID(), ApproveCertificate)
	app.Delete("/certificates/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, certificateValidators.CertificateID(), certificateValidators.RejectCertificate(), RejectCertificate)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     username,
		Email:    username + "@example.com",
		Username: username,
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Username, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func enrollUser(t *testing.T, db *gorm.DB, user models.User) courseModels.EnrolledCourse {
	t.Helper()

	course := courseModels.Course{Title: "Go Programming", Instructor: "Jane", Description: "Go from scratch", Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	batch := courseModels.Batch{CourseID: course.ID, BatchNumber: 1, Name: "Go Batch 1", StartDate: time.Now(), EndDate: time.Now().AddDate(0, 2, 0)}
	require.NoError(t, db.Create(&batch).Error)

	enrolled := courseModels.EnrolledCourse{
		UserID:       user.ID,
		Email:        user.Email,
		CourseID:     course.ID,
		CourseName:   course.Title,
		BatchID:      batch.ID,
		EnrolledDate: time.Now(),
	}
	require.NoError(t, db.Create(&enrolled).Error)
	return enrolled
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequestCertificateRequiresEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := createUser(t, db, "stu1", models.RoleUser)

	resp := jsonRequest(t, app, http.MethodPost, "/certificates/request", token, map[string]interface{}{
		"course_id": 42,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequestCertificateIsIdempotent(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := createUser(t, db, "stu2", models.RoleUser)
	enrolled := enrollUser(t, db, user)

	body := map[string]interface{}{"course_id": enrolled.CourseID}

	resp := jsonRequest(t, app, http.MethodPost, "/certificates/request", token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/certificates/request", token, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&courseModels.CertificateRequest{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// The request landed in the admin mailbox, not the student one
	var notification models.Notification
	require.NoError(t, db.Where("type = ?", models.NotifyCertificateRequested).First(&notification).Error)
	assert.Equal(t, models.RoleAdmin, notification.ForRole)
}

func TestApproveCertificateIssues(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := createUser(t, db, "stu3", models.RoleUser)
	_, adminToken := createUser(t, db, "boss", models.RoleAdmin)
	enrolled := enrollUser(t, db, user)

	resp := jsonRequest(t, app, http.MethodPost, "/certificates/request", token, map[string]interface{}{
		"course_id": enrolled.CourseID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var request courseModels.CertificateRequest
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&request).Error)
	assert.Equal(t, courseModels.CertificateRequested, request.Status)

	resp = jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/certificates/%d/approve", request.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, courseModels.CertificateIssued, request.Status)
	assert.NotNil(t, request.IssuedAt)
	assert.NotEmpty(t, request.CertificateNumber)
	assert.NotEmpty(t, request.DownloadURL)

	// Re-approving an issued certificate conflicts
	resp = jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/certificates/%d/approve", request.ID), adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Student got notified
	var notification models.Notification
	require.NoError(t, db.Where("type = ?", models.NotifyCertificateApproved).First(&notification).Error)
	assert.Equal(t, user.Username, notification.ToUser)
	assert.Equal(t, models.RoleUser, notification.ForRole)
}

func TestRejectCertificateClearsQueue(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := createUser(t, db, "stu4", models.RoleUser)
	_, adminToken := createUser(t, db, "boss2", models.RoleAdmin)
	enrolled := enrollUser(t, db, user)

	resp := jsonRequest(t, app, http.MethodPost, "/certificates/request", token, map[string]interface{}{
		"course_id": enrolled.CourseID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var request courseModels.CertificateRequest
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&request).Error)

	resp = jsonRequest(t, app, http.MethodDelete, fmt.Sprintf("/certificates/%d", request.ID), adminToken, map[string]string{
		"reason": "course not finished",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var open []courseModels.CertificateRequest
	db.Where("is_deleted = ?", false).Find(&open)
	assert.Empty(t, open)

	// After a rejection the student may request again
	resp = jsonRequest(t, app, http.MethodPost, "/certificates/request", token, map[string]interface{}{
		"course_id": enrolled.CourseID,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
