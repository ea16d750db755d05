package enrollmentController

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authControllers "lms/controllers/auth"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	authValidators "lms/validators/auth"
	enrollmentValidators "lms/validators/enrollment"
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

	app.Post("/enrollments", enrollmentValidators.CreateEnrollment(), CreateEnrollmentRequest)
	app.Get("/enrollments", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, GetPendingEnrollments)
	app.Post("/enrollments/:id/approve", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrollmentID(), enrollmentValidators.ApproveEnrollment(), ApproveEnrollment)
	app.Delete("/enrollments/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrollmentID(), RejectEnrollment)
	app.Get("/enrolledcourses/my", middleware.JWTMiddleware, GetMyEnrolledCourses)
	app.Get("/enrolledcourses", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, GetAllEnrolledCourses)
	app.Put("/enrolledcourses/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrolledCourseID(), enrollmentValidators.UpdateEnrolledCourse(), UpdateEnrolledCourse)
	app.Post("/auth/login", authValidators.Login(), authControllers.Login)

	return app, db
}

func createAdmin(t *testing.T, db *gorm.DB) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Username: "admin",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Username, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func createCourseWithBatch(t *testing.T, db *gorm.DB) (courseModels.Course, courseModels.Batch) {
	t.Helper()

	course := courseModels.Course{Title: "Java", Instructor: "Jane", Description: "Core Java", Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	batch := courseModels.Batch{
		CourseID:    course.ID,
		BatchNumber: 1,
		Name:        "Java Batch 1",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 2, 0),
	}
	require.NoError(t, db.Create(&batch).Error)

	return course, batch
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

func TestCreateEnrollmentRequestValidation(t *testing.T) {
	app, db := setupTestApp(t)

	resp := jsonRequest(t, app, http.MethodPost, "/enrollments", "", map[string]string{
		"name": "A",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var count int64
	db.Model(&courseModels.EnrollmentRequest{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejected form must not create a row")
}

func TestCreateEnrollmentRequestDuplicateGuard(t *testing.T) {
	app, _ := setupTestApp(t)

	body := map[string]string{
		"name":        "Alice",
		"email":       "a@x.com",
		"phone":       "9876543210",
		"course_name": "Java",
	}

	resp := jsonRequest(t, app, http.MethodPost, "/enrollments", "", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/enrollments", "", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestApproveEnrollmentRequiresCredentials(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)

	request := courseModels.EnrollmentRequest{
		Name: "Alice", Email: "a@x.com", Phone: "9876543210",
		CourseName: "Java", FilledDate: time.Now(),
	}
	require.NoError(t, db.Create(&request).Error)

	resp := jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/enrollments/%d/approve", request.ID), token, map[string]interface{}{
		"username": "a1",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Nothing may have been written
	var users int64
	db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&users)
	assert.Equal(t, int64(0), users)

	var enrolled int64
	db.Model(&courseModels.EnrolledCourse{}).Count(&enrolled)
	assert.Equal(t, int64(0), enrolled)
}

func TestApproveEnrollmentPipeline(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)
	course, batch := createCourseWithBatch(t, db)

	resp := jsonRequest(t, app, http.MethodPost, "/enrollments", "", map[string]string{
		"name":        "Alice",
		"email":       "a@x.com",
		"phone":       "9876543210",
		"course_name": course.Title,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var request courseModels.EnrollmentRequest
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&request).Error)
	assert.False(t, request.IsApproved)
	assert.Equal(t, course.ID, request.CourseID)

	resp = jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/enrollments/%d/approve", request.ID), token, map[string]interface{}{
		"username": "a1",
		"password": "secret1",
		"batch_id": batch.ID,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The new user can log in with the supplied credentials
	resp = jsonRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "a1",
		"password": "secret1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The membership points at the chosen batch
	var enrolled courseModels.EnrolledCourse
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&enrolled).Error)
	assert.Equal(t, batch.ID, enrolled.BatchID)
	assert.Equal(t, course.ID, enrolled.CourseID)
	assert.Equal(t, course.Title, enrolled.CourseName)

	// The request dropped off the pending list
	var pending []courseModels.EnrollmentRequest
	db.Where("is_approved = ? AND is_deleted = ?", false, false).Find(&pending)
	assert.Empty(t, pending)

	// A student notification was queued
	var notification models.Notification
	require.NoError(t, db.Where("type = ?", models.NotifyEnrollmentApproved).First(&notification).Error)
	assert.Equal(t, "a1", notification.ToUser)
	assert.Equal(t, models.RoleUser, notification.ForRole)
}

func TestApproveEnrollmentTwiceConflicts(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)
	course, batch := createCourseWithBatch(t, db)

	request := courseModels.EnrollmentRequest{
		Name: "Bob", Email: "b@x.com", Phone: "9876543211",
		CourseName: course.Title, CourseID: course.ID, FilledDate: time.Now(),
	}
	require.NoError(t, db.Create(&request).Error)

	body := map[string]interface{}{
		"username": "b1",
		"password": "secret1",
		"batch_id": batch.ID,
	}

	resp := jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/enrollments/%d/approve", request.ID), token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/enrollments/%d/approve", request.ID), token, body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Still exactly one user
	var users int64
	db.Model(&models.User{}).Where("username = ?", "b1").Count(&users)
	assert.Equal(t, int64(1), users)
}

func TestApproveEnrollmentBatchCourseMismatch(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)
	course, _ := createCourseWithBatch(t, db)

	other := courseModels.Course{Title: "Python", Instructor: "Joe", Description: "Python basics", Status: "ACTIVE"}
	require.NoError(t, db.Create(&other).Error)
	otherBatch := courseModels.Batch{CourseID: other.ID, BatchNumber: 1, Name: "Py Batch", StartDate: time.Now(), EndDate: time.Now().AddDate(0, 1, 0)}
	require.NoError(t, db.Create(&otherBatch).Error)

	request := courseModels.EnrollmentRequest{
		Name: "Carol", Email: "c@x.com", Phone: "9876543212",
		CourseName: course.Title, CourseID: course.ID, FilledDate: time.Now(),
	}
	require.NoError(t, db.Create(&request).Error)

	resp := jsonRequest(t, app, http.MethodPost, fmt.Sprintf("/enrollments/%d/approve", request.ID), token, map[string]interface{}{
		"username": "c1",
		"password": "secret1",
		"batch_id": otherBatch.ID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRejectEnrollment(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)

	request := courseModels.EnrollmentRequest{
		Name: "Dan", Email: "d@x.com", Phone: "9876543213",
		CourseName: "Java", FilledDate: time.Now(),
	}
	require.NoError(t, db.Create(&request).Error)

	resp := jsonRequest(t, app, http.MethodDelete, fmt.Sprintf("/enrollments/%d", request.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var pending []courseModels.EnrollmentRequest
	db.Where("is_deleted = ?", false).Find(&pending)
	assert.Empty(t, pending)
}

func TestEnrolledCoursesFilterByEmail(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)
	course, batch := createCourseWithBatch(t, db)

	first := courseModels.EnrolledCourse{
		UserID: 10, Email: "a@x.com", CourseID: course.ID,
		CourseName: course.Title, BatchID: batch.ID, EnrolledDate: time.Now(),
	}
	second := courseModels.EnrolledCourse{
		UserID: 11, Email: "b@x.com", CourseID: course.ID,
		CourseName: course.Title, BatchID: batch.ID, EnrolledDate: time.Now(),
	}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	resp := jsonRequest(t, app, http.MethodGet, "/enrolledcourses?email=a@x.com", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Enrollments []courseModels.EnrolledCourse `json:"enrollments"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Enrollments, 1)
	assert.Equal(t, "a@x.com", envelope.Data.Enrollments[0].Email)

	// Without the filter the admin listing shows everyone
	resp = jsonRequest(t, app, http.MethodGet, "/enrolledcourses", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Len(t, envelope.Data.Enrollments, 2)
}

func TestBatchReassignmentNotifiesStudent(t *testing.T) {
	app, db := setupTestApp(t)
	token := createAdmin(t, db)
	course, batch := createCourseWithBatch(t, db)

	otherBatch := courseModels.Batch{
		CourseID:    course.ID,
		BatchNumber: 2,
		Name:        "Java Batch 2",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 3, 0),
	}
	require.NoError(t, db.Create(&otherBatch).Error)

	student := models.User{
		Name: "Eve", Email: "e@x.com", Username: "eve1",
		Password: "x", Role: models.RoleUser,
	}
	require.NoError(t, db.Create(&student).Error)

	enrolled := courseModels.EnrolledCourse{
		UserID: student.ID, Email: student.Email, CourseID: course.ID,
		CourseName: course.Title, BatchID: batch.ID, EnrolledDate: time.Now(),
	}
	require.NoError(t, db.Create(&enrolled).Error)

	resp := jsonRequest(t, app, http.MethodPut, fmt.Sprintf("/enrolledcourses/%d", enrolled.ID), token, map[string]interface{}{
		"batch_id": otherBatch.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated courseModels.EnrolledCourse
	require.NoError(t, db.First(&updated, enrolled.ID).Error)
	assert.Equal(t, otherBatch.ID, updated.BatchID)

	var notifications []models.Notification
	db.Where("type = ?", models.NotifyBatchAssigned).Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, "eve1", notifications[0].ToUser)
	assert.Equal(t, models.RoleUser, notifications[0].ForRole)
}
