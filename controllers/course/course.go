package courseController

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// courseWithStudents decorates a catalog row with the server-computed count
// of active enrollments.
type courseWithStudents struct {
	courseModels.Course
	Students int64 `json:"students"`
}

// GetAllCourses lists the course catalog (public). Student counts come from
// the enrolledcourses table, not a stored column.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]courseWithStudents, len(courses))
	for i, course := range courses {
		var students int64
		db.Model(&courseModels.EnrolledCourse{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&students)
		result[i] = courseWithStudents{Course: course, Students: students}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// GetCourseDetails returns a single course with its student count
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var students int64
	db.Model(&courseModels.EnrolledCourse{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Count(&students)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", courseWithStudents{
		Course:   course,
		Students: students,
	})
}

// CreateCourse adds a catalog entry (admin only)
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Instructor  string `json:"instructor"`
		Category    string `json:"category"`
		Duration    string `json:"duration"`
		Level       string `json:"level"`
		Description string `json:"description"`
		ImageURL    string `json:"img"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Course titles double as the public enroll form's course selector
	if err := db.Where("title = ? AND is_deleted = ?", reqData.Title, false).First(&courseModels.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this title already exists!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Instructor:  reqData.Instructor,
		Category:    reqData.Category,
		Duration:    reqData.Duration,
		Level:       reqData.Level,
		Description: reqData.Description,
		ImageURL:    reqData.ImageURL,
		Status:      "ACTIVE",
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates provided fields of a catalog entry (admin only)
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       string `json:"title"`
		Instructor  string `json:"instructor"`
		Category    string `json:"category"`
		Duration    string `json:"duration"`
		Level       string `json:"level"`
		Description string `json:"description"`
		ImageURL    string `json:"img"`
		Status      string `json:"status"`
		Rating      *uint  `json:"rating"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Instructor != "" {
		course.Instructor = reqData.Instructor
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Duration != "" {
		course.Duration = reqData.Duration
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.ImageURL != "" {
		course.ImageURL = reqData.ImageURL
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
	if reqData.Rating != nil {
		course.Rating = *reqData.Rating
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft deletes a catalog entry (admin only)
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
