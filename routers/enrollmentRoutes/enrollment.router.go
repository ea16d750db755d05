package enrollmentRoutes

import (
	"github.com/gofiber/fiber/v2"

	enrollmentControllers "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentValidators "lms/validators/enrollment"
)

// SetupEnrollmentRoutes wires the intake form, the admin approval pipeline
// and the enrolled-course views.
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments")

	// Public intake form
	enrollGroup.Post("/", enrollmentValidators.CreateEnrollment(), enrollmentControllers.CreateEnrollmentRequest)

	// Admin approval pipeline
	enrollGroup.Get("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentControllers.GetPendingEnrollments)
	enrollGroup.Post("/:id/approve", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrollmentID(), enrollmentValidators.ApproveEnrollment(), enrollmentControllers.ApproveEnrollment)
	enrollGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrollmentID(), enrollmentControllers.RejectEnrollment)

	enrolledGroup := app.Group("/enrolledcourses")

	enrolledGroup.Get("/my", middleware.JWTMiddleware, enrollmentControllers.GetMyEnrolledCourses)
	enrolledGroup.Get("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentControllers.GetAllEnrolledCourses)
	enrolledGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrolledCourseID(), enrollmentValidators.UpdateEnrolledCourse(), enrollmentControllers.UpdateEnrolledCourse)
	enrolledGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, enrollmentValidators.EnrolledCourseID(), enrollmentControllers.DeleteEnrolledCourse)
}
