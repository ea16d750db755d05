package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"
)

// SetupCourseRoutes wires the catalog, batch, video and assignment routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Public catalog
	courseGroup.Get("/", courseControllers.GetAllCourses)
	courseGroup.Get("/:id", courseValidators.CourseID(), courseControllers.GetCourseDetails)

	// Admin catalog management
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CreateCourse(), courseControllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CourseID(), courseValidators.UpdateCourse(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CourseID(), courseControllers.DeleteCourse)

	batchGroup := app.Group("/batches")

	batchGroup.Get("/", middleware.JWTMiddleware, courseControllers.GetBatches)
	batchGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CreateBatch(), courseControllers.CreateBatch)
	batchGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.BatchID(), courseValidators.UpdateBatch(), courseControllers.UpdateBatch)
	batchGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.BatchID(), courseControllers.DeleteBatch)

	videoGroup := app.Group("/videos")

	videoGroup.Get("/", middleware.JWTMiddleware, courseControllers.GetBatchVideos)
	videoGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CreateVideo(), courseControllers.CreateVideo)
	videoGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.VideoID(), courseValidators.UpdateVideo(), courseControllers.UpdateVideo)
	videoGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.VideoID(), courseControllers.DeleteVideo)

	assignmentGroup := app.Group("/assignments")

	assignmentGroup.Get("/", middleware.JWTMiddleware, courseControllers.GetAssignments)
	assignmentGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.CreateAssignment(), courseControllers.CreateAssignment)
	assignmentGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.AssignmentID(), courseValidators.UpdateAssignment(), courseControllers.UpdateAssignment)
	assignmentGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.AssignmentID(), courseControllers.DeleteAssignment)

	// Submissions
	assignmentGroup.Post("/:id/submissions", middleware.JWTMiddleware, courseValidators.AssignmentID(), courseControllers.SubmitAssignment)
	assignmentGroup.Get("/:id/submissions", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, courseValidators.AssignmentID(), courseControllers.GetAssignmentSubmissions)
	app.Get("/submissions/my", middleware.JWTMiddleware, courseControllers.GetMySubmissions)
}
