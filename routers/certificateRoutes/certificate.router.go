package certificateRoutes

import (
	"github.com/gofiber/fiber/v2"

	certificateControllers "lms/controllers/certificate"
	"lms/middleware"
	certificateValidators "lms/validators/certificate"
)

func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	// Student side
	certGroup.Post("/request", middleware.JWTMiddleware, certificateValidators.RequestCertificate(), certificateControllers.RequestCertificate)
	certGroup.Get("/my", middleware.JWTMiddleware, certificateControllers.GetMyCertificates)

	// Admin side
	certGroup.Get("/", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, certificateControllers.GetCertificateRequests)
	certGroup.Post("/:id/approve", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, certificateValidators.CertificateID(), certificateControllers.ApproveCertificate)
	certGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnlyMiddleware, certificateValidators.CertificateID(), certificateValidators.RejectCertificate(), certificateControllers.RejectCertificate)
}
