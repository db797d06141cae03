package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.Enroll(), controllers.EnrollInCourse)

	// Content viewing
	courseGroup.Get("/:id/content", middleware.JWTMiddleware, validators.CourseContentList(), controllers.GetCourseContent)
	courseGroup.Get("/:course_id/content/:content_id", middleware.JWTMiddleware, validators.ContentItem(), controllers.GetContentItem)
	courseGroup.Get("/:id/materials", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseMaterials)

	// Progress tracking
	courseGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, validators.MarkComplete(), controllers.MarkContentComplete)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)

	// Certificate request
	courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
