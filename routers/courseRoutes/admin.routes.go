package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all course management routes for platform
// and institute admins
func SetupAdminCourseRoutes(app *fiber.App) {
	manage := []fiber.Handler{middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleInstituteAdmin)}

	adminGroup := app.Group("/admin/course", manage...)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.CourseList(), controllers.AdminListCourses)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)

	// Section management
	adminGroup.Post("/:id/section", validators.CreateSection(), controllers.AdminCreateSection)
	adminGroup.Get("/:id/sections", validators.CourseID(), controllers.AdminListSections)

	// Content and material creation
	adminGroup.Post("/:id/content", validators.CreateContentAdmin(), controllers.AdminCreateContent)
	adminGroup.Post("/:id/material", validators.CreateMaterial(), controllers.AdminCreateMaterial)

	// File uploads
	adminGroup.Post("/:id/upload/content", validators.CourseID(), controllers.AdminUploadContentFile)
	adminGroup.Post("/:id/upload/material", validators.CourseID(), controllers.AdminUploadMaterialFile)
	adminGroup.Post("/:id/upload/image", validators.CourseID(), controllers.AdminUploadCourseImage)

	sectionGroup := app.Group("/admin/section", manage...)
	sectionGroup.Put("/:section_id", validators.UpdateSection(), controllers.AdminUpdateSection)
	sectionGroup.Delete("/:section_id", validators.SectionID(), controllers.AdminDeleteSection)

	contentGroup := app.Group("/admin/content", manage...)
	contentGroup.Put("/:content_id", validators.UpdateContentAdmin(), controllers.AdminUpdateContent)
	contentGroup.Delete("/:content_id", validators.ContentID(), controllers.AdminDeleteContent)
	contentGroup.Post("/:content_id/publish", validators.ContentID(), controllers.AdminPublishContent)

	materialGroup := app.Group("/admin/material", manage...)
	materialGroup.Delete("/:material_id", validators.MaterialID(), controllers.AdminDeleteMaterial)

	// Certificate review
	certGroup := app.Group("/admin/certificate", manage...)
	certGroup.Post("/:request_id/review", validators.ReviewCertificate(), controllers.AdminReviewCertificate)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", manage...)
	dashGroup.Get("/stats", controllers.AdminDashboard)
}
