package instituteRoutes

import (
	controllers "lms/controllers/institute"
	"lms/middleware"
	validators "lms/validators/institute"

	"github.com/gofiber/fiber/v2"
)

// SetupInstituteRoutes sets up institute management and roster routes
func SetupInstituteRoutes(app *fiber.App) {
	// Platform admin only: institute CRUD
	adminGroup := app.Group("/admin/institute", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin))

	adminGroup.Post("/create", validators.CreateInstitute(), controllers.AdminCreateInstitute)
	adminGroup.Get("/list", validators.InstituteList(), controllers.AdminListInstitutes)
	adminGroup.Put("/:institute_id", validators.UpdateInstitute(), controllers.AdminUpdateInstitute)
	adminGroup.Delete("/:institute_id", validators.InstituteID(), controllers.AdminDeleteInstitute)

	// Student roster: institute admins work on their own institute, platform
	// admins pass institute_id
	rosterGroup := app.Group("/institute/student", middleware.JWTMiddleware, middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleInstituteAdmin))

	rosterGroup.Post("/create", validators.CreateStudent(), controllers.CreateInstituteStudent)
	rosterGroup.Get("/list", validators.StudentList(), controllers.ListInstituteStudents)
	rosterGroup.Get("/:student_id/progress", validators.StudentProgress(), controllers.GetStudentProgress)
}
