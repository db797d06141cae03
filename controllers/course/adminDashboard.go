package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard returns aggregate counts, scoped to the viewer's institute
// for institute admins
func AdminDashboard(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseDb := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	studentDb := database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", middleware.RoleStudent.String(), false)
	enrollmentDb := database.Database.Db.Model(&courseModels.Enrollment{}).Where("enrollments.is_deleted = ?", false)
	completionDb := database.Database.Db.Model(&courseModels.Enrollment{}).Where("enrollments.is_deleted = ? AND enrollments.status = ?", false, "COMPLETED")

	if role == middleware.RoleInstituteAdmin {
		if instituteID == nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
		}
		courseDb = courseDb.Where("institute_id = ?", *instituteID)
		studentDb = studentDb.Where("institute_id = ?", *instituteID)
		enrollmentDb = enrollmentDb.
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.institute_id = ?", *instituteID)
		completionDb = completionDb.
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Where("courses.institute_id = ?", *instituteID)
	}

	var totalCourses, totalStudents, totalEnrollments, totalCompletions int64
	courseDb.Count(&totalCourses)
	studentDb.Count(&totalStudents)
	enrollmentDb.Count(&totalEnrollments)
	completionDb.Count(&totalCompletions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":     totalCourses,
		"total_students":    totalStudents,
		"total_enrollments": totalEnrollments,
		"total_completions": totalCompletions,
	})
}
