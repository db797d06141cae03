package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// viewerScope extracts the requesting user's role and institute from the
// request context. Admins see everything; institute admins are scoped to
// their own institute.
func viewerScope(c *fiber.Ctx) (middleware.Role, *uint, bool) {
	role, ok := c.Locals("role").(middleware.Role)
	if !ok {
		return 0, nil, false
	}
	var instituteID *uint
	if v, ok := c.Locals("instituteId").(uint); ok {
		instituteID = &v
	}
	return role, instituteID, true
}

// canManageCourse reports whether the viewer may manage the given course
func canManageCourse(role middleware.Role, instituteID *uint, course *courseModels.Course) bool {
	switch role {
	case middleware.RoleAdmin:
		return true
	case middleware.RoleInstituteAdmin:
		return instituteID != nil && course.InstituteID == *instituteID
	case middleware.RoleStudent:
		return false
	}
	return false
}

func AdminCreateCourse(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		Duration    int64  `json:"duration"`
		InstituteID uint   `json:"institute_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Institute admins always create under their own institute
	targetInstitute := reqData.InstituteID
	if role == middleware.RoleInstituteAdmin {
		if instituteID == nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
		}
		targetInstitute = *instituteID
	}
	if targetInstitute == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Institute ID is required!", nil)
	}

	course := courseModels.Course{
		InstituteID: targetInstitute,
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
		Duration:    reqData.Duration,
		Status:      "DRAFT",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Author      *string `json:"author"`
		Duration    *int64  `json:"duration"`
		Status      *string `json:"status"`
		CourseImage *string `json:"course_image"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Author != nil {
		course.Author = *reqData.Author
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}
	if reqData.CourseImage != nil {
		course.CourseImage = *reqData.CourseImage
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func AdminPublishCourse(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	publish := c.QueryBool("publish", true)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	course.IsPublished = publish
	if publish {
		course.Status = "ACTIVE"
	}
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func AdminDeleteCourse(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func AdminListCourses(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if role == middleware.RoleInstituteAdmin {
		if instituteID == nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No institute associated with this account!", nil)
		}
		db = db.Where("institute_id = ?", *instituteID)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}
