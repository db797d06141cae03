package controllers

import (
	"context"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
)

func signedURLTTL() time.Duration {
	return time.Duration(config.AppConfig.SignedURLTTL) * time.Second
}

func shortSignedURLTTL() time.Duration {
	return time.Duration(config.AppConfig.SignedURLShortTTL) * time.Second
}

// GetCourseContent lists published content for a course. Enrolled students
// see everything; others only see free items. Storage references are replaced
// with signed URLs before the response is shaped.
func GetCourseContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Optional section filter
	sectionID := c.QueryInt("section_id", 0)

	reqData, _ := c.Locals("validatedCourseContentList").(*struct {
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

	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	db := database.Database.Db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true)
	if sectionID > 0 {
		db = db.Where("section_id = ?", sectionID)
	}
	if !isEnrolled {
		db = db.Where("is_free = ?", true)
	}

	var total int64
	db.Count(&total)

	var contents []courseModels.CourseContent
	if err := db.Offset(offset).Limit(limit).Order("section_id asc, order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	// Replace storage references with signed URLs, bounded fan-out
	ttl := signedURLTTL()
	storage.BatchProcess(c.UserContext(), len(contents), storage.DefaultBatchConcurrency, func(ctx context.Context, i int) {
		storage.DefaultProcessor.ProcessContent(ctx, &contents[i], ttl)
	})

	response := map[string]interface{}{
		"contents":    contents,
		"is_enrolled": isEnrolled,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", response)
}

// GetContentItem fetches one content item with signed URLs and records the
// student's access. Free items are visible without enrollment, but access is
// only tracked for enrolled students.
func GetContentItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Institute-scoped students may only open their own institute's courses
	if user.InstituteID != nil && course.InstituteID != *user.InstituteID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course does not belong to your institute!", nil)
	}

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	if !isEnrolled && !content.IsFree {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	if isEnrolled {
		if err := recordContentAccess(database.Database.Db, userID, uint(courseID), uint(contentID)); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record content access!", nil)
		}
	}

	storage.DefaultProcessor.ProcessContent(c.UserContext(), &content, signedURLTTL())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", content)
}

// GetCourseMaterials lists published study materials for an enrolled student
func GetCourseMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var materials []courseModels.CourseMaterial
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("created_at asc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	ttl := signedURLTTL()
	storage.BatchProcess(c.UserContext(), len(materials), storage.DefaultBatchConcurrency, func(ctx context.Context, i int) {
		storage.DefaultProcessor.ProcessMaterial(ctx, &materials[i], ttl)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}
