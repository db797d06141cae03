package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
)

func AdminCreateContent(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedContent").(*struct {
		SectionID   uint   `json:"section_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"content_type"`
		ContentURL  string `json:"content_url"`
		ContentText string `json:"content_text"`
		IsFree      bool   `json:"is_free"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var section courseModels.Section
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.SectionID, courseID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	content := courseModels.CourseContent{
		CourseID:    uint(courseID),
		SectionID:   reqData.SectionID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		ContentURL:  reqData.ContentURL,
		ContentText: reqData.ContentText,
		IsFree:      reqData.IsFree,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content created successfully!", content)
}

func AdminUpdateContent(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", content.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	reqData, ok := c.Locals("validatedContentUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ContentType *string `json:"content_type"`
		ContentURL  *string `json:"content_url"`
		ContentText *string `json:"content_text"`
		IsFree      *bool   `json:"is_free"`
		OrderIndex  *int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		content.Title = *reqData.Title
	}
	if reqData.Description != nil {
		content.Description = *reqData.Description
	}
	if reqData.ContentType != nil {
		content.ContentType = *reqData.ContentType
	}
	if reqData.ContentURL != nil {
		content.ContentURL = *reqData.ContentURL
	}
	if reqData.ContentText != nil {
		content.ContentText = *reqData.ContentText
	}
	if reqData.IsFree != nil {
		content.IsFree = *reqData.IsFree
	}
	if reqData.OrderIndex != nil {
		content.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content updated successfully!", content)
}

func AdminPublishContent(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)
	publish := c.QueryBool("publish", true)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", content.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	content.IsPublished = publish
	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content updated successfully!", content)
}

func AdminDeleteContent(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", content.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	content.IsDeleted = true
	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course content!", nil)
	}

	// Best-effort cleanup of the stored object; the row is already gone
	if key := storage.ExtractStorageKey(content.ContentURL); key != "" {
		if err := storage.Default.Delete(c.UserContext(), key); err != nil {
			log.Printf("Failed to delete stored object %s: %v", key, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content deleted successfully!", nil)
}

func AdminCreateMaterial(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedMaterial").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		FileURL     string `json:"file_url"`
		FileType    string `json:"file_type"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	material := courseModels.CourseMaterial{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		FileURL:     reqData.FileURL,
		FileType:    reqData.FileType,
		IsPublished: true,
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material created successfully!", material)
}

func AdminDeleteMaterial(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(int)

	var material courseModels.CourseMaterial
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", material.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	material.IsDeleted = true
	if err := database.Database.Db.Save(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	if key := storage.ExtractStorageKey(material.FileURL); key != "" {
		if err := storage.Default.Delete(c.UserContext(), key); err != nil {
			log.Printf("Failed to delete stored object %s: %v", key, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}
