package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func AdminCreateSection(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := courseModels.Section{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section created successfully!", section)
}

func AdminUpdateSection(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(int)

	var section courseModels.Section
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", section.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	reqData, ok := c.Locals("validatedSectionUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		OrderIndex  *int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		section.Title = *reqData.Title
	}
	if reqData.Description != nil {
		section.Description = *reqData.Description
	}
	if reqData.OrderIndex != nil {
		section.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

func AdminDeleteSection(c *fiber.Ctx) error {
	role, instituteID, ok := viewerScope(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sectionID := c.Locals("sectionID").(int)

	var section courseModels.Section
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", section.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canManageCourse(role, instituteID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to manage this course!", nil)
	}

	section.IsDeleted = true
	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

func AdminListSections(c *fiber.Ctx) error {
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

	var sections []courseModels.Section
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", sections)
}
