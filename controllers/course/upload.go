package controllers

import (
	"fmt"
	"path/filepath"
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 200 << 20 // 200 MB

// uploadToStorage stores a multipart file under the given folder and returns
// the storage key
func uploadToStorage(c *fiber.Ctx, folder string) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("file is required: %w", err)
	}
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file exceeds upload limit")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	contentType := file.Header.Get("Content-Type")
	if err := storage.Default.Upload(c.UserContext(), key, src, contentType); err != nil {
		return "", err
	}

	return key, nil
}

// AdminUploadContentFile uploads a content file for a course and returns its
// storage key. The key is what gets persisted on the content row; signed URLs
// are derived from it on every read.
func AdminUploadContentFile(c *fiber.Ctx) error {
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

	key, err := uploadToStorage(c, fmt.Sprintf("courses/%d", courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", fiber.Map{
		"key": key,
	})
}

// AdminUploadMaterialFile uploads a study material file for a course
func AdminUploadMaterialFile(c *fiber.Ctx) error {
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

	key, err := uploadToStorage(c, fmt.Sprintf("materials/%d", courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File uploaded successfully!", fiber.Map{
		"key": key,
	})
}

// AdminUploadCourseImage uploads a course thumbnail and stores its key on the
// course row
func AdminUploadCourseImage(c *fiber.Ctx) error {
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

	key, err := uploadToStorage(c, fmt.Sprintf("courses/%d/images", courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	course.CourseImage = key
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course image uploaded successfully!", fiber.Map{
		"key": key,
	})
}
