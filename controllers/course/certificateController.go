package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/storage"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestCertificate requests a certificate for a completed course
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	if enrollment.CompletionDate == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	var existingRequest courseModels.CertificateRequest
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingRequest).Error; err == nil {
		if existingRequest.Status == "PENDING" {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
		}
		if existingRequest.Status == "APPROVED" {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
		}
	}

	request := courseModels.CertificateRequest{
		StudentID:    userID,
		CourseID:     uint(courseID),
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate requested successfully!", request)
}

// AdminReviewCertificate approves or rejects a pending certificate request.
// Approval issues the certificate and notifies the student.
func AdminReviewCertificate(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	reqData, ok := c.Locals("validatedCertificateReview").(*struct {
		Approve bool   `json:"approve"`
		Reason  string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ?", requestID, false, "PENDING").First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found or already reviewed!", nil)
	}

	now := time.Now()

	if !reqData.Approve {
		request.Status = "REJECTED"
		request.RejectionReason = reqData.Reason
		if err := database.Database.Db.Save(&request).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", request)
	}

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", request.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", request.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	certificateNumber := strings.ToUpper(uuid.NewString()[:8])
	certificate := courseModels.Certificate{
		StudentID:         request.StudentID,
		CourseID:          request.CourseID,
		CertificateURL:    fmt.Sprintf("certificates/%d/%s.pdf", request.CourseID, certificateNumber),
		CertificateNumber: certificateNumber,
		IssuedAt:          now,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&certificate).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	request.Status = "APPROVED"
	request.ApprovedAt = &now
	request.ApprovedBy = &adminID
	if err := tx.Save(&request).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update request!", nil)
	}
	tx.Commit()

	go utils.SendCertificateEmail(student.Email, student.Name, course.Title, certificateNumber)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", certificate)
}

// GetUserCertificates lists the student's certificates with short-lived
// signed download URLs
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	ttl := shortSignedURLTTL()
	storage.BatchProcess(c.UserContext(), len(certificates), storage.DefaultBatchConcurrency, func(ctx context.Context, i int) {
		if key := storage.ExtractStorageKey(certificates[i].CertificateURL); key != "" {
			if signed, err := storage.Default.Sign(ctx, key, ttl); err == nil {
				certificates[i].CertificateURL = signed
			}
		}
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}
