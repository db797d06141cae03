package controllers

import (
	"math"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var progressConflictColumns = []clause.Column{
	{Name: "student_id"},
	{Name: "course_id"},
	{Name: "content_id"},
}

// recordContentAccess upserts the access flag for one (student, course,
// content) triple. The first access timestamp is preserved: accessed_at is
// only written when it is still NULL. The upsert is a single atomic
// statement, so concurrent requests cannot lose updates.
func recordContentAccess(db *gorm.DB, studentID, courseID, contentID uint) error {
	now := time.Now()
	record := courseModels.ContentProgress{
		StudentID:  studentID,
		CourseID:   courseID,
		ContentID:  contentID,
		IsAccessed: true,
		AccessedAt: &now,
	}

	return db.Clauses(clause.OnConflict{
		Columns: progressConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_accessed": true,
			"accessed_at": gorm.Expr("COALESCE(accessed_at, ?)", now),
			"updated_at":  now,
		}),
	}).Create(&record).Error
}

// recordContentCompletion upserts the completion flag (last completion wins),
// accumulates time spent, and recomputes the course progress percentage. It
// returns the freshly computed percentage.
func recordContentCompletion(db *gorm.DB, studentID, courseID, contentID uint, timeSpentDelta int) (int, error) {
	now := time.Now()
	record := courseModels.ContentProgress{
		StudentID:   studentID,
		CourseID:    courseID,
		ContentID:   contentID,
		IsCompleted: true,
		CompletedAt: &now,
		TimeSpent:   timeSpentDelta,
	}

	err := db.Clauses(clause.OnConflict{
		Columns: progressConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
			"time_spent":   gorm.Expr("time_spent + ?", timeSpentDelta),
			"updated_at":   now,
		}),
	}).Create(&record).Error
	if err != nil {
		return 0, err
	}

	return recomputeCourseProgress(db, studentID, courseID)
}

// recomputeCourseProgress rebuilds the denormalized progress on the
// enrollment row from source counts. The percentage is always the plain
// completed/total ratio; the completion date is set when it reaches 100 and
// cleared when a recompute lands below 100 (for example after new content is
// published).
func recomputeCourseProgress(db *gorm.DB, studentID, courseID uint) (int, error) {
	var total, completed int64
	if err := db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&courseModels.ContentProgress{}).
		Where("student_id = ? AND course_id = ? AND is_completed = ?", studentID, courseID, true).
		Count(&completed).Error; err != nil {
		return 0, err
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	if percentage > 100 {
		percentage = 100
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).
		First(&enrollment).Error; err != nil {
		return percentage, err
	}

	enrollment.Progress = percentage
	enrollment.CompletedContents = int(completed)
	enrollment.TotalContents = int(total)

	if percentage >= 100 {
		enrollment.Status = "COMPLETED"
		if enrollment.CompletionDate == nil {
			now := time.Now()
			enrollment.CompletionDate = &now
		}
	} else {
		enrollment.CompletionDate = nil
		if percentage > 0 {
			enrollment.Status = "IN_PROGRESS"
		} else {
			enrollment.Status = "ENROLLED"
		}
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return percentage, err
	}

	return percentage, nil
}

type progressSummary struct {
	Percentage        int `json:"percentage"`
	TotalContents     int `json:"total_contents"`
	CompletedContents int `json:"completed_contents"`
}

// courseProgressSummary computes the summary from source counts. A course
// with no published content reports 0, not an error.
func courseProgressSummary(db *gorm.DB, studentID, courseID uint) (progressSummary, error) {
	var total, completed int64
	if err := db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&total).Error; err != nil {
		return progressSummary{}, err
	}
	if err := db.Model(&courseModels.ContentProgress{}).
		Where("student_id = ? AND course_id = ? AND is_completed = ?", studentID, courseID, true).
		Count(&completed).Error; err != nil {
		return progressSummary{}, err
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	if percentage > 100 {
		percentage = 100
	}

	return progressSummary{
		Percentage:        percentage,
		TotalContents:     int(total),
		CompletedContents: int(completed),
	}, nil
}

func MarkContentComplete(c *fiber.Ctx) error {
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
	timeSpent := c.Locals("timeSpent").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	// Access tracking must never run for an unenrolled student
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	percentage, err := recordContentCompletion(database.Database.Db, userID, uint(courseID), uint(contentID), timeSpent)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content as completed!", nil)
	}

	if percentage >= 100 {
		go utils.SendCourseCompletionEmail(user.Email, user.Name, course.Title)
	}

	summary, err := courseProgressSummary(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", summary)
}

func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	summary, err := courseProgressSummary(database.Database.Db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	// Per-section breakdown, for display only. The stored percentage always
	// comes from the plain completed/total ratio above.
	var sections []courseModels.Section
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	type sectionProgress struct {
		SectionID         uint    `json:"section_id"`
		SectionName       string  `json:"section_name"`
		TotalContents     int64   `json:"total_contents"`
		CompletedContents int64   `json:"completed_contents"`
		Progress          float64 `json:"progress"`
	}

	sectionBreakdown := make([]sectionProgress, len(sections))
	for i, section := range sections {
		var totalContent int64
		var completedContent int64

		database.Database.Db.Model(&courseModels.CourseContent{}).
			Where("section_id = ? AND is_deleted = ? AND is_published = ?", section.ID, false, true).
			Count(&totalContent)
		database.Database.Db.Model(&courseModels.ContentProgress{}).
			Joins("JOIN course_contents ON content_progresses.content_id = course_contents.id").
			Where("content_progresses.student_id = ? AND course_contents.section_id = ? AND content_progresses.is_completed = ?", userID, section.ID, true).
			Count(&completedContent)

		progress := float64(0)
		if totalContent > 0 {
			progress = float64(completedContent) / float64(totalContent) * 100
		}

		sectionBreakdown[i] = sectionProgress{
			SectionID:         section.ID,
			SectionName:       section.Title,
			TotalContents:     totalContent,
			CompletedContents: completedContent,
			Progress:          progress,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":       enrollment,
		"summary":          summary,
		"section_progress": sectionBreakdown,
	})
}
