package controllers

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProgressDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Section{},
		&courseModels.CourseContent{},
		&courseModels.Enrollment{},
		&courseModels.ContentProgress{},
	))

	return db
}

// seedCourse creates a published course with the given number of published
// content items plus an enrollment for the student, and returns the content IDs
func seedCourse(t *testing.T, db *gorm.DB, studentID uint, contentCount int) (uint, []uint) {
	t.Helper()

	course := courseModels.Course{
		Title:       "Intro to Testing",
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	section := courseModels.Section{
		CourseID: course.ID,
		Title:    "Basics",
	}
	require.NoError(t, db.Create(&section).Error)

	contentIDs := make([]uint, 0, contentCount)
	for i := 0; i < contentCount; i++ {
		content := courseModels.CourseContent{
			CourseID:    course.ID,
			SectionID:   section.ID,
			Title:       "Lesson",
			ContentType: courseModels.ContentTypeText,
			ContentText: "hello",
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&content).Error)
		contentIDs = append(contentIDs, content.ID)
	}

	enrollment := courseModels.Enrollment{
		StudentID: studentID,
		CourseID:  course.ID,
		Status:    "ENROLLED",
	}
	require.NoError(t, db.Create(&enrollment).Error)

	return course.ID, contentIDs
}

func TestRecordContentAccessPreservesFirstAccess(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 2)

	require.NoError(t, recordContentAccess(db, 1, courseID, contentIDs[0]))

	var first courseModels.ContentProgress
	require.NoError(t, db.Where("student_id = ? AND content_id = ?", 1, contentIDs[0]).First(&first).Error)
	require.NotNil(t, first.AccessedAt)
	firstAccess := *first.AccessedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, recordContentAccess(db, 1, courseID, contentIDs[0]))

	var second courseModels.ContentProgress
	require.NoError(t, db.Where("student_id = ? AND content_id = ?", 1, contentIDs[0]).First(&second).Error)
	require.NotNil(t, second.AccessedAt)

	// Re-access keeps the original first-access timestamp
	assert.True(t, second.AccessedAt.Equal(firstAccess))
	assert.True(t, second.IsAccessed)

	// Still a single row for the triple
	var count int64
	db.Model(&courseModels.ContentProgress{}).Where("student_id = ? AND content_id = ?", 1, contentIDs[0]).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordContentCompletionComputesRatio(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 4)

	percentage, err := recordContentCompletion(db, 1, courseID, contentIDs[0], 30)
	require.NoError(t, err)
	assert.Equal(t, 25, percentage)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&enrollment).Error)
	assert.Equal(t, 25, enrollment.Progress)
	assert.Equal(t, 1, enrollment.CompletedContents)
	assert.Equal(t, 4, enrollment.TotalContents)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
	assert.Nil(t, enrollment.CompletionDate)
}

func TestRecordContentCompletionAccumulatesTimeSpent(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 2)

	_, err := recordContentCompletion(db, 1, courseID, contentIDs[0], 30)
	require.NoError(t, err)
	_, err = recordContentCompletion(db, 1, courseID, contentIDs[0], 45)
	require.NoError(t, err)

	var record courseModels.ContentProgress
	require.NoError(t, db.Where("student_id = ? AND content_id = ?", 1, contentIDs[0]).First(&record).Error)
	assert.Equal(t, 75, record.TimeSpent)
	assert.True(t, record.IsCompleted)
	require.NotNil(t, record.CompletedAt)
}

func TestCompletingAllContentFinishesCourse(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 3)

	var percentage int
	var err error
	for _, id := range contentIDs {
		percentage, err = recordContentCompletion(db, 1, courseID, id, 10)
		require.NoError(t, err)
	}
	assert.Equal(t, 100, percentage)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&enrollment).Error)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	require.NotNil(t, enrollment.CompletionDate)
}

func TestNewContentDropsProgressBelowHundred(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 2)

	for _, id := range contentIDs {
		_, err := recordContentCompletion(db, 1, courseID, id, 0)
		require.NoError(t, err)
	}

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&enrollment).Error)
	require.NotNil(t, enrollment.CompletionDate)

	// Publishing more content reopens the course on the next recompute
	var section courseModels.Section
	require.NoError(t, db.Where("course_id = ?", courseID).First(&section).Error)
	extra := courseModels.CourseContent{
		CourseID:    courseID,
		SectionID:   section.ID,
		Title:       "New lesson",
		ContentType: courseModels.ContentTypeText,
		ContentText: "more",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&extra).Error)

	percentage, err := recomputeCourseProgress(db, 1, courseID)
	require.NoError(t, err)
	assert.Equal(t, 67, percentage)

	// Re-scan into a zeroed struct: gorm's First leaves a stale non-nil
	// pointer field untouched when the column is NULL.
	enrollment = courseModels.Enrollment{}
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&enrollment).Error)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
	assert.Nil(t, enrollment.CompletionDate)
	assert.Equal(t, 3, enrollment.TotalContents)
}

func TestProgressSummaryWithNoContent(t *testing.T) {
	db := setupProgressDB(t)
	courseID, _ := seedCourse(t, db, 1, 0)

	summary, err := courseProgressSummary(db, 1, courseID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, 0, summary.TotalContents)
	assert.Equal(t, 0, summary.CompletedContents)

	percentage, err := recomputeCourseProgress(db, 1, courseID)
	require.NoError(t, err)
	assert.Equal(t, 0, percentage)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&enrollment).Error)
	assert.Equal(t, "ENROLLED", enrollment.Status)
}

func TestUnpublishedContentExcludedFromTotals(t *testing.T) {
	db := setupProgressDB(t)
	courseID, contentIDs := seedCourse(t, db, 1, 2)

	var section courseModels.Section
	require.NoError(t, db.Where("course_id = ?", courseID).First(&section).Error)
	draft := courseModels.CourseContent{
		CourseID:    courseID,
		SectionID:   section.ID,
		Title:       "Draft lesson",
		ContentType: courseModels.ContentTypeText,
		ContentText: "unpublished",
		IsPublished: false,
	}
	require.NoError(t, db.Create(&draft).Error)

	percentage, err := recordContentCompletion(db, 1, courseID, contentIDs[0], 0)
	require.NoError(t, err)

	// Draft content does not count toward the total
	assert.Equal(t, 50, percentage)
}
