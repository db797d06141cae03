package course

import (
	"time"

	"gorm.io/gorm"
)

// ContentProgress tracks a student's access and completion of one content
// item. Uniquely keyed by (student, course, content); rows are upserted, and
// AccessedAt keeps the earliest access while CompletedAt keeps the latest
// completion. The two flags are independent: marking completion directly does
// not require a prior access event.
type ContentProgress struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"uniqueIndex:idx_student_course_content;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_student_course_content;not null"`
	ContentID   uint       `json:"content_id" gorm:"uniqueIndex:idx_student_course_content;not null"`
	IsAccessed  bool       `json:"is_accessed" gorm:"default:false"`
	AccessedAt  *time.Time `json:"accessed_at"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	TimeSpent   int        `json:"time_spent" gorm:"default:0"` // accumulated seconds
}
