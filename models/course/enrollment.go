package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's enrollment in a course. Progress is the
// denormalized course completion percentage, recomputed from content progress
// counts on every completion event, never patched incrementally.
type Enrollment struct {
	gorm.Model
	StudentID         uint       `json:"student_id" gorm:"index;not null"`
	CourseID          uint       `json:"course_id" gorm:"index;not null"`
	Status            string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress          int        `json:"progress" gorm:"default:0"`        // 0..100
	CompletedContents int        `json:"completed_contents" gorm:"default:0"`
	TotalContents     int        `json:"total_contents" gorm:"default:0"`
	CompletionDate    *time.Time `json:"completion_date"`
	IsDeleted         bool       `gorm:"default:false"`
}
