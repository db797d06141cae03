package course

import "gorm.io/gorm"

// Section represents an ordered section within a course
type Section struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Section order in course
	IsDeleted   bool   `gorm:"default:false"`
}
