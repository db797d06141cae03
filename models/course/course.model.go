package course

import "gorm.io/gorm"

// Course represents a learning course owned by an institute
type Course struct {
	gorm.Model
	InstituteID uint   `json:"institute_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Duration    int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status      string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	Rating      uint   `json:"rating" gorm:"default:0"`
	CourseImage string `json:"course_image"` // storage key or full URL
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
