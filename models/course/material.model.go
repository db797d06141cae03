package course

import "gorm.io/gorm"

// CourseMaterial represents a downloadable study/exam material attached to a
// course. Description is long-form and may embed storage URLs inline.
type CourseMaterial struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	FileURL     string `json:"file_url"` // storage key or full URL
	FileType    string `json:"file_type" gorm:"default:'PDF'"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
