package course

import "gorm.io/gorm"

// Content types supported for course content and materials.
const (
	ContentTypeText    = "TEXT"
	ContentTypePDF     = "PDF"
	ContentTypeDoc     = "DOC"
	ContentTypeImage   = "IMAGE"
	ContentTypeVideo   = "VIDEO"
	ContentTypeYoutube = "YOUTUBE"
	ContentTypeAudio   = "AUDIO"
)

// ValidContentTypes lists every accepted content type value
var ValidContentTypes = []string{
	ContentTypeText,
	ContentTypePDF,
	ContentTypeDoc,
	ContentTypeImage,
	ContentTypeVideo,
	ContentTypeYoutube,
	ContentTypeAudio,
}

// CourseContent represents a content item within a section.
// ContentURL carries the primary payload for file-backed types (PDF, DOC,
// IMAGE, VIDEO, AUDIO) and external links (YOUTUBE); ContentText carries it
// for TEXT items and may embed storage URLs inline.
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	SectionID   uint   `json:"section_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"`
	ContentURL  string `json:"content_url"`
	ContentText string `json:"content_text" gorm:"type:text"`
	IsFree      bool   `json:"is_free" gorm:"default:false"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
