package models

import "gorm.io/gorm"

// Institute represents an institution whose admins manage their own students
type Institute struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	Code          string `json:"code" gorm:"unique;not null"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ContactEmail  string `json:"contact_email"`
	ContactMobile string `json:"contact_mobile"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	IsDeleted     bool   `gorm:"default:false"`
}
