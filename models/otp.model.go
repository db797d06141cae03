package models

import (
	"time"

	"gorm.io/gorm"
)

type OTP struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Code      string    `json:"code" gorm:"not null"`
	Purpose   string    `json:"purpose" gorm:"default:'LOGIN'"` // LOGIN, VERIFY_MOBILE, FORGOT_PASSWORD
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	IsDeleted bool      `gorm:"default:false"`
}
