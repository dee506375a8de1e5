package models

import (
	"time"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"` // Hash
	AvatarURL   string     `json:"avatar_url"`
	Role        string     `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	IsBanned    bool       `gorm:"default:false" json:"is_banned"`
	BannedAt    *time.Time `json:"banned_at"`
	GoogleID    string     `gorm:"index" json:"google_id"`
	IsActivated bool       `gorm:"default:false" json:"is_activated"`
	VerifyCode  string     `gorm:"size:20" json:"-"` // activation / password reset code
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}
