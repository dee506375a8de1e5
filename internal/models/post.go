package models

import (
	"time"
)

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Pid           string    `gorm:"uniqueIndex;size:12;not null" json:"pid"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CategoryID    uint      `gorm:"not null;index;default:1" json:"category_id"`
	Category      Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Title         string    `gorm:"not null" json:"title"`
	Text          string    `gorm:"type:text" json:"text"` // Optional
	ImageURL      string    `json:"image_url"`             // Optional, hosted by the image service
	Upvotes       int       `gorm:"default:0" json:"upvotes"`
	Downvotes     int       `gorm:"default:0" json:"downvotes"`
	CommentsCount int       `gorm:"default:0" json:"comments_count"`
	ReportCount   int       `gorm:"default:0" json:"report_count"`
	IsSuspended   bool      `gorm:"default:false" json:"is_suspended"`
	Sticky        bool      `gorm:"default:false" json:"sticky"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
