package models

import (
	"time"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// ReportCategories are the abuse categories a reporter can pick from.
// "other" requires a free-text reason.
var ReportCategories = []string{
	"hate-speech",
	"religious-extremism",
	"sexual-content",
	"bullying-harassment",
	"spam",
	"misinformation",
	"other",
}

type Report struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ContentType    string    `gorm:"size:20;not null;uniqueIndex:idx_content_reporter" json:"content_type"` // "post", "comment"
	ContentID      uint      `gorm:"not null;uniqueIndex:idx_content_reporter;index" json:"content_id"`
	ContentOwnerID uint      `gorm:"not null" json:"content_owner_id"`
	ReporterID     uint      `gorm:"not null;uniqueIndex:idx_content_reporter;index" json:"reporter_id"`
	Reporter       User      `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reporter"`
	Category       string    `gorm:"size:40;not null" json:"category"`
	Reason         string    `gorm:"size:500" json:"reason"`
	Status         string    `gorm:"size:20;default:'pending';not null" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
