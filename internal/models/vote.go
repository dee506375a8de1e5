package models

import (
	"time"
)

const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Vote holds one voter's stance on one target. The unique index on
// (target_type, target_id, user_id) is what guarantees a single live vote
// per voter per target; toggling and flipping mutate this row in place.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:idx_target_voter" json:"target_type"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_target_voter" json:"target_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_target_voter;index" json:"user_id"`
	Value      int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt  time.Time `json:"created_at"`
}
