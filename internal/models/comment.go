package models

import (
	"time"
)

// Comment is keyed (PostID, UserID): each author holds at most one live
// comment per post, enforced by the unique index rather than a lookup.
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"not null;uniqueIndex:idx_post_author" json:"post_id"`
	Post      Post       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_post_author" json:"user_id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	Upvotes   int        `gorm:"default:0" json:"upvotes"`
	Downvotes int        `gorm:"default:0" json:"downvotes"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at"`
}
