package models

import "time"

// Like is a single approval of a post. The same author may like a post
// more than once and every row counts.
type Like struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	Audit  `gorm:"embedded"`
}

// NewLike builds an unsaved like on postID.
func NewLike(postID uint, createdBy string, now time.Time) *Like {
	return &Like{PostID: postID, Audit: NewAudit(createdBy, now)}
}
