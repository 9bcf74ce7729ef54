package models

import "time"

// Comment is user content attached to a post.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Audit   `gorm:"embedded"`
}

// NewComment builds an unsaved comment on postID.
func NewComment(postID uint, content, createdBy string, now time.Time) *Comment {
	return &Comment{
		PostID:  postID,
		Content: content,
		Audit:   NewAudit(createdBy, now),
	}
}

// Update replaces the content on behalf of updatedBy.
func (c *Comment) Update(content, updatedBy string, now time.Time) error {
	if !c.OwnedBy(updatedBy) {
		return NewCommentNotAuthorizedError("You can only update your own comments")
	}
	c.Content = content
	c.Audit = c.Touch(updatedBy, now)
	return nil
}

// CheckDelete reports whether deletedBy may delete the comment.
func (c *Comment) CheckDelete(deletedBy string) error {
	if !c.OwnedBy(deletedBy) {
		return NewCommentNotAuthorizedError("You can only delete your own comments")
	}
	return nil
}
