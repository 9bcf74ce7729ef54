package models

import "time"

// Post is the root content entity. Its tags, comments and likes reference it
// by PostID and are loaded through their own stores.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Audit   `gorm:"embedded"`
}

// NewPost builds an unsaved post authored by createdBy.
func NewPost(title, content, createdBy string, now time.Time) *Post {
	return &Post{
		Title:   title,
		Content: content,
		Audit:   NewAudit(createdBy, now),
	}
}

// Update replaces title and content on behalf of updatedBy.
// Only the author may update; on refusal the post is left untouched.
func (p *Post) Update(title, content, updatedBy string, now time.Time) error {
	if !p.OwnedBy(updatedBy) {
		return NewPostNotAuthorizedError("You can only update your own posts")
	}
	p.Title = title
	p.Content = content
	p.Audit = p.Touch(updatedBy, now)
	return nil
}

// CheckDelete reports whether deletedBy may delete the post.
func (p *Post) CheckDelete(deletedBy string) error {
	if !p.OwnedBy(deletedBy) {
		return NewPostNotAuthorizedError("You can only delete your own posts")
	}
	return nil
}

// BuildTags turns an ordered list of names into tags positioned by index.
func (p *Post) BuildTags(names []string, now time.Time) []*Tag {
	tags := make([]*Tag, 0, len(names))
	for i, name := range names {
		tags = append(tags, &Tag{
			PostID:   p.ID,
			Name:     name,
			Position: i,
			Audit:    NewAudit(p.CreatedBy, now),
		})
	}
	return tags
}
