package models

// Tag is a named label on a post. Position is its index in the post's
// ordered tag list.
type Tag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index:idx_tags_post_position,priority:1" json:"post_id"`
	Name     string `gorm:"size:255;not null;index" json:"name"`
	Position int    `gorm:"not null;index:idx_tags_post_position,priority:2" json:"position"`
	Audit    `gorm:"embedded"`
}
