package models

import "time"

// CommentView is a comment as shown inside a post detail.
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetail is the full representation of a single post.
type PostDetail struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedBy string        `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedBy *string       `json:"updated_by,omitempty"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	Tags      []string      `json:"tags"`
	LikeCount int64         `json:"like_count"`
	Comments  []CommentView `json:"comments"`
}

// PostSummary is the reduced representation returned by paginated search.
type PostSummary struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	CreatedBy string  `json:"created_by"`
	FirstTag  *string `json:"first_tag,omitempty"`
	LikeCount int64   `json:"like_count"`
}

// NewPostDetail assembles a detail view. tags must be ordered by position
// and comments by creation.
func NewPostDetail(post *Post, tags []*Tag, comments []*Comment, likeCount int64) *PostDetail {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:        c.ID,
			Content:   c.Content,
			CreatedBy: c.CreatedBy,
			CreatedAt: c.CreatedAt,
		})
	}
	return &PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedBy: post.CreatedBy,
		CreatedAt: post.CreatedAt,
		UpdatedBy: post.UpdatedBy,
		UpdatedAt: post.UpdatedAt,
		Tags:      names,
		LikeCount: likeCount,
		Comments:  views,
	}
}
