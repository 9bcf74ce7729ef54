package repository

import (
	"context"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	DeleteByPost(ctx context.Context, postID uint) error
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, log: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": comment.ID, "post_id": comment.PostID})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.TrackQuery("get", "comments")()
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns the comments of a post in creation order.
func (r *commentRepository) ListByPost(
	ctx context.Context,
	postID uint,
) ([]*models.Comment, error) {
	defer observability.TrackQuery("list", "comments")()
	var comments []*models.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("update", "comments")()
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": comment.ID})
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "comments")()
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID uint) error {
	defer observability.TrackQuery("delete_by_post", "comments")()
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": postID, "rows": result.RowsAffected})
	return nil
}
