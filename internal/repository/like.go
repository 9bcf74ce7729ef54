package repository

import (
	"context"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint) error
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

// Create inserts a like. Repeated likes by one author are separate rows.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.TrackQuery("create", "likes")()
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": like.ID, "post_id": like.PostID})
	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	defer observability.TrackQuery("count", "likes")()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByPost(ctx context.Context, postID uint) error {
	defer observability.TrackQuery("delete_by_post", "likes")()
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": postID, "rows": result.RowsAffected})
	return nil
}
