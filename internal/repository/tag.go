package repository

import (
	"context"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// TagRepository defines interface for tag operations
type TagRepository interface {
	CreateBatch(ctx context.Context, tags []*models.Tag) error
	ListByPost(ctx context.Context, postID uint) ([]*models.Tag, error)
	DeleteByPost(ctx context.Context, postID uint) error
	// FirstTagsByPosts maps each post id to the name of its lowest-position
	// tag. Posts without tags are absent from the map.
	FirstTagsByPosts(ctx context.Context, postIDs []uint) (map[uint]string, error)
	// FindPostPageByTag returns one page of posts carrying a tag with the
	// given name, newest first, and the total number of such posts.
	FindPostPageByTag(ctx context.Context, name string, page models.PageRequest) ([]*models.Post, int64, error)
}

type tagRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db, log: observability.NewRepoLogger("tags")}
}

func (r *tagRepository) CreateBatch(ctx context.Context, tags []*models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	defer observability.TrackQuery("create", "tags")()
	if err := r.db.WithContext(ctx).Create(&tags).Error; err != nil {
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"post_id": tags[0].PostID, "count": len(tags)})
	return nil
}

func (r *tagRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Tag, error) {
	defer observability.TrackQuery("list", "tags")()
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("position asc").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) DeleteByPost(ctx context.Context, postID uint) error {
	defer observability.TrackQuery("delete_by_post", "tags")()
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": postID, "rows": result.RowsAffected})
	return nil
}

func (r *tagRepository) FirstTagsByPosts(ctx context.Context, postIDs []uint) (map[uint]string, error) {
	first := make(map[uint]string, len(postIDs))
	if len(postIDs) == 0 {
		return first, nil
	}
	defer observability.TrackQuery("first_tags", "tags")()
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("post_id asc, position asc").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if _, ok := first[t.PostID]; !ok {
			first[t.PostID] = t.Name
		}
	}
	return first, nil
}

func (r *tagRepository) FindPostPageByTag(ctx context.Context, name string, page models.PageRequest) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("find_page_by_tag", "posts")()
	tagged := r.db.Model(&models.Tag{}).Select("post_id").Where("name = ?", name)
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("posts.id IN (?)", tagged).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if int64(page.Offset()) >= total {
		return []*models.Post{}, total, nil
	}

	var posts []*models.Post
	err := query.
		Order("posts.id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
