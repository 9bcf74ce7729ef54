// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// PostFilter narrows a post page. Nil fields are not applied.
type PostFilter struct {
	// Title matches any post whose title contains it.
	Title     *string
	CreatedBy *string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	FindPage(ctx context.Context, filter PostFilter, page models.PageRequest) ([]*models.Post, int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": post.ID})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": post.ID})
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}

// FindPage returns one page of posts, newest first, and the total number of
// posts matching filter.
func (r *postRepository) FindPage(ctx context.Context, filter PostFilter, page models.PageRequest) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("find_page", "posts")()
	query := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.Title != nil {
		query = query.Where(`title LIKE ? ESCAPE '\'`, "%"+escapeLike(*filter.Title)+"%")
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if int64(page.Offset()) >= total {
		return []*models.Post{}, total, nil
	}

	var posts []*models.Post
	err := query.
		Order("id DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
