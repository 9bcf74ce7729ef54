package service

import (
	"context"
	"fmt"
	"time"

	"board/internal/cache"
	"board/internal/events"
	"board/internal/models"
	"board/internal/repository"
)

// LikeService creates likes and serves per-post like counts.
type LikeService struct {
	stores    repository.Stores
	tx        repository.Transactor
	publisher events.Publisher
	now       func() time.Time
}

func NewLikeService(
	stores repository.Stores,
	tx repository.Transactor,
	publisher events.Publisher,
) *LikeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LikeService{
		stores:    stores,
		tx:        tx,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateLike records one like by createdBy. Repeated likes by the same
// author are all counted.
func (s *LikeService) CreateLike(ctx context.Context, postID uint, createdBy string) (id uint, err error) {
	ctx, end := trace(ctx, "like", "create")
	defer end(&err)

	now := s.now()
	var like *models.Like
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		if _, err := st.Posts.GetByID(ctx, postID); err != nil {
			return loadPostError(err, postID)
		}
		like = models.NewLike(postID, createdBy, now)
		if err := st.Likes.Create(ctx, like); err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	cache.InvalidateLikeCount(ctx, postID)
	events.PublishAfterCommit(ctx, s.publisher, events.New(events.LikeCreated, postID, like.ID, createdBy, now))
	return like.ID, nil
}

// CountLike returns the number of likes on a post, or 0 when there are
// none. It does not check that the post exists. Counts are cached per post
// and every like write bumps the post's generation, so a count read before
// a committed CreateLike is never cached.
func (s *LikeService) CountLike(ctx context.Context, postID uint) (count int64, err error) {
	ctx, end := trace(ctx, "like", "count")
	defer end(&err)

	err = cache.Aside(ctx, cache.LikeCountKey(postID), cache.LikeCountGenKey(postID), &count, cache.LikeCountTTL, func() error {
		n, err := s.stores.Likes.CountByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}
		count = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
