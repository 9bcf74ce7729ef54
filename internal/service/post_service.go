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

// PostService manages post lifecycle, tag replacement and search.
type PostService struct {
	tx        repository.Transactor
	likes     *LikeService
	publisher events.Publisher
	now       func() time.Time
}

type CreatePostInput struct {
	Title     string
	Content   string
	CreatedBy string
	Tags      []string
}

type UpdatePostInput struct {
	PostID    uint
	Title     string
	Content   string
	UpdatedBy string
	// Tags replaces the post's whole tag list, in order.
	Tags []string
}

type DeletePostInput struct {
	PostID    uint
	DeletedBy string
}

// PostSearchInput filters FindPageBy. Tag takes precedence over the other
// filters when set.
type PostSearchInput struct {
	Title     *string
	CreatedBy *string
	Tag       *string
}

func NewPostService(
	tx repository.Transactor,
	likes *LikeService,
	publisher events.Publisher,
) *PostService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PostService{
		tx:        tx,
		likes:     likes,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreatePost stores a post and its tags in one transaction.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (id uint, err error) {
	ctx, end := trace(ctx, "post", "create")
	defer end(&err)

	now := s.now()
	post := models.NewPost(in.Title, in.Content, in.CreatedBy, now)
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		if err := st.Posts.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if err := st.Tags.CreateBatch(ctx, post.BuildTags(in.Tags, now)); err != nil {
			return fmt.Errorf("failed to create tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	events.PublishAfterCommit(ctx, s.publisher, events.New(events.PostCreated, post.ID, post.ID, in.CreatedBy, now))
	return post.ID, nil
}

// UpdatePost replaces title, content and the full tag list. Only the author
// may update.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (id uint, err error) {
	ctx, end := trace(ctx, "post", "update")
	defer end(&err)

	now := s.now()
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		post, err := st.Posts.GetByID(ctx, in.PostID)
		if err != nil {
			return loadPostError(err, in.PostID)
		}
		if err := post.Update(in.Title, in.Content, in.UpdatedBy, now); err != nil {
			return err
		}
		if err := st.Posts.Update(ctx, post); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if err := st.Tags.DeleteByPost(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		if err := st.Tags.CreateBatch(ctx, post.BuildTags(in.Tags, now)); err != nil {
			return fmt.Errorf("failed to create tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	events.PublishAfterCommit(ctx, s.publisher, events.New(events.PostUpdated, in.PostID, in.PostID, in.UpdatedBy, now))
	return in.PostID, nil
}

// DeletePost removes a post together with its comments, tags and likes.
// Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (id uint, err error) {
	ctx, end := trace(ctx, "post", "delete")
	defer end(&err)

	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		post, err := st.Posts.GetByID(ctx, in.PostID)
		if err != nil {
			return loadPostError(err, in.PostID)
		}
		if err := post.CheckDelete(in.DeletedBy); err != nil {
			return err
		}
		if err := st.Comments.DeleteByPost(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := st.Tags.DeleteByPost(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to delete tags: %w", err)
		}
		if err := st.Likes.DeleteByPost(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if err := st.Posts.Delete(ctx, post.ID); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	cache.InvalidateLikeCount(ctx, in.PostID)
	events.PublishAfterCommit(ctx, s.publisher, events.New(events.PostDeleted, in.PostID, in.PostID, in.DeletedBy, s.now()))
	return in.PostID, nil
}

// GetPost assembles the detail view of a post from one read snapshot. The
// like count is read from the store rather than the cache for that reason.
func (s *PostService) GetPost(ctx context.Context, id uint) (detail *models.PostDetail, err error) {
	ctx, end := trace(ctx, "post", "get")
	defer end(&err)

	var (
		post      *models.Post
		comments  []*models.Comment
		tags      []*models.Tag
		likeCount int64
	)
	err = s.tx.WithinReadTransaction(ctx, func(st repository.Stores) error {
		var err error
		if post, err = st.Posts.GetByID(ctx, id); err != nil {
			return loadPostError(err, id)
		}
		if comments, err = st.Comments.ListByPost(ctx, id); err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		if tags, err = st.Tags.ListByPost(ctx, id); err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if likeCount, err = st.Likes.CountByPost(ctx, id); err != nil {
			return fmt.Errorf("failed to count likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return models.NewPostDetail(post, tags, comments, likeCount), nil
}

// FindPageBy returns one page of post summaries, newest first.
func (s *PostService) FindPageBy(ctx context.Context, page models.PageRequest, in PostSearchInput) (result *models.Page[models.PostSummary], err error) {
	ctx, end := trace(ctx, "post", "find_page")
	defer end(&err)

	var (
		posts     []*models.Post
		total     int64
		firstTags map[uint]string
	)
	err = s.tx.WithinReadTransaction(ctx, func(st repository.Stores) error {
		var err error
		if in.Tag != nil {
			posts, total, err = st.Tags.FindPostPageByTag(ctx, *in.Tag, page)
		} else {
			posts, total, err = st.Posts.FindPage(ctx, repository.PostFilter{
				Title:     in.Title,
				CreatedBy: in.CreatedBy,
			}, page)
		}
		if err != nil {
			return fmt.Errorf("failed to find posts: %w", err)
		}

		ids := make([]uint, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		if firstTags, err = st.Tags.FirstTagsByPosts(ctx, ids); err != nil {
			return fmt.Errorf("failed to load first tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		count, err := s.likes.CountLike(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summary := models.PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			CreatedBy: p.CreatedBy,
			LikeCount: count,
		}
		if name, ok := firstTags[p.ID]; ok {
			summary.FirstTag = &name
		}
		summaries = append(summaries, summary)
	}
	return models.NewPage(summaries, page, total), nil
}
