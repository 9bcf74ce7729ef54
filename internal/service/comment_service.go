package service

import (
	"context"
	"fmt"
	"time"

	"board/internal/events"
	"board/internal/models"
	"board/internal/repository"
)

// CommentService manages comment lifecycle.
type CommentService struct {
	tx        repository.Transactor
	publisher events.Publisher
	now       func() time.Time
}

type CreateCommentInput struct {
	PostID    uint
	Content   string
	CreatedBy string
}

type UpdateCommentInput struct {
	CommentID uint
	Content   string
	UpdatedBy string
}

type DeleteCommentInput struct {
	CommentID uint
	DeletedBy string
}

func NewCommentService(
	tx repository.Transactor,
	publisher events.Publisher,
) *CommentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CommentService{
		tx:        tx,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (id uint, err error) {
	ctx, end := trace(ctx, "comment", "create")
	defer end(&err)

	now := s.now()
	var comment *models.Comment
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		if _, err := st.Posts.GetByID(ctx, in.PostID); err != nil {
			return loadPostError(err, in.PostID)
		}
		comment = models.NewComment(in.PostID, in.Content, in.CreatedBy, now)
		if err := st.Comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	events.PublishAfterCommit(ctx, s.publisher, events.New(events.CommentCreated, comment.PostID, comment.ID, in.CreatedBy, now))
	return comment.ID, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (id uint, err error) {
	ctx, end := trace(ctx, "comment", "update")
	defer end(&err)

	now := s.now()
	var comment *models.Comment
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		c, err := st.Comments.GetByID(ctx, in.CommentID)
		if err != nil {
			return loadCommentError(err, in.CommentID)
		}
		if err := c.Update(in.Content, in.UpdatedBy, now); err != nil {
			return err
		}
		if err := st.Comments.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}
		comment = c
		return nil
	})
	if err != nil {
		return 0, err
	}

	events.PublishAfterCommit(ctx, s.publisher, events.New(events.CommentUpdated, comment.PostID, comment.ID, in.UpdatedBy, now))
	return comment.ID, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (id uint, err error) {
	ctx, end := trace(ctx, "comment", "delete")
	defer end(&err)

	var comment *models.Comment
	err = s.tx.WithinTransaction(ctx, func(st repository.Stores) error {
		c, err := st.Comments.GetByID(ctx, in.CommentID)
		if err != nil {
			return loadCommentError(err, in.CommentID)
		}
		if err := c.CheckDelete(in.DeletedBy); err != nil {
			return err
		}
		if err := st.Comments.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		comment = c
		return nil
	})
	if err != nil {
		return 0, err
	}

	events.PublishAfterCommit(ctx, s.publisher, events.New(events.CommentDeleted, comment.PostID, comment.ID, in.DeletedBy, s.now()))
	return comment.ID, nil
}
