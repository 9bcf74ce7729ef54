// Package service holds the board's business logic: ownership checks,
// cascades and view assembly on top of the repository stores.
package service

import (
	"context"
	"errors"
	"fmt"

	"board/internal/models"
	"board/internal/observability"

	"gorm.io/gorm"
)

// trace opens a span for one service operation. The returned func ends it
// and records the outcome held in *errp.
func trace(ctx context.Context, entity, method string) (context.Context, func(errp *error)) {
	ctx, span := observability.GetTraceLayer().TraceServiceCall(ctx, entity+"_service", method)
	return ctx, func(errp *error) {
		err := *errp
		if err != nil {
			observability.RecordErrorInContext(ctx, err)
		}
		observability.RecordOperation(entity, method, err)
		span.End()
	}
}

func loadPostError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewPostNotFoundError(id)
	}
	return fmt.Errorf("failed to load post %d: %w", id, err)
}

func loadCommentError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewCommentNotFoundError(id)
	}
	return fmt.Errorf("failed to load comment %d: %w", id, err)
}
