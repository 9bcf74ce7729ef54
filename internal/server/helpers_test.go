package server

import (
	"errors"
	"fmt"
	"testing"

	"board/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "parent comment ID", humanizeParam("parentCommentId"))
	assert.Equal(t, "slug", humanizeParam("slug"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewPostNotFoundError(1), fiber.StatusNotFound},
		{models.NewCommentNotAuthorizedError("no"), fiber.StatusForbidden},
		{models.NewValidationError("bad"), fiber.StatusBadRequest},
		{models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", models.NewPostNotFoundError(2)), fiber.StatusNotFound},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
