package server

import (
	"board/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Content   string `json:"content"`
	CreatedBy string `json:"created_by"`
}

type updateCommentRequest struct {
	Content   string `json:"content"`
	UpdatedBy string `json:"updated_by"`
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body createCommentRequest true "Comment"
// @Success 201 {object} idResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req createCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	id, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:    postID,
		Content:   req.Content,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(idResponse{ID: id})
}

// UpdateComment handles PUT /api/comments/:commentId
// @Summary Update comment
// @Description Only the comment's author may update it.
// @Tags comments
// @Accept json
// @Produce json
// @Param commentId path int true "Comment ID"
// @Param request body updateCommentRequest true "Comment"
// @Success 200 {object} idResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{commentId} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	var req updateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	id, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		CommentID: commentID,
		Content:   req.Content,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(idResponse{ID: id})
}

// DeleteComment handles DELETE /api/comments/:commentId?deleteBy=
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Param commentId path int true "Comment ID"
// @Param deleteBy query string true "Requesting author"
// @Success 200 {object} idResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	id, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		CommentID: commentID,
		DeletedBy: c.Query("deleteBy"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(idResponse{ID: id})
}
