package server

import "github.com/gofiber/fiber/v2"

type likeCountResponse struct {
	PostID uint  `json:"post_id"`
	Count  int64 `json:"count"`
}

// CreateLike handles POST /api/posts/:id/likes?createdBy=
// @Summary Like a post
// @Description Every call adds a like, including repeats by the same author.
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Param createdBy query string true "Liking author"
// @Success 201 {object} idResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/likes [post]
func (s *Server) CreateLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	id, err := s.likeService.CreateLike(c.UserContext(), postID, c.Query("createdBy"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(idResponse{ID: id})
}

// CountLikes handles GET /api/posts/:id/likes
// @Summary Count likes
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} likeCountResponse
// @Router /posts/{id}/likes [get]
func (s *Server) CountLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.likeService.CountLike(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likeCountResponse{PostID: postID, Count: count})
}
