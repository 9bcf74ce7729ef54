package server

import (
	"board/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedBy string   `json:"created_by"`
	Tags      []string `json:"tags"`
}

type updatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	UpdatedBy string   `json:"updated_by"`
	Tags      []string `json:"tags"`
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Create a post with an ordered tag list
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "Post"
// @Success 201 {object} idResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	id, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: req.CreatedBy,
		Tags:      req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(idResponse{ID: id})
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update post
// @Description Replace title, content and tags. Only the author may update.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body updatePostRequest true "Post"
// @Success 200 {object} idResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	id, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:    postID,
		Title:     req.Title,
		Content:   req.Content,
		UpdatedBy: req.UpdatedBy,
		Tags:      req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(idResponse{ID: id})
}

// DeletePost handles DELETE /api/posts/:id?deleteBy=
// @Summary Delete post
// @Description Delete a post with its comments, tags and likes. Only the author may delete.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Param deleteBy query string true "Requesting author"
// @Success 200 {object} idResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	id, err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		PostID:    postID,
		DeletedBy: c.Query("deleteBy"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(idResponse{ID: id})
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Description Post with its tags, like count and comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// FindPosts handles GET /api/posts
// @Summary Search posts
// @Description Newest first. tag takes precedence over title and createdBy.
// @Tags posts
// @Produce json
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size" default(20)
// @Param title query string false "Title substring"
// @Param createdBy query string false "Exact author"
// @Param tag query string false "Tag name"
// @Success 200 {object} models.Page[models.PostSummary]
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) FindPosts(c *fiber.Ctx) error {
	page, err := s.parsePage(c)
	if err != nil {
		return nil
	}

	result, err := s.postService.FindPageBy(c.UserContext(), page, service.PostSearchInput{
		Title:     optionalQuery(c, "title"),
		CreatedBy: optionalQuery(c, "createdBy"),
		Tag:       optionalQuery(c, "tag"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
