package server

import (
	"time"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string} true "Post body"
// @Success 201 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetPosts handles GET /api/posts
// @Summary Global timeline, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page, err := s.postService.ListPosts(c.Context(), parsePage(c), viewerID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}

// GetFollowedPosts handles GET /api/posts/following
// @Summary Posts authored by accounts the current user follows
// @Tags posts
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Router /posts/following [get]
func (s *Server) GetFollowedPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListFollowedPosts(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}

// SearchPosts handles GET /api/posts/search
// @Summary Search posts by title, creation window and followed authors
// @Description All supplied predicates combine with AND
// @Tags posts
// @Produce json
// @Param title query string false "Title substring"
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Param following query bool false "Restrict to followed authors (requires auth)"
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/search [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	in := service.SearchPostsInput{
		Title: c.Query("title"),
		Page:  parsePage(c),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("from must be an RFC 3339 timestamp"))
		}
		in.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("to must be an RFC 3339 timestamp"))
		}
		in.To = to
	}

	viewerID, authed := s.optionalUserID(c)
	in.CurrentUserID = viewerID
	if c.QueryBool("following", false) {
		if !authed {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required for following filter"))
		}
		in.FollowingOnly = true
	}

	page, err := s.postService.SearchPosts(c.Context(), in)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	view, err := s.postService.GetPost(c.Context(), postID, viewerID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List one author's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.postService.ListUserPosts(c.Context(), authorID, parsePage(c), currentUserID(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string} true "Fields to change"
// @Success 200 {object} models.PostView
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete own post
// @Description Removes the post with its comments and like ledgers
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)
	isAdmin, err := s.userService.IsAdmin(c.Context(), userID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if err := s.postService.DeletePost(c.Context(), userID, postID, isAdmin); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
