package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {array} models.UserView
// @Failure 403 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	views, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(views)
}

// ChangeUserRole handles PUT /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{role=string} true "New role (USER or ADMIN)"
// @Success 200 {object} models.UserView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (s *Server) ChangeUserRole(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.userService.ChangeRole(c.Context(), userID, models.UserRole(req.Role))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// BlockUser handles POST /api/admin/users/:id/block
// @Summary Toggle a user's moderation block
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id}/block [post]
func (s *Server) BlockUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	view, err := s.userService.ToggleBlock(c.Context(), userID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// DeleteUser handles DELETE /api/admin/users/:id
// @Summary Hard delete a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.DeleteUser(c.Context(), userID); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// PinPost handles POST /api/admin/posts/:id/pin
// @Summary Toggle a post's pinned flag
// @Tags admin
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/posts/{id}/pin [post]
func (s *Server) PinPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	view, err := s.postService.TogglePin(c.Context(), postID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// AdminUpdateComment handles PUT /api/admin/comments/:id
// @Summary Edit any comment
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{content=string} true "New content"
// @Success 200 {object} models.CommentView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/comments/{id} [put]
func (s *Server) AdminUpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.commentService.AdminUpdateComment(c.Context(), commentID, req.Content)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// AdminDeleteComment handles DELETE /api/admin/comments/:id
// @Summary Delete any comment
// @Tags admin
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/comments/{id} [delete]
func (s *Server) AdminDeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.commentService.AdminDeleteComment(c.Context(), commentID); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
