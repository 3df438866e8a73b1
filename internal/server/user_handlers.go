package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserView
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	view, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// GetUserProfile handles GET /api/users/:id
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	view, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Description Partial update; blank fields keep their current values
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string,intro=string} true "Profile fields"
// @Success 200 {object} models.UserView
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Intro    string `json:"intro"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Intro:    req.Intro,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// ChangeMyPassword handles PUT /api/users/me/password
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{current_password=string,new_password=string} true "Password change"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/password [put]
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Current and new password are required"))
	}

	err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:          currentUserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Withdraw own account
// @Description Soft delete; the account row survives so authored content keeps its owner
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.Withdraw(c.Context(), currentUserID(c)); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account withdrawn"})
}

// GetMyLikedPosts handles GET /api/users/me/liked-posts
// @Summary List posts the current user has liked
// @Tags users
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Router /users/me/liked-posts [get]
func (s *Server) GetMyLikedPosts(c *fiber.Ctx) error {
	page, err := s.postLikeService.ListLikedPosts(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}

// GetMyLikedComments handles GET /api/users/me/liked-comments
// @Summary List comments the current user has liked
// @Tags users
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.Page
// @Router /users/me/liked-comments [get]
func (s *Server) GetMyLikedComments(c *fiber.Ctx) error {
	page, err := s.commentLikeService.ListLikedComments(c.Context(), currentUserID(c), parsePage(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(page)
}
