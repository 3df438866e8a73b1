package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follows/:userId
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Param userId path int true "User ID to follow"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /follows/{userId} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followingID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.followService.Follow(c.Context(), currentUserID(c), followingID); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Followed"})
}

// UnfollowUser handles DELETE /api/follows/:userId
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param userId path int true "User ID to unfollow"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /follows/{userId} [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followingID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	if err := s.followService.Unfollow(c.Context(), currentUserID(c), followingID); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowing handles GET /api/follows
// @Summary List accounts the current user follows
// @Tags follows
// @Produce json
// @Success 200 {array} models.UserView
// @Router /follows [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	views, err := s.followService.ListFollowing(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(views)
}

// GetFollowers handles GET /api/follows/followers
// @Summary List accounts following the current user
// @Tags follows
// @Produce json
// @Success 200 {array} models.UserView
// @Router /follows/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	views, err := s.followService.ListFollowers(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(views)
}
