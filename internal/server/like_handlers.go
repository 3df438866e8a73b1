package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:id/like
// @Summary Like a post
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Success 201 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	view, err := s.postLikeService.LikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UnlikePost handles DELETE /api/posts/:id/like
// @Summary Remove a like from a post
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	view, err := s.postLikeService.UnlikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}

// LikeComment handles POST /api/posts/:id/comments/:commentId/like
// @Summary Like a comment
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 201 {object} models.CommentView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts/{id}/comments/{commentId}/like [post]
func (s *Server) LikeComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	view, err := s.commentLikeService.LikeComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UnlikeComment handles DELETE /api/posts/:id/comments/:commentId/like
// @Summary Remove a like from a comment
// @Tags likes
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} models.CommentView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments/{commentId}/like [delete]
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	view, err := s.commentLikeService.UnlikeComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	return c.JSON(view)
}
