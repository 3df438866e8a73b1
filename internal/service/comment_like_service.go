package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

type CommentLikeService struct {
	likeRepo    repository.CommentLikeRepository
	commentRepo repository.CommentRepository
}

func NewCommentLikeService(likeRepo repository.CommentLikeRepository, commentRepo repository.CommentRepository) *CommentLikeService {
	return &CommentLikeService{likeRepo: likeRepo, commentRepo: commentRepo}
}

// LikeComment records a like on a comment under the given post.
func (s *CommentLikeService) LikeComment(ctx context.Context, userID, postID, commentID uint) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID == userID {
		return nil, models.NewSelfReferenceError("You cannot like your own comment")
	}

	if err := s.likeRepo.Create(ctx, userID, commentID); err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("comment", "like").Inc()
	return s.getView(ctx, commentID, userID)
}

// UnlikeComment removes a like from a comment under the given post.
func (s *CommentLikeService) UnlikeComment(ctx context.Context, userID, postID, commentID uint) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	exists, err := s.likeRepo.Exists(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewLikeNotExistError("Comment")
	}
	if comment.UserID == userID {
		return nil, models.NewSelfReferenceError("You cannot like your own comment")
	}
	if err := s.likeRepo.Delete(ctx, userID, commentID); err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("comment", "unlike").Inc()
	return s.getView(ctx, commentID, userID)
}

// ListLikedComments returns the comments the user has liked, newest
// first, five per page.
func (s *CommentLikeService) ListLikedComments(ctx context.Context, userID uint, page int) (*models.Page, error) {
	if page < 0 {
		page = 0
	}
	comments, total, err := s.likeRepo.ListLikedComments(ctx, userID, models.PageSize, page*models.PageSize)
	if err != nil {
		return nil, err
	}
	result := models.NewPage(models.NewCommentViews(comments), page, total)
	return &result, nil
}

func (s *CommentLikeService) getView(ctx context.Context, commentID, currentUserID uint) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, currentUserID)
	if err != nil {
		return nil, err
	}
	view := models.NewCommentView(comment)
	return &view, nil
}
