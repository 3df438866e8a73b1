package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentView, error) {
	const maxContentLen = 1000

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 1000 characters)")
	}

	// The post must exist before a comment can attach to it.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.getView(ctx, comment.ID, in.UserID)
}

// ListComments returns every comment on a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID, currentUserID uint) ([]models.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	return models.NewCommentViews(comments), nil
}

// ListAllComments returns every comment across all posts, newest first.
func (s *CommentService) ListAllComments(ctx context.Context, currentUserID uint) ([]models.CommentView, error) {
	comments, err := s.commentRepo.ListAll(ctx, currentUserID)
	if err != nil {
		return nil, err
	}
	return models.NewCommentViews(comments), nil
}

// UpdateComment edits the caller's own comment. The comment must belong
// to the post named in the path.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewNotOwnerError("You can only update your own comments")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.getView(ctx, in.CommentID, in.UserID)
}

// DeleteComment removes the caller's own comment and its like ledger.
func (s *CommentService) DeleteComment(ctx context.Context, userID, postID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != userID {
		return models.NewNotOwnerError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// AdminUpdateComment edits any comment regardless of ownership.
func (s *CommentService) AdminUpdateComment(ctx context.Context, commentID uint, content string) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, 0)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, models.NewValidationError("Content is required")
	}
	comment.Content = trimmed
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.getView(ctx, commentID, 0)
}

// AdminDeleteComment removes any comment regardless of ownership.
func (s *CommentService) AdminDeleteComment(ctx context.Context, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *CommentService) getView(ctx context.Context, commentID, currentUserID uint) (*models.CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, currentUserID)
	if err != nil {
		return nil, err
	}
	view := models.NewCommentView(comment)
	return &view, nil
}
