package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

type PostLikeService struct {
	likeRepo repository.PostLikeRepository
	postRepo repository.PostRepository
}

func NewPostLikeService(likeRepo repository.PostLikeRepository, postRepo repository.PostRepository) *PostLikeService {
	return &PostLikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// LikePost records a like. Liking your own post or a post you already
// like is rejected.
func (s *PostLikeService) LikePost(ctx context.Context, userID, postID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID == userID {
		return nil, models.NewSelfReferenceError("You cannot like your own post")
	}

	if err := s.likeRepo.Create(ctx, userID, postID); err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("post", "like").Inc()
	return s.getView(ctx, postID, userID)
}

// UnlikePost removes a like. A missing ledger row is reported before the
// self-like condition is re-checked.
func (s *PostLikeService) UnlikePost(ctx context.Context, userID, postID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	exists, err := s.likeRepo.Exists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewLikeNotExistError("Post")
	}
	if post.UserID == userID {
		return nil, models.NewSelfReferenceError("You cannot like your own post")
	}
	if err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("post", "unlike").Inc()
	return s.getView(ctx, postID, userID)
}

// ListLikedPosts returns the posts the user has liked, newest first,
// five per page.
func (s *PostLikeService) ListLikedPosts(ctx context.Context, userID uint, page int) (*models.Page, error) {
	if page < 0 {
		page = 0
	}
	posts, total, err := s.likeRepo.ListLikedPosts(ctx, userID, models.PageSize, page*models.PageSize)
	if err != nil {
		return nil, err
	}
	result := models.NewPage(models.NewPostViews(posts), page, total)
	return &result, nil
}

func (s *PostLikeService) getView(ctx context.Context, postID, currentUserID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(post)
	return &view, nil
}
