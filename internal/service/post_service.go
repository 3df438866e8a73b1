package service

import (
	"context"
	"strings"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type SearchPostsInput struct {
	Title         string
	From          time.Time
	To            time.Time
	FollowingOnly bool
	Page          int
	CurrentUserID uint
}

func NewPostService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *PostService {
	return &PostService{postRepo: postRepo, followRepo: followRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	const maxTitleLen = 300
	const maxContentLen = 10000

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post := &models.Post{
		Title:   title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.getView(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.PostView, error) {
	return s.getView(ctx, postID, currentUserID)
}

// ListPosts returns the global timeline, newest first, five per page.
func (s *PostService) ListPosts(ctx context.Context, page int, currentUserID uint) (*models.Page, error) {
	return s.listPage(ctx, repository.PostQuery{}, page, currentUserID)
}

// ListUserPosts returns one author's posts.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint, page int, currentUserID uint) (*models.Page, error) {
	q := repository.PostQuery{AuthorIDs: []uint{authorID}, AuthorsOnly: true}
	return s.listPage(ctx, q, page, currentUserID)
}

// ListFollowedPosts returns posts authored by accounts the user follows.
// Following nobody yields an empty page, not an error.
func (s *PostService) ListFollowedPosts(ctx context.Context, userID uint, page int) (*models.Page, error) {
	followingIDs, err := s.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	q := repository.PostQuery{AuthorIDs: followingIDs, AuthorsOnly: true}
	return s.listPage(ctx, q, page, userID)
}

// SearchPosts filters the timeline by title substring, creation window
// and optionally the caller's followed authors. All predicates combine
// with AND; an absent predicate matches everything.
func (s *PostService) SearchPosts(ctx context.Context, in SearchPostsInput) (*models.Page, error) {
	if !in.From.IsZero() && !in.To.IsZero() && in.To.Before(in.From) {
		return nil, models.NewValidationError("Search window end precedes its start")
	}

	q := repository.PostQuery{
		TitleContains: strings.TrimSpace(in.Title),
		From:          in.From,
		To:            in.To,
	}
	if in.FollowingOnly {
		followingIDs, err := s.followRepo.ListFollowingIDs(ctx, in.CurrentUserID)
		if err != nil {
			return nil, err
		}
		q.AuthorIDs = followingIDs
		q.AuthorsOnly = true
	}
	return s.listPage(ctx, q, in.Page, in.CurrentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewNotOwnerError("You can only update your own posts")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, in.PostID)
	return s.getView(ctx, in.PostID, in.UserID)
}

// DeletePost removes a post along with its comments and both like
// ledgers. Admins may delete anyone's post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint, isAdmin bool) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID && !isAdmin {
		return models.NewNotOwnerError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// TogglePin flips the pinned flag. Admin only.
func (s *PostService) TogglePin(ctx context.Context, postID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}
	post.TogglePin()
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	return s.getView(ctx, postID, 0)
}

func (s *PostService) listPage(ctx context.Context, q repository.PostQuery, page int, currentUserID uint) (*models.Page, error) {
	if page < 0 {
		page = 0
	}
	posts, total, err := s.postRepo.List(ctx, q, models.PageSize, page*models.PageSize, currentUserID)
	if err != nil {
		return nil, err
	}
	result := models.NewPage(models.NewPostViews(posts), page, total)
	return &result, nil
}

func (s *PostService) getView(ctx context.Context, postID, currentUserID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(post)
	return &view, nil
}
