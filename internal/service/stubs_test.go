package service

import (
	"context"
	"testing"

	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByIDWithHistoryFn func(context.Context, uint) (*models.User, error)
	updateFn             func(context.Context, *models.User) error
	updatePasswordFn     func(context.Context, uint, string, string) error
	deleteFn             func(context.Context, uint) error
	countLikedPostsFn    func(context.Context, uint) (int64, error)
	countLikedCommentsFn func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithHistory(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithHistoryFn(ctx, id)
}
func (s *userRepoStub) GetByLoginID(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}
func (s *userRepoStub) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}
func (s *userRepoStub) GetByProviderID(_ context.Context, _, _ string) (*models.User, error) {
	return nil, nil
}
func (s *userRepoStub) Create(_ context.Context, _ *models.User) error { return nil }
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, userID uint, oldHash, newHash string) error {
	return s.updatePasswordFn(ctx, userID, oldHash, newHash)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(_ context.Context) ([]models.User, error) {
	return nil, nil
}
func (s *userRepoStub) CountLikedPosts(ctx context.Context, userID uint) (int64, error) {
	return s.countLikedPostsFn(ctx, userID)
}
func (s *userRepoStub) CountLikedComments(ctx context.Context, userID uint) (int64, error) {
	return s.countLikedCommentsFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		getByIDWithHistoryFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		updateFn:             func(_ context.Context, _ *models.User) error { return nil },
		updatePasswordFn:     func(_ context.Context, _ uint, _, _ string) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
		countLikedPostsFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countLikedCommentsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint, uint) (*models.Post, error)
	listFn    func(context.Context, repository.PostQuery, int, int, uint) ([]*models.Post, int64, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, q repository.PostQuery, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.listFn(ctx, q, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		listFn: func(_ context.Context, _ repository.PostQuery, _, _ int, _ uint) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, uint) ([]*models.Comment, error)
	listAllFn    func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, currentUserID)
}
func (s *commentRepoStub) ListAll(ctx context.Context, currentUserID uint) ([]*models.Comment, error) {
	return s.listAllFn(ctx, currentUserID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, PostID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		listAllFn:    func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	existsFn           func(context.Context, uint, uint) (bool, error)
	createFn           func(context.Context, *models.Follow) error
	deleteFn           func(context.Context, uint, uint) error
	listFollowingFn    func(context.Context, uint) ([]*models.User, error)
	listFollowersFn    func(context.Context, uint) ([]*models.User, error)
	listFollowingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, followerID uint) ([]*models.User, error) {
	return s.listFollowingFn(ctx, followerID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, followingID uint) ([]*models.User, error) {
	return s.listFollowersFn(ctx, followingID)
}
func (s *followRepoStub) ListFollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.listFollowingIDsFn(ctx, followerID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		existsFn:           func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn:           func(_ context.Context, _ *models.Follow) error { return nil },
		deleteFn:           func(_ context.Context, _, _ uint) error { return nil },
		listFollowingFn:    func(_ context.Context, _ uint) ([]*models.User, error) { return nil, nil },
		listFollowersFn:    func(_ context.Context, _ uint) ([]*models.User, error) { return nil, nil },
		listFollowingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// postLikeRepoStub is a stub for repository.PostLikeRepository.
type postLikeRepoStub struct {
	existsFn func(context.Context, uint, uint) (bool, error)
	createFn func(context.Context, uint, uint) error
	deleteFn func(context.Context, uint, uint) error
	listFn   func(context.Context, uint, int, int) ([]*models.Post, int64, error)
}

func (s *postLikeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}
func (s *postLikeRepoStub) Create(ctx context.Context, userID, postID uint) error {
	return s.createFn(ctx, userID, postID)
}
func (s *postLikeRepoStub) Delete(ctx context.Context, userID, postID uint) error {
	return s.deleteFn(ctx, userID, postID)
}
func (s *postLikeRepoStub) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return s.listFn(ctx, userID, limit, offset)
}

func noopPostLikeRepo() *postLikeRepoStub {
	return &postLikeRepoStub{
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, _, _ uint) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
		listFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
	}
}

// commentLikeRepoStub is a stub for repository.CommentLikeRepository.
type commentLikeRepoStub struct {
	existsFn func(context.Context, uint, uint) (bool, error)
	createFn func(context.Context, uint, uint) error
	deleteFn func(context.Context, uint, uint) error
	listFn   func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
}

func (s *commentLikeRepoStub) Exists(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.existsFn(ctx, userID, commentID)
}
func (s *commentLikeRepoStub) Create(ctx context.Context, userID, commentID uint) error {
	return s.createFn(ctx, userID, commentID)
}
func (s *commentLikeRepoStub) Delete(ctx context.Context, userID, commentID uint) error {
	return s.deleteFn(ctx, userID, commentID)
}
func (s *commentLikeRepoStub) ListLikedComments(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listFn(ctx, userID, limit, offset)
}

func noopCommentLikeRepo() *commentLikeRepoStub {
	return &commentLikeRepoStub{
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, _, _ uint) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
		listFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
	}
}
