package service

import (
	"context"
	"strings"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("creates on an existing post", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var created *models.Comment
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 3
			created = c
			return nil
		}

		svc := NewCommentService(comments, noopPostRepo())
		view, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 2, PostID: 1, Content: " nice "})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "nice", created.Content)
		assert.Equal(t, uint(1), created.PostID)
		assert.Equal(t, uint(3), view.ID)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewCommentService(noopCommentRepo(), posts)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 2, PostID: 99, Content: "hi"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 2, PostID: 1, Content: "   "})
		assertAppErrorCode(t, err, models.CodeValidation)

		_, err = svc.CreateComment(context.Background(), CreateCommentInput{UserID: 2, PostID: 1, Content: strings.Repeat("a", 1001)})
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	commentOn := func(postID, ownerID uint) *commentRepoStub {
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: postID, UserID: ownerID, Content: "original"}, nil
		}
		return repo
	}

	t.Run("post mismatch reads as missing", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(commentOn(1, 2), noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 2, PostID: 9, CommentID: 3, Content: "edit"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(commentOn(1, 2), noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 5, PostID: 1, CommentID: 3, Content: "edit"})
		assertAppErrorCode(t, err, models.CodeNotOwner)
	})

	t.Run("owner edits", func(t *testing.T) {
		t.Parallel()
		repo := commentOn(1, 2)
		var saved *models.Comment
		repo.updateFn = func(_ context.Context, c *models.Comment) error {
			saved = c
			return nil
		}

		svc := NewCommentService(repo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 2, PostID: 1, CommentID: 3, Content: " edited "})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "edited", saved.Content)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	commentOn := func(postID, ownerID uint) *commentRepoStub {
		repo := noopCommentRepo()
		repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: postID, UserID: ownerID}, nil
		}
		return repo
	}

	t.Run("post mismatch reads as missing", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(commentOn(1, 2), noopPostRepo())
		err := svc.DeleteComment(context.Background(), 2, 9, 3)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(commentOn(1, 2), noopPostRepo())
		err := svc.DeleteComment(context.Background(), 5, 1, 3)
		assertAppErrorCode(t, err, models.CodeNotOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		repo := commentOn(1, 2)
		deleted := false
		repo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}

		svc := NewCommentService(repo, noopPostRepo())
		require.NoError(t, svc.DeleteComment(context.Background(), 2, 1, 3))
		assert.True(t, deleted)
	})
}

func TestCommentService_AdminOps(t *testing.T) {
	t.Parallel()

	// Admin paths skip the ownership check entirely.
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: 1, UserID: 99, Content: "original"}, nil
	}
	var saved *models.Comment
	repo.updateFn = func(_ context.Context, c *models.Comment) error {
		saved = c
		return nil
	}
	deleted := false
	repo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewCommentService(repo, noopPostRepo())
	_, err := svc.AdminUpdateComment(context.Background(), 3, "moderated")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "moderated", saved.Content)

	require.NoError(t, svc.AdminDeleteComment(context.Background(), 3))
	assert.True(t, deleted)
}

func TestCommentService_ListAllComments(t *testing.T) {
	t.Parallel()
	comments := noopCommentRepo()
	comments.listAllFn = func(_ context.Context, currentUserID uint) ([]*models.Comment, error) {
		assert.Equal(t, uint(9), currentUserID)
		return []*models.Comment{
			{ID: 2, PostID: 5, Content: "later"},
			{ID: 1, PostID: 4, Content: "earlier"},
		}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	views, err := svc.ListAllComments(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, uint(2), views[0].ID)
	assert.Equal(t, uint(4), views[1].PostID)
}
