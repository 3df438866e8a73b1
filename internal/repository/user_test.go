package repository

import (
	"context"
	"fmt"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByLoginID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByLoginID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Create_DuplicateLoginID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "taken")

	err := repo.Create(ctx, &models.User{
		LoginID:  "taken",
		Username: "someone",
		Email:    "other@example.com",
		Password: "hash",
		Role:     models.RoleUser,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotUnique, appErr.Code)
}

func TestUserRepository_GetByProviderID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	kakaoID := "kakao-123"
	user := &models.User{
		LoginID:  "kakao_user",
		Username: "kakao user",
		Email:    "kakao@example.com",
		Password: "hash",
		Role:     models.RoleUser,
		KakaoID:  &kakaoID,
	}
	require.NoError(t, db.Create(user).Error)

	found, err := repo.GetByProviderID(ctx, "kakao", kakaoID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.GetByProviderID(ctx, "naver", kakaoID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_UpdatePassword_HistoryRetention(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "rotator")

	// Rotate the password more times than the retention window holds.
	previous := user.Password
	for i := 0; i < models.PasswordHistoryLimit+2; i++ {
		next := fmt.Sprintf("hash-%d", i)
		require.NoError(t, repo.UpdatePassword(ctx, user.ID, previous, next))
		previous = next
	}

	var count int64
	require.NoError(t, db.Model(&models.PasswordHistory{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(models.PasswordHistoryLimit), count)

	// The live hash is the latest one set.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, previous, stored.Password)

	// The oldest hashes fell out of the window.
	var hashes []string
	require.NoError(t, db.Model(&models.PasswordHistory{}).
		Where("user_id = ?", user.ID).
		Order("id ASC").
		Pluck("password", &hashes).Error)
	require.Len(t, hashes, models.PasswordHistoryLimit)
	assert.NotContains(t, hashes, user.Password)
	assert.Equal(t, "hash-1", hashes[0])
	assert.Equal(t, "hash-4", hashes[len(hashes)-1])
}

func TestUserRepository_GetByIDWithHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "historied")
	require.NoError(t, repo.UpdatePassword(ctx, user.ID, user.Password, "new-hash"))

	loaded, err := repo.GetByIDWithHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, loaded.PasswordHistory, 1)
	assert.Equal(t, user.Password, loaded.PasswordHistory[0].Password)
	assert.Equal(t, "new-hash", loaded.Password)
}

func TestUserRepository_LikedCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author.ID, "post", testNow())
	comment := createTestComment(t, db, author.ID, post.ID, "comment")

	require.NoError(t, db.Create(&models.PostLike{UserID: liker.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.CommentLike{UserID: liker.ID, CommentID: comment.ID}).Error)

	posts, err := repo.CountLikedPosts(ctx, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), posts)

	comments, err := repo.CountLikedComments(ctx, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), comments)

	none, err := repo.CountLikedPosts(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	doomed := createTestUser(t, db, "doomed")
	survivor := createTestUser(t, db, "survivor")

	doomedPost := createTestPost(t, db, doomed.ID, "doomed post", testNow())
	survivorPost := createTestPost(t, db, survivor.ID, "survivor post", testNow())
	doomedComment := createTestComment(t, db, doomed.ID, survivorPost.ID, "by doomed")
	survivorComment := createTestComment(t, db, survivor.ID, doomedPost.ID, "by survivor")

	postLikes := NewPostLikeRepository(db)
	commentLikes := NewCommentLikeRepository(db)
	require.NoError(t, postLikes.Create(ctx, doomed.ID, survivorPost.ID))
	require.NoError(t, postLikes.Create(ctx, survivor.ID, doomedPost.ID))
	require.NoError(t, commentLikes.Create(ctx, doomed.ID, survivorComment.ID))
	require.NoError(t, commentLikes.Create(ctx, survivor.ID, doomedComment.ID))

	require.NoError(t, db.Create(&models.Follow{FollowerID: doomed.ID, FollowingID: survivor.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: survivor.ID, FollowingID: doomed.ID}).Error)
	require.NoError(t, db.Create(&models.PasswordHistory{UserID: doomed.ID, Password: "retired"}).Error)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, survivorPost.ID, posts[0].ID)
	// The deleted user's like is gone and the counter walked back with it.
	assert.Equal(t, int64(0), posts[0].Likes)

	for _, entity := range []any{
		&models.Comment{}, &models.PostLike{}, &models.CommentLike{},
		&models.Follow{}, &models.PasswordHistory{},
	} {
		var count int64
		require.NoError(t, db.Model(entity).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}
