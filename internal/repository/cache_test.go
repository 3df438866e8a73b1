package repository

import (
	"context"
	"testing"

	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTestCache points the cache package at a throwaway miniredis and
// restores the nil client when the test ends.
func withTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestUserRepository_CachedReadKeepsHiddenColumns(t *testing.T) {
	db := setupTestDB(t)
	mr := withTestCache(t)
	repo := NewUserRepository(db)

	kakaoID := "kakao-77"
	user := &models.User{
		LoginID:      "cached",
		Username:     "cached",
		Email:        "cached@example.com",
		Password:     "$2a$10$livehash",
		KakaoID:      &kakaoID,
		RefreshToken: "refresh-1",
		AccessToken:  "access-1",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)

	// First read fills the cache, second one is served from it.
	_, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$livehash", got.Password)
	assert.Equal(t, "refresh-1", got.RefreshToken)
	assert.Equal(t, "access-1", got.AccessToken)
	require.NotNil(t, got.KakaoID)
	assert.Equal(t, "kakao-77", *got.KakaoID)

	// A read-mutate-save cycle off the cached copy must not blank the
	// columns the response JSON hides.
	got.Username = "renamed"
	require.NoError(t, repo.Update(context.Background(), got))
	assert.False(t, mr.Exists(cache.UserKey(user.ID)))

	var row models.User
	require.NoError(t, db.First(&row, user.ID).Error)
	assert.Equal(t, "renamed", row.Username)
	assert.Equal(t, "$2a$10$livehash", row.Password)
	assert.Equal(t, "refresh-1", row.RefreshToken)
	assert.Equal(t, "access-1", row.AccessToken)
	require.NotNil(t, row.KakaoID)
	assert.Equal(t, "kakao-77", *row.KakaoID)
}

func TestPostRepository_AnonymousReadCache(t *testing.T) {
	db := setupTestDB(t)
	mr := withTestCache(t)
	repo := NewPostRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "hot", testNow())

	got, err := repo.GetByID(context.Background(), post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "hot", got.Title)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	// Served from the cache: a direct row change is not visible...
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("title", "renamed").Error)
	cached, err := repo.GetByID(context.Background(), post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "hot", cached.Title)

	// ...while a per-viewer read bypasses it.
	fresh, err := repo.GetByID(context.Background(), post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", fresh.Title)

	// Ledger writes drop the entry.
	liker := createTestUser(t, db, "liker")
	likeRepo := NewPostLikeRepository(db)
	require.NoError(t, likeRepo.Create(context.Background(), liker.ID, post.ID))
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))
}
