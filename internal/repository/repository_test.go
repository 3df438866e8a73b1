package repository

import (
	"fmt"
	"testing"
	"time"

	"chirp/internal/database"
	"chirp/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testNow() time.Time {
	return time.Now().Truncate(time.Second)
}

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, loginID string) *models.User {
	t.Helper()
	user := &models.User{
		LoginID:  loginID,
		Username: loginID,
		Email:    fmt.Sprintf("%s@example.com", loginID),
		Password: "$2a$10$fakehashfakehashfakehash",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Content:   "content of " + title,
		UserID:    userID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, userID, postID uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
