package repository

import (
	"context"
	"errors"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostLikeRepository defines interface for post like ledger operations
type PostLikeRepository interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) error
	ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
}

type postLikeRepository struct {
	db *gorm.DB
}

// NewPostLikeRepository creates a new PostLikeRepository
func NewPostLikeRepository(db *gorm.DB) PostLikeRepository {
	return &postLikeRepository{db: db}
}

func (r *postLikeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the ledger row and bumps the denormalized counter in
// one transaction so the two never drift apart.
func (r *postLikeRepository) Create(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("post_likes", gorm.Expr("post_likes + ?", 1)).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewLikeExistsError("Post")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postLikeRepository) Delete(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewLikeNotExistError("Post")
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("post_likes", gorm.Expr("post_likes - ?", 1)).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *postLikeRepository) ListLikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("post_likes.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.Session(&gorm.Session{}).
		Select("posts.*, true AS liked").
		Preload("User").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}
