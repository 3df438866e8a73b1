package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// CommentLikeRepository defines interface for comment like ledger operations
type CommentLikeRepository interface {
	Exists(ctx context.Context, userID, commentID uint) (bool, error)
	Create(ctx context.Context, userID, commentID uint) error
	Delete(ctx context.Context, userID, commentID uint) error
	ListLikedComments(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error)
}

type commentLikeRepository struct {
	db *gorm.DB
}

// NewCommentLikeRepository creates a new CommentLikeRepository
func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &commentLikeRepository{db: db}
}

func (r *commentLikeRepository) Exists(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *commentLikeRepository) Create(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("comment_likes", gorm.Expr("comment_likes + ?", 1)).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewLikeExistsError("Comment")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentLikeRepository) Delete(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewLikeNotExistError("Comment")
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("comment_likes", gorm.Expr("comment_likes - ?", 1)).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentLikeRepository) ListLikedComments(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Comment{}).
		Joins("JOIN comment_likes ON comment_likes.comment_id = comments.id").
		Where("comment_likes.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []*models.Comment
	err := base.Session(&gorm.Session{}).
		Select("comments.*, true AS liked").
		Preload("User").
		Preload("Post").
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}
