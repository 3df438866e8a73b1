package repository

import (
	"context"
	"errors"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostQuery carries the typed predicates for post listings: title substring,
// creation-time range and an optional author restriction. Zero values mean
// "no constraint".
type PostQuery struct {
	TitleContains string
	From          time.Time
	To            time.Time
	AuthorIDs     []uint
	AuthorsOnly   bool // restrict to AuthorIDs even when the slice is empty
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, q PostQuery, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	load := func() error {
		err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the anonymous read is cacheable: liked is computed per caller.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, load); err != nil {
			return nil, err
		}
		return &post, nil
	}
	if err := load(); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts, newest first, plus the unpaginated total
// for page metadata.
func (r *postRepository) List(ctx context.Context, q PostQuery, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	base := r.applyQuery(r.db.WithContext(ctx).Model(&models.Post{}), q)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.applyLiked(base.Session(&gorm.Session{}), currentUserID).
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

// applyQuery translates a PostQuery into WHERE clauses.
func (r *postRepository) applyQuery(db *gorm.DB, q PostQuery) *gorm.DB {
	if q.TitleContains != "" {
		db = db.Where("title LIKE ?", "%"+q.TitleContains+"%")
	}
	if !q.From.IsZero() {
		db = db.Where("posts.created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		db = db.Where("posts.created_at <= ?", q.To)
	}
	if q.AuthorsOnly || len(q.AuthorIDs) > 0 {
		if len(q.AuthorIDs) == 0 {
			// Author-restricted query with nobody followed: no rows.
			db = db.Where("1 = 0")
		} else {
			db = db.Where("posts.user_id IN ?", q.AuthorIDs)
		}
	}
	return db
}

// applyLiked adds the caller-specific liked flag as a subquery column.
func (r *postRepository) applyLiked(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"posts.*, EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) AS liked",
			currentUserID,
		)
	}
	return db.Select("posts.*, false AS liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
