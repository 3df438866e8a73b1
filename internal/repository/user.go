package repository

import (
	"context"
	"errors"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithHistory(ctx context.Context, id uint) (*models.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, oldHash, newHash string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.User, error)
	CountLikedPosts(ctx context.Context, userID uint) (int64, error)
	CountLikedComments(ctx context.Context, userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheRecord is the cached form of a user row. The API JSON hides the
// credential and token columns, so the shadow fields carry them through the
// cache; a hit must restore the complete row or a later Save would wipe them.
type userCacheRecord struct {
	models.User
	Password     string  `json:"password"`
	KakaoID      *string `json:"kakao_id"`
	NaverID      *string `json:"naver_id"`
	RefreshToken string  `json:"refresh_token"`
	AccessToken  string  `json:"access_token"`
}

func (rec *userCacheRecord) capture() {
	rec.Password = rec.User.Password
	rec.KakaoID = rec.User.KakaoID
	rec.NaverID = rec.User.NaverID
	rec.RefreshToken = rec.User.RefreshToken
	rec.AccessToken = rec.User.AccessToken
}

func (rec *userCacheRecord) restore() {
	rec.User.Password = rec.Password
	rec.User.KakaoID = rec.KakaoID
	rec.User.NaverID = rec.NaverID
	rec.User.RefreshToken = rec.RefreshToken
	rec.User.AccessToken = rec.AccessToken
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var rec userCacheRecord
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &rec, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&rec.User, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		rec.capture()
		return nil
	})
	if err != nil {
		return nil, err
	}
	rec.restore()
	user := rec.User
	return &user, nil
}

// GetByIDWithHistory loads a user together with the retained password
// hashes, oldest first. Bypasses the cache: callers are about to mutate.
func (r *userRepository) GetByIDWithHistory(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("PasswordHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByProviderID(ctx context.Context, provider, providerID string) (*models.User, error) {
	column := "kakao_id"
	if provider == "naver" {
		column = "naver_id"
	}
	var user models.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", providerID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewNotUniqueError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit("PasswordHistory").Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewNotUniqueError("User already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// UpdatePassword installs newHash as the live credential and pushes oldHash
// into the history, evicting the oldest entry beyond the retention limit.
// Runs as a single transaction so a crash cannot leave the history and the
// live hash out of step.
func (r *userRepository) UpdatePassword(ctx context.Context, userID uint, oldHash, newHash string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PasswordHistory{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.PasswordHistoryLimit {
			var oldest models.PasswordHistory
			if err := tx.Where("user_id = ?", userID).
				Order("id ASC").
				First(&oldest).Error; err != nil {
				return err
			}
			if err := tx.Delete(&oldest).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&models.PasswordHistory{UserID: userID, Password: oldHash}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("password", newHash).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// Delete hard deletes the user and everything hanging off the row: authored
// posts and comments, both like ledgers, follow edges and retired hashes,
// all in one transaction. Counters on surviving targets are walked back so
// they keep matching their ledgers.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	var likedPostIDs, postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostLike{}).Where("user_id = ?", id).
			Pluck("post_id", &likedPostIDs).Error; err != nil {
			return err
		}
		if len(likedPostIDs) > 0 {
			if err := tx.Model(&models.Post{}).Where("id IN ?", likedPostIDs).
				UpdateColumn("post_likes", gorm.Expr("post_likes - ?", 1)).Error; err != nil {
				return err
			}
		}
		var likedCommentIDs []uint
		if err := tx.Model(&models.CommentLike{}).Where("user_id = ?", id).
			Pluck("comment_id", &likedCommentIDs).Error; err != nil {
			return err
		}
		if len(likedCommentIDs) > 0 {
			if err := tx.Model(&models.Comment{}).Where("id IN ?", likedCommentIDs).
				UpdateColumn("comment_likes", gorm.Expr("comment_likes - ?", 1)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		// Comments the user wrote elsewhere, with the likes they attracted.
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		// Authored posts take their comments and both ledgers with them.
		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			var postCommentIDs []uint
			if err := tx.Model(&models.Comment{}).Where("post_id IN ?", postIDs).
				Pluck("id", &postCommentIDs).Error; err != nil {
				return err
			}
			if len(postCommentIDs) > 0 {
				if err := tx.Where("comment_id IN ?", postCommentIDs).Delete(&models.CommentLike{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", postCommentIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.PasswordHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	for _, postID := range likedPostIDs {
		cache.InvalidatePost(ctx, postID)
	}
	for _, postID := range postIDs {
		cache.InvalidatePost(ctx, postID)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) CountLikedPosts(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *userRepository) CountLikedComments(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
