package models

import (
	"time"
)

// PostLike is one row of the post like ledger. The identity IS the
// (user, post) pair: a composite primary key guarantees at most one like per
// user per post even under concurrent inserts.
type PostLike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

// CommentLike is the comment counterpart of PostLike.
type CommentLike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommentID uint      `gorm:"primaryKey;autoIncrement:false" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"-"`
}
