// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a titled entry in the Chirp application. Likes is a
// denormalized counter kept in sync with the post_likes ledger inside the
// same transaction as every ledger mutation.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	IsPinned bool   `gorm:"not null;default:false" json:"is_pinned"`
	Likes    int64  `gorm:"column:post_likes;not null;default:0" json:"likes"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->;-:migration" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TogglePin flips the pinned flag.
func (p *Post) TogglePin() {
	p.IsPinned = !p.IsPinned
}
