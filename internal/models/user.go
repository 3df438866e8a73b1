package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole enumerates account states. Withdrawn accounts keep their row
// but are treated as gone by every read path.
type UserRole string

const (
	RoleUser     UserRole = "USER"
	RoleAdmin    UserRole = "ADMIN"
	RoleWithdraw UserRole = "WITHDRAW"
)

// PasswordHistoryLimit is the number of retired password hashes kept per
// user. The oldest entry is evicted when a new one would exceed it.
const PasswordHistoryLimit = 4

// User represents a user account
type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	LoginID      string   `gorm:"uniqueIndex;not null;size:50" json:"login_id"`
	Username     string   `gorm:"not null;size:50" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password     string   `gorm:"not null" json:"-"`
	Intro        string   `gorm:"size:500" json:"intro"`
	KakaoID      *string  `gorm:"uniqueIndex" json:"-"`
	NaverID      *string  `gorm:"uniqueIndex" json:"-"`
	Role         UserRole `gorm:"not null;default:USER;size:20" json:"role"`
	IsBlocked    bool     `gorm:"not null;default:false" json:"is_blocked"`
	RefreshToken string   `json:"-"`
	AccessToken  string   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	PasswordHistory []PasswordHistory `gorm:"foreignKey:UserID" json:"-"`
	Posts           []Post            `gorm:"foreignKey:UserID" json:"-"`
}

// PasswordHistory is a retired password hash. Rows are append-only from
// the model's point of view; eviction happens in the repository.
type PasswordHistory struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// IsExist reports whether the account is still active. Withdrawn users
// are invisible to lookups and authentication.
func (u *User) IsExist() bool {
	return u.Role != RoleWithdraw
}

// ApplyProfileUpdate overwrites only the fields the caller provided.
// Blank values leave the current value in place.
func (u *User) ApplyProfileUpdate(username, intro string) {
	if username != "" {
		u.Username = username
	}
	if intro != "" {
		u.Intro = intro
	}
}

// IsPasswordInHistory reports whether the plaintext matches the live
// password or any retired hash. PasswordHistory must be preloaded.
func (u *User) IsPasswordInHistory(plain string) bool {
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil {
		return true
	}
	for _, h := range u.PasswordHistory {
		if bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(plain)) == nil {
			return true
		}
	}
	return false
}

// ToggleBlock flips the moderation block flag.
func (u *User) ToggleBlock() {
	u.IsBlocked = !u.IsBlocked
}

// Withdraw soft deletes the account. The row survives so authored
// content keeps a valid owner, but the account can no longer be used.
func (u *User) Withdraw() {
	u.Role = RoleWithdraw
	u.RefreshToken = ""
	u.AccessToken = ""
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
