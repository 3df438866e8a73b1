package database

import (
	"chirp/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for every domain model. The like tables carry
// composite primary keys on (user, target) so duplicate concurrent inserts
// are rejected by the storage layer, not just the application check.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PasswordHistory{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.PostLike{},
		&models.CommentLike{},
	)
}
