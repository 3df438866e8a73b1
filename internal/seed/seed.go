// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(db, r, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	comments, err := createComments(db, r, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", len(comments))

	if err := createFollows(db, r, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Println("follow graph created")

	if err := createLikes(db, r, users, posts, comments); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Println("likes created")

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comment_likes, post_likes, comments, posts, follows, password_histories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	// One well-known password for every seed account.
	hash, err := bcrypt.GenerateFromPassword([]byte("SeedPassword12!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		loginID := fmt.Sprintf("%s_%d", strings.ToLower(gofakeit.Username()), i)
		if len(loginID) > 30 {
			loginID = loginID[:30]
		}
		user := &models.User{
			LoginID:  loginID,
			Username: gofakeit.Name(),
			Email:    fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			Password: string(hash),
			Intro:    gofakeit.Sentence(8),
			Role:     models.RoleUser,
		}
		if i == 0 {
			user.LoginID = "seed_admin"
			user.Role = models.RoleAdmin
		}
		users = append(users, user)
	}
	if err := db.CreateInBatches(users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, r *rand.Rand, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:   gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:  author.ID,
		}
		// realistic created_at spread over the last 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
		posts = append(posts, post)
	}
	if err := db.CreateInBatches(posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, r *rand.Rand, users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			author := users[r.Intn(len(users))]
			comments = append(comments, &models.Comment{
				Content: gofakeit.Sentence(10),
				UserID:  author.ID,
				PostID:  post.ID,
			})
		}
	}
	if len(comments) == 0 {
		return nil, nil
	}
	if err := db.CreateInBatches(comments, 100).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func createFollows(db *gorm.DB, r *rand.Rand, users []*models.User) error {
	var follows []*models.Follow
	seen := make(map[[2]uint]bool)
	for _, follower := range users {
		for i := 0; i < r.Intn(5); i++ {
			target := users[r.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			key := [2]uint{follower.ID, target.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			follows = append(follows, &models.Follow{
				FollowerID:  follower.ID,
				FollowingID: target.ID,
			})
		}
	}
	if len(follows) == 0 {
		return nil
	}
	return db.CreateInBatches(follows, 100).Error
}

// createLikes inserts like rows and keeps the denormalized counters in
// step with them, the same pairing the API enforces.
func createLikes(db *gorm.DB, r *rand.Rand, users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for _, post := range posts {
		var likers int64
		for _, user := range users {
			if user.ID == post.UserID || r.Intn(4) != 0 {
				continue
			}
			if err := db.Create(&models.PostLike{UserID: user.ID, PostID: post.ID}).Error; err != nil {
				return err
			}
			likers++
		}
		if likers > 0 {
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("post_likes", likers).Error; err != nil {
				return err
			}
		}
	}

	for _, comment := range comments {
		var likers int64
		for _, user := range users {
			if user.ID == comment.UserID || r.Intn(6) != 0 {
				continue
			}
			if err := db.Create(&models.CommentLike{UserID: user.ID, CommentID: comment.ID}).Error; err != nil {
				return err
			}
			likers++
		}
		if likers > 0 {
			if err := db.Model(&models.Comment{}).Where("id = ?", comment.ID).
				UpdateColumn("comment_likes", likers).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
