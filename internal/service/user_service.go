// Package service contains the business logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Intro    string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the user's profile view with like-ledger counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsExist() {
		return nil, models.NewNotFoundError("User", userID)
	}

	likedPosts, err := s.userRepo.CountLikedPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	likedComments, err := s.userRepo.CountLikedComments(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := models.NewUserView(user, likedPosts, likedComments)
	return &view, nil
}

// ListUsers returns every account, including blocked and withdrawn ones,
// for the admin directory.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		likedPosts, err := s.userRepo.CountLikedPosts(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		likedComments, err := s.userRepo.CountLikedComments(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.NewUserView(&users[i], likedPosts, likedComments))
	}
	return views, nil
}

// UpdateProfile applies a partial profile update. Blank fields keep
// their current values.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsExist() {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	if in.Username != "" {
		if err := validation.Username(in.Username); err != nil {
			return nil, err
		}
	}
	user.ApplyProfileUpdate(in.Username, in.Intro)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, in.UserID)
}

// ChangePassword rotates the user's password. The current password must
// match, and the new one must not match the live password or any of the
// retired hashes still in the history window.
func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByIDWithHistory(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !user.IsExist() {
		return models.NewNotFoundError("User", in.UserID)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		return models.NewIncorrectPasswordError()
	}
	if err := validation.Password(in.NewPassword); err != nil {
		return err
	}
	if user.IsPasswordInHistory(in.NewPassword) {
		return models.NewPasswordReusedError()
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, in.UserID, user.Password, string(newHash))
}

// Withdraw soft deletes the user's own account.
func (s *UserService) Withdraw(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsExist() {
		return models.NewNotFoundError("User", userID)
	}
	user.Withdraw()
	return s.userRepo.Update(ctx, user)
}

// ChangeRole sets a user's role. Admin only; the surface guard lives in
// the middleware, this only validates the target value.
func (s *UserService) ChangeRole(ctx context.Context, userID uint, role models.UserRole) (*models.UserView, error) {
	switch role {
	case models.RoleUser, models.RoleAdmin:
		// valid
	default:
		return nil, models.NewValidationError("Invalid role")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsExist() {
		return nil, models.NewNotFoundError("User", userID)
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ToggleBlock flips the moderation block flag on a user.
func (s *UserService) ToggleBlock(ctx context.Context, userID uint) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsExist() {
		return nil, models.NewNotFoundError("User", userID)
	}
	user.ToggleBlock()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// DeleteUser removes the row entirely. Unlike Withdraw this is the
// admin's hard delete.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsExist() {
		return models.NewNotFoundError("User", userID)
	}
	return s.userRepo.Delete(ctx, userID)
}

// IsAdmin reports whether the given user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsExist() && user.Role == models.RoleAdmin, nil
}
