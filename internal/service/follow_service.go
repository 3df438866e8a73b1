package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates a directed edge from follower to target. Following
// yourself or a withdrawn account is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return models.NewSelfReferenceError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, followingID)
	if err != nil {
		return err
	}
	if !target.IsExist() {
		return models.NewNotFoundError("User", followingID)
	}

	err = s.followRepo.Create(ctx, &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		return err
	}
	observability.FollowMutations.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge. A missing edge is NOT_FOUND.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if err := s.followRepo.Delete(ctx, followerID, followingID); err != nil {
		return err
	}
	observability.FollowMutations.WithLabelValues("unfollow").Inc()
	return nil
}

// ListFollowing returns the accounts the user follows, withdrawn
// accounts filtered out.
func (s *FollowService) ListFollowing(ctx context.Context, followerID uint) ([]models.UserView, error) {
	users, err := s.followRepo.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}
	return s.toViews(users), nil
}

// ListFollowers returns the accounts following the user.
func (s *FollowService) ListFollowers(ctx context.Context, followingID uint) ([]models.UserView, error) {
	users, err := s.followRepo.ListFollowers(ctx, followingID)
	if err != nil {
		return nil, err
	}
	return s.toViews(users), nil
}

func (s *FollowService) toViews(users []*models.User) []models.UserView {
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		if !u.IsExist() {
			continue
		}
		views = append(views, models.NewUserView(u, 0, 0))
	}
	return views
}
