package services

import (
	"context"
	"fmt"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
	"go.uber.org/zap"
)

// SocialService manages the follow graph
type SocialService interface {
	Follow(ctx context.Context, followerID uint, targetUsername string) (*models.Follow, error)
	Unfollow(ctx context.Context, followerID, followedID uint) error
	ListFollowing(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	Counts(ctx context.Context, userID uint) (followers, followings int64, err error)
}

type socialService struct {
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

func NewSocialService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	notifications repositories.NotificationRepository,
	logger *zap.Logger,
) SocialService {
	return &socialService{
		users:         users,
		follows:       follows,
		notifications: notifications,
		logger:        logger.Named("social"),
	}
}

var _ SocialService = (*socialService)(nil)

// Follow adds the edge followerID -> targetUsername and notifies the target.
// Following yourself or following twice is apperrors.ErrConflict.
func (s *socialService) Follow(ctx context.Context, followerID uint, targetUsername string) (*models.Follow, error) {
	target, err := s.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == followerID {
		return nil, fmt.Errorf("%w: cannot follow yourself", apperrors.ErrConflict)
	}

	exists, err := s.follows.IsFollowing(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: already following %s", apperrors.ErrConflict, targetUsername)
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: target.ID}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		return nil, err
	}

	s.notifyFollow(ctx, followerID, target.ID)
	return follow, nil
}

// notifyFollow never fails the follow itself
func (s *socialService) notifyFollow(ctx context.Context, followerID, targetID uint) {
	follower, err := s.users.GetUserByID(ctx, followerID)
	if err != nil {
		s.logger.Warn("Failed to load follower for notification", zap.Uint("follower_id", followerID), zap.Error(err))
		return
	}
	n := &models.Notification{
		Type:        models.NotificationTypeFollow,
		ActorID:     followerID,
		RecipientID: targetID,
		Message:     follower.Username + " started following you",
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("Failed to create follow notification",
			zap.Uint("follower_id", followerID),
			zap.Uint("recipient_id", targetID),
			zap.Error(err))
	}
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.follows.DeleteFollow(ctx, followerID, followedID)
}

// ListFollowing lists who userID follows. Unknown users are not found
// rather than an empty list.
func (s *socialService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return s.follows.GetFollowing(ctx, userID)
}

func (s *socialService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return s.follows.GetFollowers(ctx, userID)
}

func (s *socialService) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	followers, err := s.follows.GetFollowersCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followings, err := s.follows.GetFollowingCount(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, followings, nil
}
