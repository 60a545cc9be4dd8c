package service

import (
	"context"
	"errors"
	"fmt"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
)

// UserStats aggregates one user's footprint for the admin panel.
type UserStats struct {
	Posts            int64 `json:"posts"`
	Comments         int64 `json:"comments"`
	MessagesSent     int64 `json:"messages_sent"`
	MessagesReceived int64 `json:"messages_received"`
	Friends          int64 `json:"friends"`
	PendingSent      int64 `json:"pending_requests_sent"`
	PendingReceived  int64 `json:"pending_requests_received"`
	ChatSessions     int64 `json:"chat_sessions"`
}

// UserOverview is one row of the admin user listing.
type UserOverview struct {
	User  models.User
	Stats UserStats
}

// AdminService serves the admin panel: user oversight and forced account
// removal. All callers are already past the admin role check.
type AdminService struct {
	users    repository.UserRepository
	friends  repository.FriendRepository
	posts    repository.PostRepository
	messages repository.MessageRepository
	chats    repository.ChatRepository
	accounts *AccountService
	activity *ActivityLogger
}

func NewAdminService(
	users repository.UserRepository,
	friends repository.FriendRepository,
	posts repository.PostRepository,
	messages repository.MessageRepository,
	chats repository.ChatRepository,
	accounts *AccountService,
	activity *ActivityLogger,
) *AdminService {
	return &AdminService{
		users:    users,
		friends:  friends,
		posts:    posts,
		messages: messages,
		chats:    chats,
		accounts: accounts,
		activity: activity,
	}
}

// ListUsers returns every user except the requesting admin, newest first,
// each with their usage statistics.
func (s *AdminService) ListUsers(adminID uint, offset, limit int) ([]UserOverview, int64, error) {
	users, total, err := s.users.List(adminID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	overviews := make([]UserOverview, 0, len(users))
	for _, user := range users {
		stats, err := s.userStats(user.ID)
		if err != nil {
			return nil, 0, err
		}
		overviews = append(overviews, UserOverview{User: user, Stats: stats})
	}
	return overviews, total, nil
}

// InspectUser returns one user with their profile and statistics. The
// profile is nil when the user never created one.
func (s *AdminService) InspectUser(userID uint) (*models.User, *models.Profile, UserStats, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, UserStats{}, apperr.NotFoundf("user not found")
		}
		return nil, nil, UserStats{}, err
	}

	profile, err := s.users.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, UserStats{}, err
		}
		profile = nil
	}

	stats, err := s.userStats(userID)
	if err != nil {
		return nil, nil, UserStats{}, err
	}
	return user, profile, stats, nil
}

// DeleteUser removes another user's account through the same cascade the
// user would trigger themselves. Admins cannot delete their own account
// here; that path is the regular self-deletion.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uint) error {
	if adminID == userID {
		return apperr.Invalidf("cannot delete your own account from the admin panel")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("user not found")
		}
		return err
	}

	// Logged before the cascade runs; the cascade nulls the target link.
	s.activity.Log(adminID, models.ActivityUserDeleted,
		fmt.Sprintf("Deleted user %s (%s)", user.Name, user.Email),
		&userID, nil)

	return s.accounts.DeleteAccount(ctx, userID)
}

func (s *AdminService) userStats(userID uint) (UserStats, error) {
	var stats UserStats
	var err error

	if stats.Posts, err = s.posts.CountByAuthor(userID); err != nil {
		return stats, err
	}
	if stats.Comments, err = s.posts.CountCommentsByAuthor(userID); err != nil {
		return stats, err
	}
	if stats.MessagesSent, err = s.messages.CountSent(userID); err != nil {
		return stats, err
	}
	if stats.MessagesReceived, err = s.messages.CountReceived(userID); err != nil {
		return stats, err
	}
	if stats.Friends, err = s.friends.CountFriends(userID); err != nil {
		return stats, err
	}
	if stats.PendingSent, err = s.friends.CountPendingForSender(userID); err != nil {
		return stats, err
	}
	if stats.PendingReceived, err = s.friends.CountPendingForReceiver(userID); err != nil {
		return stats, err
	}
	if stats.ChatSessions, err = s.chats.CountSessions(userID); err != nil {
		return stats, err
	}
	return stats, nil
}
