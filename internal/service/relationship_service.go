package service

import (
	"errors"
	"fmt"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
)

// RelationshipService owns the friend request lifecycle and the friendship
// set derived from it.
type RelationshipService struct {
	friends  repository.FriendRepository
	users    repository.UserRepository
	activity *ActivityLogger
}

func NewRelationshipService(friends repository.FriendRepository, users repository.UserRepository, activity *ActivityLogger) *RelationshipService {
	return &RelationshipService{friends: friends, users: users, activity: activity}
}

// SendFriendRequest creates a pending request from sender to receiver. When
// the receiver already has a pending request toward the sender, both clearly
// want the friendship, so that request is accepted instead of creating a
// crossing one. The returned bool reports whether that auto-accept happened.
func (s *RelationshipService) SendFriendRequest(senderID, receiverID uint) (*models.FriendRequest, bool, error) {
	if senderID == receiverID {
		return nil, false, apperr.Conflictf("cannot send a friend request to yourself")
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperr.NotFoundf("user not found")
		}
		return nil, false, err
	}

	already, err := s.friends.AreFriends(senderID, receiverID)
	if err != nil {
		return nil, false, err
	}
	if already {
		return nil, false, apperr.Conflictf("you are already friends")
	}

	if _, err := s.friends.FindPendingRequest(senderID, receiverID); err == nil {
		return nil, false, apperr.Conflictf("friend request already sent")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	// Crossing request: accept theirs instead of stacking a second one.
	if reciprocal, err := s.friends.FindPendingRequest(receiverID, senderID); err == nil {
		if err := s.acceptRequest(reciprocal); err != nil {
			return nil, false, err
		}
		return reciprocal, true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	req := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.RequestPending,
	}
	if err := s.friends.CreateRequest(req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, apperr.Conflictf("friend request already sent")
		}
		return nil, false, err
	}

	s.activity.Log(senderID, models.ActivityFriendRequestSent,
		fmt.Sprintf("Sent a friend request to %s", receiver.Username),
		&receiverID, models.JSONMap{"request_id": req.ID})
	s.activity.Log(receiverID, models.ActivityFriendRequestReceived,
		"Received a friend request",
		&senderID, models.JSONMap{"request_id": req.ID})

	return req, false, nil
}

// RespondToFriendRequest lets the receiver accept or decline a pending
// request. Declining removes the row so the sender may try again later.
func (s *RelationshipService) RespondToFriendRequest(userID, requestID uint, accept bool) error {
	req, err := s.friends.GetRequest(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("friend request not found")
		}
		return err
	}
	if req.ReceiverID != userID {
		return apperr.Unauthorizedf("only the receiver can respond to this request")
	}
	if req.Status != models.RequestPending {
		return apperr.Conflictf("friend request is no longer pending")
	}

	if accept {
		return s.acceptRequest(req)
	}

	if err := s.friends.DeleteRequest(req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Conflictf("friend request is no longer pending")
		}
		return err
	}
	s.activity.Log(userID, models.ActivityFriendRequestDeclined,
		"Declined a friend request", &req.SenderID, nil)
	return nil
}

func (s *RelationshipService) acceptRequest(req *models.FriendRequest) error {
	if err := s.friends.AcceptRequest(req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperr.Conflictf("you are already friends")
		}
		return err
	}
	s.activity.Log(req.ReceiverID, models.ActivityFriendRequestAccepted,
		"Accepted a friend request", &req.SenderID, models.JSONMap{"request_id": req.ID})
	s.activity.Log(req.SenderID, models.ActivityFriendRequestAccepted,
		"Friend request was accepted", &req.ReceiverID, models.JSONMap{"request_id": req.ID})
	return nil
}

// AreFriends reports whether the two users share a friendship row.
func (s *RelationshipService) AreFriends(a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	return s.friends.AreFriends(a, b)
}

// HasPendingRequest reports whether a pending request exists in either
// direction between the two users.
func (s *RelationshipService) HasPendingRequest(a, b uint) (bool, error) {
	if _, err := s.friends.FindPendingRequest(a, b); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.friends.FindPendingRequest(b, a); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// ListFriends returns the user's friends as user records.
func (s *RelationshipService) ListFriends(userID uint) ([]models.User, error) {
	ids, err := s.friends.FriendIDs(userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		friends = append(friends, *user)
	}
	return friends, nil
}

// ListPendingRequests returns requests awaiting the user's response, oldest
// first.
func (s *RelationshipService) ListPendingRequests(userID uint) ([]models.FriendRequest, error) {
	return s.friends.ListPendingForReceiver(userID)
}

// CountFriends returns the size of the user's friendship set.
func (s *RelationshipService) CountFriends(userID uint) (int64, error) {
	return s.friends.CountFriends(userID)
}

// Unfriend dissolves the friendship. Accepted request rows between the pair
// are removed as well so either side can send a fresh request.
func (s *RelationshipService) Unfriend(userID, otherID uint) error {
	if userID == otherID {
		return apperr.Invalidf("cannot unfriend yourself")
	}
	if err := s.friends.DeleteFriendship(userID, otherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFoundf("you are not friends with this user")
		}
		return err
	}
	return nil
}

// PurgeDeclinedRequests removes declined rows left over from earlier
// versions that kept them. Run from the cleanup binary.
func (s *RelationshipService) PurgeDeclinedRequests() (int64, error) {
	return s.friends.PurgeDeclined()
}
