package service

import (
	"errors"
	"fmt"
	"strings"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
)

// MessageService owns direct messaging between friends.
type MessageService struct {
	messages repository.MessageRepository
	friends  repository.FriendRepository
	users    repository.UserRepository
	activity *ActivityLogger
}

func NewMessageService(messages repository.MessageRepository, friends repository.FriendRepository,
	users repository.UserRepository, activity *ActivityLogger) *MessageService {
	return &MessageService{messages: messages, friends: friends, users: users, activity: activity}
}

// SendMessage delivers a message to a friend. Non-friends cannot message
// each other, and empty or whitespace-only content is rejected before any
// other check touches the database.
func (s *MessageService) SendMessage(senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Invalidf("message content cannot be empty")
	}
	if senderID == receiverID {
		return nil, apperr.Invalidf("cannot message yourself")
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, err
	}

	friends, err := s.friends.AreFriends(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperr.Unauthorizedf("you can only message your friends")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	s.activity.Log(senderID, models.ActivityMessageSent,
		fmt.Sprintf("Sent a message to %s", receiver.Username),
		&receiverID, models.JSONMap{"message_id": message.ID})
	s.activity.Log(receiverID, models.ActivityMessageReceived,
		"Received a message",
		&senderID, models.JSONMap{"message_id": message.ID})

	return message, nil
}

// Conversation returns the thread with a friend, oldest first, and marks
// the other side's messages as read. Reading requires the friendship to
// still exist; an unfriended user loses access to the history.
func (s *MessageService) Conversation(userID, otherID, afterID uint) ([]models.Message, error) {
	if userID == otherID {
		return nil, apperr.Invalidf("cannot open a conversation with yourself")
	}

	friends, err := s.friends.AreFriends(userID, otherID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperr.Unauthorizedf("you can only view conversations with your friends")
	}

	messages, err := s.messages.Conversation(userID, otherID, afterID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkRead(userID, otherID); err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadCount returns how many messages are waiting for the user.
func (s *MessageService) UnreadCount(userID uint) (int64, error) {
	return s.messages.UnreadCount(userID)
}
