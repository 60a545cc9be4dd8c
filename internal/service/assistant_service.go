package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/assistant"
	"socialnet/backend/internal/memory"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"

	"github.com/google/uuid"
)

// historyWindow caps how many prior turns of the session go into the prompt.
const historyWindow = 10

// recallLimit caps how many memory snippets are folded into the prompt.
const recallLimit = 3

// ChatReply is the assistant's answer for one turn.
type ChatReply struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

// AssistantService runs the AI chat assistant. The vector memory is a soft
// dependency: recall and store failures degrade the answer but never fail
// the turn. The text generator is hard: without a completion there is no
// answer to give.
type AssistantService struct {
	chats    repository.ChatRepository
	users    repository.UserRepository
	friends  repository.FriendRepository
	posts    repository.PostRepository
	gen      assistant.TextGenerator
	mem      memory.Store
	activity *ActivityLogger
	logger   *slog.Logger
}

// NewAssistantService builds the service. mem may be nil when no vector
// store is configured.
func NewAssistantService(chats repository.ChatRepository, users repository.UserRepository,
	friends repository.FriendRepository, posts repository.PostRepository,
	gen assistant.TextGenerator, mem memory.Store, activity *ActivityLogger) *AssistantService {
	return &AssistantService{
		chats:    chats,
		users:    users,
		friends:  friends,
		posts:    posts,
		gen:      gen,
		mem:      mem,
		activity: activity,
		logger:   slog.Default().With("component", "assistant"),
	}
}

// Chat answers one message inside a session. An empty sessionID starts a
// new session. The turn is persisted before the reply is returned.
func (s *AssistantService) Chat(ctx context.Context, userID uint, sessionID, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.Invalidf("message cannot be empty")
	}
	if s.gen == nil {
		return nil, fmt.Errorf("assistant is not configured")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	systemPrompt, err := s.buildSystemPrompt(ctx, user, message)
	if err != nil {
		return nil, err
	}

	history, err := s.chats.SessionMessages(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	turns := make([]assistant.ChatTurn, 0, len(history))
	for _, h := range history {
		turns = append(turns, assistant.ChatTurn{UserMessage: h.UserMessage, AIResponse: h.AIResponse})
	}

	response, err := s.gen.Generate(ctx, systemPrompt, turns, message)
	if err != nil {
		return nil, fmt.Errorf("assistant generation failed: %w", err)
	}

	entry := &models.ChatHistory{
		UserID:      userID,
		SessionID:   sessionID,
		UserMessage: message,
		AIResponse:  response,
	}
	if err := s.chats.Create(entry); err != nil {
		return nil, err
	}

	// Store the turn in vector memory, best effort.
	if s.mem != nil {
		turn := fmt.Sprintf("User: %s\nAssistant: %s", message, response)
		memoryID, err := s.mem.Remember(ctx, userID, sessionID, turn)
		if err != nil {
			s.logger.Warn("failed to store memory", "user_id", userID, "error", err)
		} else if err := s.chats.SetMemoryID(entry.ID, memoryID); err != nil {
			s.logger.Warn("failed to record memory handle", "user_id", userID, "error", err)
		}
	}

	s.activity.Log(userID, models.ActivityChatbotInteraction,
		"Chatted with the assistant", nil, models.JSONMap{"session_id": sessionID})

	return &ChatReply{SessionID: sessionID, Response: response}, nil
}

// buildSystemPrompt scopes the assistant's context to the caller's role:
// admins see recent activity across the whole platform, regular users only
// their friends' latest posts. Memory recall failures degrade to an empty
// recall section.
func (s *AssistantService) buildSystemPrompt(ctx context.Context, user *models.User, message string) (string, error) {
	var b strings.Builder
	b.WriteString("You are the social network's helpful assistant. Answer briefly and in a friendly tone.\n")
	fmt.Fprintf(&b, "You are talking to %s.\n", user.Username)

	var posts []models.Post
	var err error
	if user.IsAdmin() {
		b.WriteString("The user is a platform administrator; you may discuss activity across the whole platform.\n")
		posts, err = s.posts.Recent(5)
	} else {
		var friendIDs []uint
		friendIDs, err = s.friends.FriendIDs(user.ID)
		if err == nil {
			posts, err = s.posts.RecentByAuthors(friendIDs, 5)
		}
	}
	if err != nil {
		return "", err
	}

	if len(posts) > 0 {
		b.WriteString("Recent posts the user can see:\n")
		for _, p := range posts {
			fmt.Fprintf(&b, "- %s: %s\n", p.Author.Username, p.Content)
		}
	}

	if s.mem != nil {
		snippets, err := s.mem.Recall(ctx, user.ID, message, recallLimit)
		if err != nil {
			s.logger.Warn("memory recall failed", "user_id", user.ID, "error", err)
		} else if len(snippets) > 0 {
			b.WriteString("Relevant earlier conversations:\n")
			for _, snippet := range snippets {
				fmt.Fprintf(&b, "- %s\n", snippet)
			}
		}
	}

	return b.String(), nil
}

// Sessions lists the user's chat sessions, most recent first.
func (s *AssistantService) Sessions(userID uint) ([]repository.ChatSession, error) {
	return s.chats.Sessions(userID)
}

// SessionMessages returns one session's transcript, oldest first.
func (s *AssistantService) SessionMessages(userID uint, sessionID string) ([]models.ChatHistory, error) {
	entries, err := s.chats.SessionMessages(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperr.NotFoundf("chat session not found")
	}
	return entries, nil
}

// DeleteSession removes one session's transcript and its vector memories.
// Memory deletion is best effort; the rows go regardless.
func (s *AssistantService) DeleteSession(ctx context.Context, userID uint, sessionID string) error {
	s.forget(ctx, userID, sessionID)
	return s.chats.DeleteSession(userID, sessionID)
}

// DeleteAll wipes the user's entire chat history and memories.
func (s *AssistantService) DeleteAll(ctx context.Context, userID uint) error {
	s.forget(ctx, userID, "")
	return s.chats.DeleteAll(userID)
}

func (s *AssistantService) forget(ctx context.Context, userID uint, sessionID string) {
	if s.mem == nil {
		return
	}
	ids, err := s.chats.MemoryIDs(userID, sessionID)
	if err != nil {
		s.logger.Warn("failed to collect memory handles", "user_id", userID, "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	if err := s.mem.Forget(ctx, ids); err != nil {
		s.logger.Warn("failed to delete memories", "user_id", userID, "error", err)
	}
}
