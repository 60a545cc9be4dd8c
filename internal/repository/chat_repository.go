package repository

import (
	"socialnet/backend/internal/models"
	"time"

	"gorm.io/gorm"
)

// ChatSession summarizes one assistant session for history listings.
type ChatSession struct {
	SessionID   string    `json:"session_id"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
}

// ChatRepository persists assistant transcripts.
type ChatRepository interface {
	Create(entry *models.ChatHistory) error
	SetMemoryID(id uint, memoryID string) error
	SessionMessages(userID uint, sessionID string) ([]models.ChatHistory, error)
	Sessions(userID uint) ([]ChatSession, error)
	CountSessions(userID uint) (int64, error)
	// MemoryIDs returns the non-empty memory-store handles for the scope;
	// an empty sessionID means all of the user's turns.
	MemoryIDs(userID uint, sessionID string) ([]string, error)
	DeleteSession(userID uint, sessionID string) error
	DeleteAll(userID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns the gorm-backed ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(entry *models.ChatHistory) error {
	return translate(r.db.Create(entry).Error)
}

func (r *chatRepository) SetMemoryID(id uint, memoryID string) error {
	return r.db.Model(&models.ChatHistory{}).
		Where("id = ?", id).
		Update("memory_id", memoryID).Error
}

func (r *chatRepository) SessionMessages(userID uint, sessionID string) ([]models.ChatHistory, error) {
	var entries []models.ChatHistory
	err := r.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *chatRepository) Sessions(userID uint) ([]ChatSession, error) {
	// last_message must come from the newest turn of each session, so it is
	// picked with a correlated subquery rather than an aggregate.
	var sessions []ChatSession
	err := r.db.Model(&models.ChatHistory{}).
		Select(`session_id,
			(SELECT latest.user_message FROM chat_histories latest
			 WHERE latest.user_id = ? AND latest.session_id = chat_histories.session_id
			 ORDER BY latest.created_at DESC, latest.id DESC LIMIT 1) AS last_message,
			MAX(created_at) AS last_at`, userID).
		Where("user_id = ?", userID).
		Group("session_id").
		Order("last_at DESC").
		Scan(&sessions).Error
	return sessions, err
}

func (r *chatRepository) CountSessions(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatHistory{}).
		Where("user_id = ?", userID).
		Distinct("session_id").
		Count(&count).Error
	return count, err
}

func (r *chatRepository) MemoryIDs(userID uint, sessionID string) ([]string, error) {
	q := r.db.Model(&models.ChatHistory{}).
		Where("user_id = ? AND memory_id <> ''", userID)
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	var ids []string
	err := q.Pluck("memory_id", &ids).Error
	return ids, err
}

func (r *chatRepository) DeleteSession(userID uint, sessionID string) error {
	return r.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.ChatHistory{}).Error
}

func (r *chatRepository) DeleteAll(userID uint) error {
	return r.db.
		Where("user_id = ?", userID).
		Delete(&models.ChatHistory{}).Error
}
