package repository

import (
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(message *models.Message) error
	// Conversation returns both directions between the two users, oldest
	// first, limited to ids greater than afterID (0 for everything).
	Conversation(a, b, afterID uint) ([]models.Message, error)
	// MarkRead flags messages sent by otherID to readerID as read.
	MarkRead(readerID, otherID uint) error
	UnreadCount(userID uint) (int64, error)
	CountSent(userID uint) (int64, error)
	CountReceived(userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns the gorm-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return translate(r.db.Create(message).Error)
}

func (r *messageRepository) Conversation(a, b, afterID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Where("id > ?", afterID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkRead(readerID, otherID uint) error {
	return r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", readerID, otherID, false).
		Update("is_read", true).Error
}

func (r *messageRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) CountSent(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) CountReceived(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ?", userID).
		Count(&count).Error
	return count, err
}
