package models

import "time"

// Message is a direct message between two friends. IsRead is always present
// and defaults to false; readers flip it when fetching a conversation.
type Message struct {
	ID         uint   `gorm:"primaryKey"`
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Content    string `gorm:"type:text;not null"`
	IsRead     bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}
