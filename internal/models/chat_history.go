package models

import "time"

// ChatHistory is one assistant turn: the user's message and the generated
// response, grouped by session. MemoryID is the opaque handle returned by
// the vector memory store, kept so the snippet can be deleted later.
type ChatHistory struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	SessionID   string `gorm:"size:100;not null;index"`
	UserMessage string `gorm:"type:text;not null"`
	AIResponse  string `gorm:"type:text;not null"`
	MemoryID    string `gorm:"size:100"`
	CreatedAt   time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
