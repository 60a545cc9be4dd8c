package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Activity kinds written by the services. Open set; new kinds may be added
// without a migration.
const (
	ActivitySignup                = "signup"
	ActivityLogin                 = "login"
	ActivityCreateProfile         = "create_profile"
	ActivityFriendRequestSent     = "friend_request_sent"
	ActivityFriendRequestReceived = "friend_request_received"
	ActivityFriendRequestAccepted = "friend_request_accepted"
	ActivityFriendRequestDeclined = "friend_request_declined"
	ActivityMessageSent           = "send_message"
	ActivityMessageReceived       = "receive_message"
	ActivityCreatePost            = "create_post"
	ActivityDeletePost            = "delete_post"
	ActivityLikePost              = "like_post"
	ActivityDislikePost           = "dislike_post"
	ActivityCreateComment         = "create_comment"
	ActivityDeleteComment         = "delete_comment"
	ActivityLikeComment           = "like_comment"
	ActivityDislikeComment        = "dislike_comment"
	ActivityChatbotInteraction    = "chatbot_interaction"
	ActivityUserDeleted           = "delete_user"
)

// JSONMap stores arbitrary structured payloads in a JSON column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	return json.Unmarshal(data, m)
}

// ActivityLog is an append-only audit row. It is never mutated and never
// read back for business decisions.
type ActivityLog struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       uint    `gorm:"not null;index"`
	ActivityType string  `gorm:"size:50;not null;index"`
	Description  string  `gorm:"type:text;not null"`
	TargetUserID *uint   `gorm:"index"`
	ActivityData JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time

	User       User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TargetUser *User `gorm:"foreignKey:TargetUserID;constraint:OnDelete:SET NULL"`
}
