package models

import "time"

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

const (
	// RequestPending means the request has been sent but not answered.
	RequestPending FriendRequestStatus = "pending"

	// RequestAccepted means the receiver accepted and a Friendship row
	// exists for the pair.
	RequestAccepted FriendRequestStatus = "accepted"

	// RequestDeclined is never written by current code paths; declined
	// requests are deleted outright. Rows in this state can only be
	// legacy data and are swept by the cleanup job.
	RequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is the ordered (sender -> receiver) half of the friendship
// handshake. The pair is unique; a declined request is deleted so the same
// sender may try again.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}

// Friendship is the symmetric relation between two users, stored once with
// User1ID < User2ID so the unordered pair maps to exactly one row.
type Friendship struct {
	ID        uint `gorm:"primaryKey"`
	User1ID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	User2ID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	CreatedAt time.Time

	User1 User `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE"`
	User2 User `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE"`
}

// CanonicalPair orders two user ids as they are stored on a Friendship row.
func CanonicalPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}
