package repository

import (
	"errors"
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint. The
// services translate it into a Conflict for the caller; this is also the
// backstop for races the read-then-write checks cannot see.
var ErrDuplicate = errors.New("duplicate record")

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// FriendRepository persists friend requests and friendships.
type FriendRepository interface {
	CreateRequest(req *models.FriendRequest) error
	GetRequest(id uint) (*models.FriendRequest, error)
	FindPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error)
	ListPendingForReceiver(receiverID uint) ([]models.FriendRequest, error)
	CountPendingForReceiver(receiverID uint) (int64, error)
	CountPendingForSender(senderID uint) (int64, error)

	// AcceptRequest marks the request accepted and creates the canonical
	// friendship row. Both writes happen atomically or not at all.
	AcceptRequest(req *models.FriendRequest) error
	DeleteRequest(id uint) error
	PurgeDeclined() (int64, error)

	AreFriends(a, b uint) (bool, error)
	FriendIDs(userID uint) ([]uint, error)
	CountFriends(userID uint) (int64, error)

	// DeleteFriendship removes the pair's friendship row and any accepted
	// request rows between them, so either side may re-request later.
	DeleteFriendship(a, b uint) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns the gorm-backed FriendRepository.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(req *models.FriendRequest) error {
	return translate(r.db.Create(req).Error)
}

func (r *friendRepository) GetRequest(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *friendRepository) FindPendingRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.RequestPending).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *friendRepository) ListPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.
		Where("receiver_id = ? AND status = ?", receiverID, models.RequestPending).
		Preload("Sender").
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *friendRepository) CountPendingForReceiver(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND status = ?", receiverID, models.RequestPending).
		Count(&count).Error
	return count, err
}

func (r *friendRepository) CountPendingForSender(senderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND status = ?", senderID, models.RequestPending).
		Count(&count).Error
	return count, err
}

func (r *friendRepository) AcceptRequest(req *models.FriendRequest) error {
	user1, user2 := models.CanonicalPair(req.SenderID, req.ReceiverID)
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		friendship := models.Friendship{User1ID: user1, User2ID: user2}
		if err := tx.Create(&friendship).Error; err != nil {
			return err
		}
		return tx.Model(&models.FriendRequest{}).
			Where("id = ?", req.ID).
			Update("status", models.RequestAccepted).Error
	}))
}

func (r *friendRepository) DeleteRequest(id uint) error {
	result := r.db.Delete(&models.FriendRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *friendRepository) PurgeDeclined() (int64, error) {
	result := r.db.
		Where("status = ?", models.RequestDeclined).
		Delete(&models.FriendRequest{})
	return result.RowsAffected, result.Error
}

func (r *friendRepository) AreFriends(a, b uint) (bool, error) {
	user1, user2 := models.CanonicalPair(a, b)
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", user1, user2).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) FriendIDs(userID uint) ([]uint, error) {
	var friendships []models.Friendship
	err := r.db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.User1ID == userID {
			ids = append(ids, f.User2ID)
		} else {
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}

func (r *friendRepository) CountFriends(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *friendRepository) DeleteFriendship(a, b uint) error {
	user1, user2 := models.CanonicalPair(a, b)
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user1_id = ? AND user2_id = ?", user1, user2).
			Delete(&models.Friendship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		// Clear accepted request rows so a fresh request is possible.
		return tx.
			Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
				a, b, b, a, models.RequestAccepted).
			Delete(&models.FriendRequest{}).Error
	})
}
