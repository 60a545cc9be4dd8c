package repository

import (
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// AccountRepository handles whole-account removal. Deletion is an explicit
// orchestrated sweep rather than a database cascade: comments the user left
// on other people's posts are not reachable from any single cascade root.
type AccountRepository interface {
	// DeleteUserData removes every row belonging to the user in one
	// transaction: votes, comments, posts (with their comments and
	// votes), messages, friendships, friend requests, chat history,
	// audit rows, profile, and the user itself.
	DeleteUserData(userID uint) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns the gorm-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) DeleteUserData(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("author_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		// Comments on the user's posts plus comments the user authored
		// elsewhere.
		var commentIDs []uint
		q := tx.Model(&models.Comment{}).Where("author_id = ?", userID)
		if len(postIDs) > 0 {
			q = q.Or("post_id IN ?", postIDs)
		}
		if err := q.Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).
				Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).
				Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if len(postIDs) > 0 {
			if err := tx.Where("id IN ?", postIDs).
				Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user1_id = ? OR user2_id = ?", userID, userID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.ChatHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ActivityLog{}).
			Where("target_user_id = ?", userID).
			Update("target_user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Delete(&models.User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
