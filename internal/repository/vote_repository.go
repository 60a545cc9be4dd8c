package repository

import (
	"fmt"
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// VoteTarget selects which vote table an operation works against. Posts and
// comments share one toggle algorithm; only the backing table differs.
type VoteTarget string

const (
	VoteTargetPost    VoteTarget = "post"
	VoteTargetComment VoteTarget = "comment"
)

// VoteRepository persists like/dislike rows for posts and comments.
type VoteRepository interface {
	// Find returns the actor's vote on the target, if any.
	Find(target VoteTarget, targetID, userID uint) (voteType int, found bool, err error)
	Insert(target VoteTarget, targetID, userID uint, voteType int) error
	UpdateType(target VoteTarget, targetID, userID uint, voteType int) error
	Delete(target VoteTarget, targetID, userID uint) error
	// Counts partitions the target's vote rows by sign.
	Counts(target VoteTarget, targetID uint) (likes, dislikes int64, err error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns the gorm-backed VoteRepository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// scoped returns a query over the right table filtered to (target, user).
func (r *voteRepository) scoped(target VoteTarget, targetID, userID uint) (*gorm.DB, error) {
	switch target {
	case VoteTargetPost:
		return r.db.Model(&models.PostLike{}).
			Where("post_id = ? AND user_id = ?", targetID, userID), nil
	case VoteTargetComment:
		return r.db.Model(&models.CommentLike{}).
			Where("comment_id = ? AND user_id = ?", targetID, userID), nil
	default:
		return nil, fmt.Errorf("unknown vote target %q", target)
	}
}

func (r *voteRepository) Find(target VoteTarget, targetID, userID uint) (int, bool, error) {
	q, err := r.scoped(target, targetID, userID)
	if err != nil {
		return 0, false, err
	}

	var voteTypes []int
	if err := q.Limit(1).Pluck("vote_type", &voteTypes).Error; err != nil {
		return 0, false, err
	}
	if len(voteTypes) == 0 {
		return 0, false, nil
	}
	return voteTypes[0], true, nil
}

func (r *voteRepository) Insert(target VoteTarget, targetID, userID uint, voteType int) error {
	switch target {
	case VoteTargetPost:
		return translate(r.db.Create(&models.PostLike{
			PostID: targetID, UserID: userID, VoteType: voteType,
		}).Error)
	case VoteTargetComment:
		return translate(r.db.Create(&models.CommentLike{
			CommentID: targetID, UserID: userID, VoteType: voteType,
		}).Error)
	default:
		return fmt.Errorf("unknown vote target %q", target)
	}
}

func (r *voteRepository) UpdateType(target VoteTarget, targetID, userID uint, voteType int) error {
	q, err := r.scoped(target, targetID, userID)
	if err != nil {
		return err
	}
	return q.Update("vote_type", voteType).Error
}

func (r *voteRepository) Delete(target VoteTarget, targetID, userID uint) error {
	switch target {
	case VoteTargetPost:
		return r.db.
			Where("post_id = ? AND user_id = ?", targetID, userID).
			Delete(&models.PostLike{}).Error
	case VoteTargetComment:
		return r.db.
			Where("comment_id = ? AND user_id = ?", targetID, userID).
			Delete(&models.CommentLike{}).Error
	default:
		return fmt.Errorf("unknown vote target %q", target)
	}
}

func (r *voteRepository) Counts(target VoteTarget, targetID uint) (int64, int64, error) {
	var likes, dislikes int64
	var model interface{}
	var column string

	switch target {
	case VoteTargetPost:
		model, column = &models.PostLike{}, "post_id"
	case VoteTargetComment:
		model, column = &models.CommentLike{}, "comment_id"
	default:
		return 0, 0, fmt.Errorf("unknown vote target %q", target)
	}

	err := r.db.Model(model).
		Where(column+" = ? AND vote_type = ?", targetID, models.VoteLike).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Model(model).
		Where(column+" = ? AND vote_type = ?", targetID, models.VoteDislike).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
