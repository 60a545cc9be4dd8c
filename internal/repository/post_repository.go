package repository

import (
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// PostRepository persists posts and comments.
type PostRepository interface {
	Create(post *models.Post) error
	Get(id uint) (*models.Post, error)
	GetWithAuthor(id uint) (*models.Post, error)
	Save(post *models.Post) error
	// Delete removes the post together with its comments and all vote
	// rows on the post and its comments.
	Delete(id uint) error
	ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Post, int64, error)
	RecentByAuthors(authorIDs []uint, limit int) ([]models.Post, error)
	// Recent returns the newest posts platform-wide.
	Recent(limit int) ([]models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	CountCommentsByAuthor(authorID uint) (int64, error)

	CreateComment(comment *models.Comment) error
	GetComment(id uint) (*models.Comment, error)
	// DeleteComment removes the comment and its vote rows.
	DeleteComment(id uint) error
	ListComments(postID uint) ([]models.Comment, error)
	CountComments(postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns the gorm-backed PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return translate(r.db.Create(post).Error)
}

func (r *postRepository) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) GetWithAuthor(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Save(post *models.Post) error {
	return translate(r.db.Save(post).Error)
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) ListByAuthors(authorIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}

	q := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) RecentByAuthors(authorIDs []uint, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.
		Where("author_id IN ?", authorIDs).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Recent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) CountCommentsByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) CreateComment(comment *models.Comment) error {
	return translate(r.db.Create(comment).Error)
}

func (r *postRepository) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *postRepository) CountComments(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
