package repository

import (
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository appends to and reads the audit trail. Rows are never
// updated.
type ActivityRepository interface {
	Append(entry *models.ActivityLog) error
	List(offset, limit int) ([]models.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns the gorm-backed ActivityRepository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) List(offset, limit int) ([]models.ActivityLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ActivityLog
	err := r.db.
		Preload("User").
		Preload("TargetUser").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
