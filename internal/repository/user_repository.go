package repository

import (
	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository persists users and their optional profiles.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByLogin(login string) (*models.User, error) // username or email
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Search(query string, excludeID uint, offset, limit int) ([]models.User, int64, error)
	// List returns users newest first, excluding excludeID.
	List(excludeID uint, offset, limit int) ([]models.User, int64, error)

	GetProfile(userID uint) (*models.Profile, error)
	SaveProfile(profile *models.Profile) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns the gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return translate(r.db.Create(user).Error)
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetByLogin(login string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Search(query string, excludeID uint, offset, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{}).Where("id <> ?", excludeID)
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("username ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) List(excludeID uint, offset, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{}).Where("id <> ?", excludeID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *userRepository) SaveProfile(profile *models.Profile) error {
	return translate(r.db.Save(profile).Error)
}
