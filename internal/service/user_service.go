package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"net/mail"
	"strings"

	"socialnet/backend/internal/apperr"
	"socialnet/backend/internal/media"
	"socialnet/backend/internal/models"
	"socialnet/backend/internal/repository"
	"socialnet/backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns accounts, authentication and profiles.
type UserService struct {
	users      repository.UserRepository
	storage    media.Storage
	activity   *ActivityLogger
	adminEmail string
}

// NewUserService builds the service. storage may be nil; profile picture
// upload is then unavailable. adminEmail, when non-empty, grants the admin
// role to the account registering with that address.
func NewUserService(users repository.UserRepository, storage media.Storage,
	activity *ActivityLogger, adminEmail string) *UserService {
	return &UserService{
		users:      users,
		storage:    storage,
		activity:   activity,
		adminEmail: adminEmail,
	}
}

// Register creates an account and returns it with a signed token.
func (s *UserService) Register(username, email, name, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if len(username) < 3 {
		return nil, "", apperr.Invalidf("username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", apperr.Invalidf("invalid email address")
	}
	if name == "" {
		return nil, "", apperr.Invalidf("name cannot be empty")
	}
	if len(password) < 6 {
		return nil, "", apperr.Invalidf("password must be at least 6 characters")
	}

	if taken, err := s.users.ExistsByUsername(username); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperr.Conflictf("username is already taken")
	}
	if taken, err := s.users.ExistsByEmail(email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", apperr.Conflictf("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if s.adminEmail != "" && email == strings.ToLower(s.adminEmail) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperr.Conflictf("username or email is already taken")
		}
		return nil, "", err
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.activity.Log(user.ID, models.ActivitySignup, "Created an account", nil, nil)
	return user, token, nil
}

// Login checks credentials against username or email and returns a token.
func (s *UserService) Login(login, password string) (*models.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", apperr.Invalidf("login and password are required")
	}

	user, err := s.users.GetByLogin(login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.Unauthorizedf("invalid credentials")
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.Unauthorizedf("invalid credentials")
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.activity.Log(user.ID, models.ActivityLogin, "Logged in", nil, nil)
	return user, token, nil
}

// GetUser returns the account by id.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Search finds users by username or display name, excluding the caller.
func (s *UserService) Search(callerID uint, query string, offset, limit int) ([]models.User, int64, error) {
	return s.users.Search(strings.TrimSpace(query), callerID, offset, limit)
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Phone     string `json:"phone"`
	Education string `json:"education"`
	Work      string `json:"work"`
	Website   string `json:"website"`
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
}

// GetProfile returns the user's profile, if one was created.
func (s *UserService) GetProfile(userID uint) (*models.Profile, error) {
	profile, err := s.users.GetProfile(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile creates the profile on first save and updates it afterwards.
// A fresh profile gets its secret key generated here.
func (s *UserService) SaveProfile(userID uint, input ProfileInput) (*models.Profile, error) {
	profile, err := s.users.GetProfile(userID)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		key, err := generateSecretKey()
		if err != nil {
			return nil, err
		}
		profile = &models.Profile{UserID: userID, SecretKey: key}
		created = true
	default:
		return nil, err
	}

	profile.Phone = strings.TrimSpace(input.Phone)
	profile.Education = strings.TrimSpace(input.Education)
	profile.Work = strings.TrimSpace(input.Work)
	profile.Website = strings.TrimSpace(input.Website)
	profile.Github = strings.TrimSpace(input.Github)
	profile.Linkedin = strings.TrimSpace(input.Linkedin)

	if err := s.users.SaveProfile(profile); err != nil {
		return nil, err
	}
	if created {
		s.activity.Log(userID, models.ActivityCreateProfile, "Created a profile", nil, nil)
	}
	return profile, nil
}

// RegenerateSecretKey replaces the profile's secret key and returns the new
// value. The old key stops working immediately.
func (s *UserService) RegenerateSecretKey(userID uint) (string, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}
	key, err := generateSecretKey()
	if err != nil {
		return "", err
	}
	profile.SecretKey = key
	if err := s.users.SaveProfile(profile); err != nil {
		return "", err
	}
	return key, nil
}

// UploadProfilePicture stores the image and records its URL on the profile.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	profile, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}

	url, err := s.storage.UploadProfilePicture(ctx, userID, file)
	if err != nil {
		return "", err
	}
	profile.ProfilePicture = url
	if err := s.users.SaveProfile(profile); err != nil {
		return "", err
	}
	return url, nil
}

func generateSecretKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
