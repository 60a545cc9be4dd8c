package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored on User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:50;unique;not null"`
	Email        string `gorm:"size:120;unique;not null"`
	Name         string `gorm:"size:100;not null"` // display name
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:'user';index"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Profile holds the optional extended profile for a user. A user may exist
// without one.
type Profile struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"uniqueIndex;not null"`
	Phone          string `gorm:"size:20"`
	Education      string `gorm:"size:100"`
	Work           string `gorm:"size:100"`
	Website        string `gorm:"size:200"`
	Github         string `gorm:"size:100"`
	Linkedin       string `gorm:"size:100"`
	ProfilePicture string `gorm:"size:500"` // public URL from the media store
	SecretKey      string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
