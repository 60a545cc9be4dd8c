package models

import "time"

// Post categories.
const (
	CategoryPersonal     = "personal"
	CategoryProfessional = "professional"
)

// Vote values for PostLike and CommentLike rows.
const (
	VoteLike    = 1
	VoteDislike = -1
)

// Post belongs to exactly one author and is visible to the author and the
// author's friends only.
type Post struct {
	ID            uint   `gorm:"primaryKey"`
	AuthorID      uint   `gorm:"not null;index"`
	Content       string `gorm:"type:text;not null"`
	Category      string `gorm:"size:20;not null"`
	AIAnalysis    string `gorm:"type:text"`
	IsAIGenerated bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE"`
	Likes    []PostLike `gorm:"constraint:OnDelete:CASCADE"`
}

// Comment belongs to one post. AuthorID is nil for assistant-written
// comments, which always set IsAIComment.
type Comment struct {
	ID          uint   `gorm:"primaryKey"`
	PostID      uint   `gorm:"not null;index"`
	AuthorID    *uint  `gorm:"index"`
	Content     string `gorm:"type:text;not null"`
	IsAIComment bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author *User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Likes  []CommentLike `gorm:"constraint:OnDelete:CASCADE"`
}

// PostLike is one user's vote on a post. One row per (post, user).
type PostLike struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_post_like_voter"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_post_like_voter"`
	VoteType  int  `gorm:"not null;default:1"` // VoteLike or VoteDislike
	CreatedAt time.Time
}

// CommentLike is one user's vote on a comment. One row per (comment, user).
type CommentLike struct {
	ID        uint `gorm:"primaryKey"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_like_voter"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_like_voter"`
	VoteType  int  `gorm:"not null;default:1"`
	CreatedAt time.Time
}
