package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	UserID           uint64         `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	Username         string         `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Email            string         `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	FullName         string         `gorm:"column:full_name;size:100" json:"full_name"`
	PasswordHash     string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	Avatar           string         `gorm:"column:avatar;size:512" json:"avatar"`
	CoverImage       string         `gorm:"column:cover_image;size:512" json:"cover_image"`
	RefreshTokenHash string         `gorm:"column:refresh_token_hash;size:64" json:"-"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// Profile is the trimmed owner shape joined into feeds. Never carries
// password or refresh token material.
type Profile struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

func (u *User) Profile() Profile {
	return Profile{
		UserID:   u.UserID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
