package model

import "time"

// User 账号。图片通过 StoredImage.UserID 关联。
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string `gorm:"uniqueIndex;not null;size:255"`
	Email          string `gorm:"uniqueIndex;not null;size:255"`
	PasswordDigest string `json:"-" gorm:"not null"`
	IsAdmin        bool   `gorm:"not null;default:false"`
	Flags          Flags  `gorm:"not null"`
}
