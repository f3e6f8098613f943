package model

import "time"

type StoredImage struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	URL           *string
	Verified      bool   `gorm:"not null;default:false;index"`
	UserID        *uint  `gorm:"index"`
	User          *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL;"`
	AttachmentKey string `gorm:"size:255"`
	ContentType   string `gorm:"size:100"`
	Filename      string `gorm:"size:255"`
}

// OwnedBy 判断图片是否属于指定用户。
func (i *StoredImage) OwnedBy(userID uint) bool {
	return i.UserID != nil && *i.UserID == userID
}
