package models

import (
	"time"
)

// GalleryPhoto is one image in the shop gallery, stored in Cloudinary.
// SortOrder preserves the upload/drag order shown on the gallery page.
type GalleryPhoto struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PublicID  string    `json:"public_id" gorm:"size:255;not null"` // Cloudinary public ID
	URL       string    `json:"url" gorm:"size:500;not null"`
	Caption   string    `json:"caption" gorm:"size:200"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (GalleryPhoto) TableName() string {
	return "gallery_photos"
}
