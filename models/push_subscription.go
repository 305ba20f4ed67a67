package models

import (
	"time"
)

// PushSubscription is a browser endpoint registered for web push. A
// subscription is deactivated (never deleted) the first time the push
// transport rejects it; the device must resubscribe to become active again.
type PushSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Endpoint  string    `json:"endpoint" gorm:"size:500;not null;unique"`
	P256dh    string    `json:"p256dh" gorm:"size:200;not null"`
	Auth      string    `json:"auth" gorm:"size:100;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
