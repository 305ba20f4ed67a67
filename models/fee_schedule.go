package models

import (
	"time"
)

// CardFeeSchedule is one card processor's fee percentage and deposit lag in
// business days. Sales snapshot the computed values at creation time, so
// editing a schedule entry is never retroactive.
type CardFeeSchedule struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;not null;unique"`
	FeeRate     float64   `json:"fee_rate" gorm:"type:decimal(4,1);not null;default:0"` // percent, 0-100, one decimal
	DepositDays int       `json:"deposit_days" gorm:"not null;default:0"`               // business days, 0-365
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (CardFeeSchedule) TableName() string {
	return "card_fee_schedules"
}
