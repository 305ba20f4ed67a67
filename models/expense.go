package models

import (
	"time"
)

type Expense struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;not null;index"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Category  string    `json:"category" gorm:"size:50"` // e.g. flowers, materials, delivery, rent
	Memo      string    `json:"memo" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
