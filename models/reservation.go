package models

import (
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation carries two independent reminder triggers: ReminderAt is an
// absolute timestamp picked up by the hourly sweep, ReminderDate a calendar
// date picked up by the daily 08:00 sweep. Both are cleared unconditionally
// after a dispatch attempt so a sweep never re-sends.
type Reservation struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	Date            time.Time         `json:"date" gorm:"type:date;not null;index"`
	Time            *string           `json:"time" gorm:"size:10"` // "HH:MM", optional
	CustomerName    string            `json:"customer_name" gorm:"size:100;not null"`
	EstimatedAmount int64             `json:"estimated_amount" gorm:"default:0"`
	Memo            string            `json:"memo" gorm:"size:500"`
	Status          ReservationStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','completed','cancelled')"`

	ReminderAt   *time.Time `json:"reminder_at" gorm:"index"`
	ReminderDate *time.Time `json:"reminder_date" gorm:"type:date;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Reservation) TableName() string {
	return "reservations"
}
