package models

import (
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodKakaoPay PaymentMethod = "kakao_pay"
	PaymentMethodNaverPay PaymentMethod = "naver_pay"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer,
		PaymentMethodKakaoPay, PaymentMethodNaverPay:
		return true
	default:
		return false
	}
}

type DepositStatus string

const (
	DepositStatusPending       DepositStatus = "pending"
	DepositStatusCompleted     DepositStatus = "completed"
	DepositStatusNotApplicable DepositStatus = "not_applicable"
)

// Sale is a point-of-sale entry. The fee/deposit fields are snapshots computed
// at creation time from the fee schedule then in effect; later edits to the
// schedule never alter them.
type Sale struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	SaleDate      time.Time     `json:"sale_date" gorm:"type:date;not null;index"`
	Amount        int64         `json:"amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null;check:payment_method IN ('cash','card','transfer','kakao_pay','naver_pay')"`
	CardCompany   string        `json:"card_company" gorm:"size:50"` // set only for card payments
	Item          string        `json:"item" gorm:"size:200"`
	Memo          string        `json:"memo" gorm:"size:500"`

	Fee                 int64         `json:"fee" gorm:"not null;default:0"`
	ExpectedDeposit     int64         `json:"expected_deposit" gorm:"not null;default:0"`
	ExpectedDepositDate *time.Time    `json:"expected_deposit_date" gorm:"type:date"`
	DepositStatus       DepositStatus `json:"deposit_status" gorm:"type:varchar(20);default:'not_applicable';index;check:deposit_status IN ('pending','completed','not_applicable')"`
	DepositedAt         *time.Time    `json:"deposited_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Sale) TableName() string {
	return "sales"
}

// MarkDeposited transitions the sale to completed. Confirming an
// already-completed sale is a no-op; non-card sales are never confirmable.
// Returns true if the row changed.
func (s *Sale) MarkDeposited(now time.Time) bool {
	if s.PaymentMethod != PaymentMethodCard || s.DepositStatus != DepositStatusPending {
		return false
	}
	s.DepositStatus = DepositStatusCompleted
	s.DepositedAt = &now
	return true
}

// RevertDeposit transitions a completed sale back to pending and clears the
// deposit timestamp. Reverting a pending sale is a no-op. Returns true if the
// row changed.
func (s *Sale) RevertDeposit() bool {
	if s.DepositStatus != DepositStatusCompleted {
		return false
	}
	s.DepositStatus = DepositStatusPending
	s.DepositedAt = nil
	return true
}
