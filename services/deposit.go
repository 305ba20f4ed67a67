package services

import (
	"math"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// DepositResult is the snapshot written onto a sale at creation time.
type DepositResult struct {
	Fee                 int64
	ExpectedDeposit     int64
	ExpectedDepositDate *time.Time
	DepositStatus       models.DepositStatus
}

// ComputeDeposit derives the fee, net expected deposit, expected deposit date
// and initial deposit status for a sale.
//
// Non-card payments pass through untouched: no fee, full amount, no deposit
// date, excluded from reconciliation. Card payments look up the processor by
// exact name; an unknown or missing processor degrades to zero fee and zero
// lag rather than failing the sale.
func ComputeDeposit(amount int64, method models.PaymentMethod, cardCompany string, saleDate time.Time, schedule []models.CardFeeSchedule) DepositResult {
	if method != models.PaymentMethodCard {
		return DepositResult{
			Fee:             0,
			ExpectedDeposit: amount,
			DepositStatus:   models.DepositStatusNotApplicable,
		}
	}

	feeRate := 0.0
	depositDays := 0
	for _, entry := range schedule {
		if entry.Name == cardCompany {
			feeRate = entry.FeeRate
			depositDays = entry.DepositDays
			break
		}
	}

	fee := calcFee(amount, feeRate)
	depositDate := AddBusinessDays(saleDate, depositDays)

	return DepositResult{
		Fee:                 fee,
		ExpectedDeposit:     amount - fee,
		ExpectedDepositDate: &depositDate,
		DepositStatus:       models.DepositStatusPending,
	}
}

// calcFee computes floor(amount * feeRate / 100). Fee rates carry one decimal
// of precision, so the computation runs on integer tenths of a percent to
// keep the floor exact.
func calcFee(amount int64, feeRate float64) int64 {
	tenths := int64(math.Round(feeRate * 10))
	return amount * tenths / 1000
}

// AddBusinessDays advances date by n business days, skipping Saturdays and
// Sundays. n = 0 returns the date unchanged even when it falls on a weekend.
func AddBusinessDays(date time.Time, n int) time.Time {
	d := date
	for remaining := n; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			remaining--
		}
	}
	return d
}
