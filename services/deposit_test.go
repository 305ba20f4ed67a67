package services

import (
	"testing"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testSchedule = []models.CardFeeSchedule{
	{Name: "신한", FeeRate: 2.0, DepositDays: 3, IsActive: true},
	{Name: "삼성", FeeRate: 2.5, DepositDays: 2, IsActive: true},
	{Name: "BC", FeeRate: 1.5, DepositDays: 0, IsActive: true},
}

func TestComputeDeposit_CardFeeAndDate(t *testing.T) {
	// 2025-01-09 is a Thursday; +3 business days skips the weekend
	saleDate := date(2025, time.January, 9)
	result := ComputeDeposit(100000, models.PaymentMethodCard, "신한", saleDate, testSchedule)

	if result.Fee != 2000 {
		t.Fatalf("expected fee 2000, got %d", result.Fee)
	}
	if result.ExpectedDeposit != 98000 {
		t.Fatalf("expected deposit 98000, got %d", result.ExpectedDeposit)
	}
	if result.DepositStatus != models.DepositStatusPending {
		t.Fatalf("expected status pending, got %s", result.DepositStatus)
	}
	if result.ExpectedDepositDate == nil {
		t.Fatal("expected a deposit date for a card sale")
	}
	want := date(2025, time.January, 14) // following Tuesday
	if !result.ExpectedDepositDate.Equal(want) {
		t.Fatalf("expected deposit date %s, got %s", want, result.ExpectedDepositDate)
	}
}

func TestComputeDeposit_FeePlusDepositEqualsAmount(t *testing.T) {
	amounts := []int64{1, 99, 1000, 33333, 100000, 987654321}
	for _, amount := range amounts {
		for _, entry := range testSchedule {
			result := ComputeDeposit(amount, models.PaymentMethodCard, entry.Name, date(2025, time.March, 3), testSchedule)
			if result.Fee+result.ExpectedDeposit != amount {
				t.Fatalf("%s amount %d: fee %d + deposit %d != amount", entry.Name, amount, result.Fee, result.ExpectedDeposit)
			}
			if result.Fee < 0 {
				t.Fatalf("%s amount %d: negative fee %d", entry.Name, amount, result.Fee)
			}
		}
	}
}

func TestComputeDeposit_FeeRoundsDown(t *testing.T) {
	// 10001 * 2.5% = 250.025 -> 250
	result := ComputeDeposit(10001, models.PaymentMethodCard, "삼성", date(2025, time.March, 3), testSchedule)
	if result.Fee != 250 {
		t.Fatalf("expected fee 250, got %d", result.Fee)
	}

	// 999 * 1.5% = 14.985 -> 14
	result = ComputeDeposit(999, models.PaymentMethodCard, "BC", date(2025, time.March, 3), testSchedule)
	if result.Fee != 14 {
		t.Fatalf("expected fee 14, got %d", result.Fee)
	}
}

func TestComputeDeposit_NonCardPassthrough(t *testing.T) {
	methods := []models.PaymentMethod{
		models.PaymentMethodCash,
		models.PaymentMethodTransfer,
		models.PaymentMethodKakaoPay,
		models.PaymentMethodNaverPay,
	}
	for _, method := range methods {
		result := ComputeDeposit(50000, method, "", date(2025, time.March, 3), testSchedule)
		if result.Fee != 0 {
			t.Fatalf("%s: expected fee 0, got %d", method, result.Fee)
		}
		if result.ExpectedDeposit != 50000 {
			t.Fatalf("%s: expected deposit 50000, got %d", method, result.ExpectedDeposit)
		}
		if result.ExpectedDepositDate != nil {
			t.Fatalf("%s: expected no deposit date", method)
		}
		if result.DepositStatus != models.DepositStatusNotApplicable {
			t.Fatalf("%s: expected not_applicable, got %s", method, result.DepositStatus)
		}
	}
}

func TestComputeDeposit_UnknownProcessorDegradesToZero(t *testing.T) {
	saleDate := date(2025, time.June, 2) // Monday
	result := ComputeDeposit(70000, models.PaymentMethodCard, "없는카드", saleDate, testSchedule)

	if result.Fee != 0 {
		t.Fatalf("expected zero fee for unknown processor, got %d", result.Fee)
	}
	if result.ExpectedDeposit != 70000 {
		t.Fatalf("expected full amount, got %d", result.ExpectedDeposit)
	}
	if result.ExpectedDepositDate == nil || !result.ExpectedDepositDate.Equal(saleDate) {
		t.Fatalf("expected same-day deposit date, got %v", result.ExpectedDepositDate)
	}
	if result.DepositStatus != models.DepositStatusPending {
		t.Fatalf("expected pending, got %s", result.DepositStatus)
	}
}

func TestComputeDeposit_LookupIsCaseSensitive(t *testing.T) {
	schedule := []models.CardFeeSchedule{{Name: "Shinhan", FeeRate: 2.0, DepositDays: 3}}
	result := ComputeDeposit(100000, models.PaymentMethodCard, "shinhan", date(2025, time.March, 3), schedule)
	if result.Fee != 0 {
		t.Fatalf("lowercase name must not match, got fee %d", result.Fee)
	}
}

func TestAddBusinessDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"zero keeps date", date(2025, time.January, 9), 0, date(2025, time.January, 9)},
		{"zero keeps Saturday", date(2025, time.January, 11), 0, date(2025, time.January, 11)},
		{"Friday plus one is Monday", date(2025, time.January, 10), 1, date(2025, time.January, 13)},
		{"Saturday plus one is Monday", date(2025, time.January, 11), 1, date(2025, time.January, 13)},
		{"Sunday plus one is Monday", date(2025, time.January, 12), 1, date(2025, time.January, 13)},
		{"Thursday plus three skips weekend", date(2025, time.January, 9), 3, date(2025, time.January, 14)},
		{"two full weeks", date(2025, time.January, 6), 10, date(2025, time.January, 20)},
	}

	for _, tc := range cases {
		got := AddBusinessDays(tc.start, tc.n)
		if !got.Equal(tc.want) {
			t.Fatalf("%s: AddBusinessDays(%s, %d) = %s, want %s",
				tc.name, tc.start.Format("2006-01-02"), tc.n, got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestAddBusinessDays_NeverLandsOnWeekend(t *testing.T) {
	start := date(2025, time.January, 6)
	for day := 0; day < 14; day++ {
		for n := 1; n <= 10; n++ {
			got := AddBusinessDays(start.AddDate(0, 0, day), n)
			if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Fatalf("AddBusinessDays(%s, %d) landed on %s",
					start.AddDate(0, 0, day).Format("2006-01-02"), n, wd)
			}
		}
	}
}
