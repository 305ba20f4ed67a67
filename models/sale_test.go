package models

import (
	"testing"
	"time"
)

func pendingCardSale() Sale {
	return Sale{
		ID:              1,
		Amount:          100000,
		PaymentMethod:   PaymentMethodCard,
		CardCompany:     "신한",
		Fee:             2000,
		ExpectedDeposit: 98000,
		DepositStatus:   DepositStatusPending,
	}
}

func TestMarkDeposited(t *testing.T) {
	now := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)

	sale := pendingCardSale()
	if !sale.MarkDeposited(now) {
		t.Fatal("pending card sale must be confirmable")
	}
	if sale.DepositStatus != DepositStatusCompleted {
		t.Fatalf("expected completed, got %s", sale.DepositStatus)
	}
	if sale.DepositedAt == nil || !sale.DepositedAt.Equal(now) {
		t.Fatalf("expected deposited_at %s, got %v", now, sale.DepositedAt)
	}
}

func TestMarkDeposited_IdempotentOnCompleted(t *testing.T) {
	first := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	sale := pendingCardSale()
	sale.MarkDeposited(first)

	if sale.MarkDeposited(later) {
		t.Fatal("confirming an already-completed sale must be a no-op")
	}
	if !sale.DepositedAt.Equal(first) {
		t.Fatalf("deposited_at must keep its original value, got %v", sale.DepositedAt)
	}
	if sale.DepositStatus != DepositStatusCompleted {
		t.Fatalf("status changed to %s", sale.DepositStatus)
	}
}

func TestMarkDeposited_RejectsNonCard(t *testing.T) {
	sale := Sale{
		Amount:          50000,
		PaymentMethod:   PaymentMethodCash,
		ExpectedDeposit: 50000,
		DepositStatus:   DepositStatusNotApplicable,
	}
	if sale.MarkDeposited(time.Now()) {
		t.Fatal("a cash sale must never become confirmable")
	}
	if sale.DepositStatus != DepositStatusNotApplicable {
		t.Fatalf("status changed to %s", sale.DepositStatus)
	}
}

func TestRevertDeposit(t *testing.T) {
	now := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)

	sale := pendingCardSale()
	sale.MarkDeposited(now)

	if !sale.RevertDeposit() {
		t.Fatal("completed sale must be revertible")
	}
	if sale.DepositStatus != DepositStatusPending {
		t.Fatalf("expected pending, got %s", sale.DepositStatus)
	}
	if sale.DepositedAt != nil {
		t.Fatalf("deposited_at must be cleared, got %v", sale.DepositedAt)
	}
}

func TestRevertDeposit_NoOpOnPending(t *testing.T) {
	sale := pendingCardSale()
	if sale.RevertDeposit() {
		t.Fatal("reverting a pending sale must be a no-op")
	}
	if sale.DepositStatus != DepositStatusPending || sale.DepositedAt != nil {
		t.Fatalf("state changed: %s %v", sale.DepositStatus, sale.DepositedAt)
	}
}

func TestConfirmRevertRoundTrip(t *testing.T) {
	now := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)

	sale := pendingCardSale()
	original := sale

	sale.MarkDeposited(now)
	sale.RevertDeposit()

	if sale.DepositStatus != original.DepositStatus {
		t.Fatalf("round trip changed status: %s", sale.DepositStatus)
	}
	if sale.DepositedAt != nil {
		t.Fatalf("round trip left deposited_at set: %v", sale.DepositedAt)
	}
	// Snapshots are untouched by ledger transitions
	if sale.Fee != original.Fee || sale.ExpectedDeposit != original.ExpectedDeposit {
		t.Fatalf("ledger transition recomputed snapshot: fee %d deposit %d", sale.Fee, sale.ExpectedDeposit)
	}
}
