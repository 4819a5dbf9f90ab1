package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBudgetStatus(t *testing.T) {
	s := BudgetStatus{Budget: decimal.NewFromInt(150), Spent: decimal.NewFromInt(200)}
	if !s.Exceeded() {
		t.Fatal("200 spent of 150 should be exceeded")
	}
	if got := s.Remaining(); !got.Equal(decimal.NewFromInt(-50)) {
		t.Fatalf("Remaining = %s, want -50", got)
	}

	s = BudgetStatus{Budget: decimal.NewFromInt(200), Spent: decimal.NewFromInt(50)}
	if s.Exceeded() {
		t.Fatal("50 spent of 200 should not be exceeded")
	}
	if got := s.UsedPercent(); got != 0.25 {
		t.Fatalf("UsedPercent = %v, want 0.25", got)
	}

	s = BudgetStatus{Budget: decimal.Zero, Spent: decimal.Zero}
	if got := s.UsedPercent(); got != 0 {
		t.Fatalf("UsedPercent on empty zero budget = %v, want 0", got)
	}
}
