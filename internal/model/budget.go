package model

import "github.com/shopspring/decimal"

// Budget is a monthly spending target for one category.
type Budget struct {
	ID       int64
	UserID   int64
	Category string
	Amount   decimal.Decimal
}

// BudgetStatus compares a budget with the expenses recorded in Month.
type BudgetStatus struct {
	Category string
	Month    string // YYYY-MM
	Budget   decimal.Decimal
	Spent    decimal.Decimal
}

// Remaining is the budget left this month; negative once exceeded.
func (s BudgetStatus) Remaining() decimal.Decimal {
	return s.Budget.Sub(s.Spent)
}

// Exceeded reports whether spending is over the budget.
func (s BudgetStatus) Exceeded() bool {
	return s.Spent.GreaterThan(s.Budget)
}

// UsedPercent returns spent as a fraction of the budget (0.5 = 50%).
// A zero budget with any spending reports 1.
func (s BudgetStatus) UsedPercent() float64 {
	if s.Budget.IsZero() {
		if s.Spent.IsPositive() {
			return 1
		}
		return 0
	}
	return s.Spent.Div(s.Budget).InexactFloat64()
}
