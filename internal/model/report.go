package model

import "github.com/shopspring/decimal"

// Report holds income, expense and savings totals for a date range.
type Report struct {
	Start string
	End   string

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Savings       decimal.Decimal

	Transactions int
	ByCategory   []CategoryTotal
}

// CategoryTotal holds the sum for one (kind, category) pair.
type CategoryTotal struct {
	Kind     Kind
	Category string
	Total    decimal.Decimal
	Count    int
}
