// Package pipeline computes report figures from ledger transactions.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// Summarize computes income, expense and savings totals plus a per-category
// breakdown. Start and End are left for the caller to fill in.
func Summarize(txs []model.Transaction) model.Report {
	var r model.Report
	r.TotalIncome = Sum(txs, model.KindIncome)
	r.TotalExpenses = Sum(txs, model.KindExpense)
	r.Savings = r.TotalIncome.Sub(r.TotalExpenses)
	r.Transactions = len(txs)
	r.ByCategory = AggregateCategories(txs)
	return r
}

// Sum adds up the amounts of every transaction of the given kind.
func Sum(txs []model.Transaction, kind model.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Kind == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// AggregateCategories groups transactions by (kind, category). Income rows come
// first, then expenses; within a kind the largest total wins.
func AggregateCategories(txs []model.Transaction) []model.CategoryTotal {
	type key struct {
		kind     model.Kind
		category string
	}
	byKey := make(map[key]*model.CategoryTotal)

	for _, t := range txs {
		k := key{t.Kind, t.Category}
		ct, ok := byKey[k]
		if !ok {
			ct = &model.CategoryTotal{Kind: t.Kind, Category: t.Category, Total: decimal.Zero}
			byKey[k] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
		ct.Count++
	}

	result := make([]model.CategoryTotal, 0, len(byKey))
	for _, ct := range byKey {
		result = append(result, *ct)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Kind != b.Kind {
			return kindOrder(a.Kind) < kindOrder(b.Kind)
		}
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		return a.Category < b.Category
	})

	return result
}

func kindOrder(k model.Kind) int {
	switch k {
	case model.KindIncome:
		return 0
	case model.KindExpense:
		return 1
	}
	return 2
}

// FilterByKind returns transactions of the given kind.
func FilterByKind(txs []model.Transaction, kind model.Kind) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if t.Kind == kind {
			result = append(result, t)
		}
	}
	return result
}

// FilterByCategory returns transactions whose category matches (case-insensitive).
func FilterByCategory(txs []model.Transaction, category string) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if strings.EqualFold(t.Category, category) {
			result = append(result, t)
		}
	}
	return result
}
