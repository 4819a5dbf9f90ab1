package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
)

// TransactionTable lays out transactions oldest first with income and
// expense totals underneath.
func TransactionTable(title, currency string, txs []model.Transaction) Table {
	t := Table{
		Title:    title,
		Headers:  []string{"Date", "Kind", "Category", "Amount"},
		LeftCols: 3,
	}
	for _, tx := range txs {
		t.Rows = append(t.Rows, []string{tx.Date, tx.Kind.String(), tx.Category, FormatMoney(currency, tx.Amount)})
	}
	if len(txs) == 0 {
		t.Rows = append(t.Rows, []string{"(none)", "", "", ""})
	}
	return t
}

// RenderReport renders the totals block and per-category breakdown.
func RenderReport(r model.Report, currency string) string {
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("Report  %s .. %s", r.Start, r.End)))
	b.WriteString("\n\n")

	savings := incomeStyle
	if r.Savings.IsNegative() {
		savings = expenseStyle
	}

	totals := Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total income", incomeStyle.Render(FormatMoney(currency, r.TotalIncome))},
			{"Total expenses", expenseStyle.Render(FormatMoney(currency, r.TotalExpenses))},
			{"---"},
			{"Savings", savings.Render(FormatSigned(currency, r.Savings))},
			{"Transactions", FormatNumber(int64(r.Transactions))},
		},
	}
	b.WriteString(RenderTable(totals))

	if len(r.ByCategory) > 0 {
		b.WriteString("\n")
		cats := Table{
			Title:    "By Category",
			Headers:  []string{"Kind", "Category", "Count", "Total"},
			LeftCols: 2,
		}
		var prev model.Kind
		for i, ct := range r.ByCategory {
			if i > 0 && ct.Kind != prev {
				cats.Rows = append(cats.Rows, []string{"---"})
			}
			prev = ct.Kind
			cats.Rows = append(cats.Rows, []string{
				ct.Kind.String(),
				ct.Category,
				strconv.Itoa(ct.Count),
				FormatMoney(currency, ct.Total),
			})
		}
		b.WriteString(RenderTable(cats))
	}

	return b.String()
}

// RenderBudgetStatus renders one budget check, including the over-budget
// warning when spending has passed the budget.
func RenderBudgetStatus(s model.BudgetStatus, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s  %s\n", headerStyle.Render(s.Category), mutedStyle.Render(s.Month))
	fmt.Fprintf(&b, "  Budget     %s\n", valueStyle.Render(FormatMoney(currency, s.Budget)))
	fmt.Fprintf(&b, "  Spent      %s\n", valueStyle.Render(FormatMoney(currency, s.Spent)))
	fmt.Fprintf(&b, "  Remaining  %s\n", valueStyle.Render(FormatMoney(currency, s.Remaining())))
	fmt.Fprintf(&b, "  %s %s\n", RenderUsageBar(s.UsedPercent(), 30), FormatPercent(s.UsedPercent()))

	if s.Exceeded() {
		b.WriteString("  ")
		b.WriteString(RenderWarning(fmt.Sprintf("You have exceeded your budget for %s!", s.Category)))
		b.WriteString("\n")
	}
	return b.String()
}

// BudgetTable lists budgets with this month's spend.
func BudgetTable(currency string, statuses []model.BudgetStatus) Table {
	t := Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Budget", "Spent", "Remaining", "Used"},
	}
	for _, s := range statuses {
		used := FormatPercent(s.UsedPercent())
		if s.Exceeded() {
			used = warnStyle.Render(used)
		}
		t.Rows = append(t.Rows, []string{
			s.Category,
			FormatMoney(currency, s.Budget),
			FormatMoney(currency, s.Spent),
			FormatMoney(currency, s.Remaining()),
			used,
		})
	}
	return t
}
