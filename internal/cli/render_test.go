package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"Name", "Kind", "Amount"},
		LeftCols: 2,
		Rows: [][]string{
			{"rent", "expense", "£500.00"},
			{"---"},
			{"salary", "income", "£1,000.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, line)
		}
	}
	if !strings.Contains(lines[3], "│ rent   │ expense │   £500.00 │") {
		t.Errorf("row not aligned: %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "├") {
		t.Errorf("separator row = %q", lines[4])
	}
}

func TestTransactionTableEmpty(t *testing.T) {
	out := RenderTable(TransactionTable("Transactions", "$", nil))
	if !strings.Contains(out, "(none)") {
		t.Fatalf("empty table missing placeholder:\n%s", out)
	}
}

func TestRenderReport(t *testing.T) {
	r := model.Report{
		Start:         "2024-01-01",
		End:           "2024-01-31",
		TotalIncome:   decimal.NewFromInt(1000),
		TotalExpenses: decimal.NewFromInt(200),
		Savings:       decimal.NewFromInt(800),
		Transactions:  1234,
		ByCategory: []model.CategoryTotal{
			{Kind: model.KindIncome, Category: "salary", Total: decimal.NewFromInt(1000), Count: 1},
			{Kind: model.KindExpense, Category: "food", Total: decimal.NewFromInt(200), Count: 1},
		},
	}
	out := RenderReport(r, "$")
	for _, want := range []string{"2024-01-01 .. 2024-01-31", "$1,000.00", "$200.00", "+$800.00", "1,234", "salary", "food"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBudgetStatusWarning(t *testing.T) {
	s := model.BudgetStatus{
		Category: "food",
		Month:    "2024-01",
		Budget:   decimal.NewFromInt(150),
		Spent:    decimal.NewFromInt(200),
	}
	out := RenderBudgetStatus(s, "$")
	if !strings.Contains(out, "exceeded your budget for food") {
		t.Fatalf("missing over-budget warning:\n%s", out)
	}
	if !strings.Contains(out, "-$50.00") {
		t.Fatalf("missing negative remaining:\n%s", out)
	}

	s.Spent = decimal.NewFromInt(100)
	if out := RenderBudgetStatus(s, "$"); strings.Contains(out, "exceeded") {
		t.Fatalf("warning shown under budget:\n%s", out)
	}
}

func TestRenderUsageBar(t *testing.T) {
	if got := RenderUsageBar(0.5, 10); got != "█████░░░░░" {
		t.Errorf("RenderUsageBar(0.5) = %q", got)
	}
	if got := RenderUsageBar(3, 4); got != "████" {
		t.Errorf("RenderUsageBar(3) = %q", got)
	}
	if got := RenderUsageBar(0.5, 0); got != "" {
		t.Errorf("RenderUsageBar width 0 = %q", got)
	}
}
