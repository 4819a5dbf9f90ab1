package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

const (
	browserMinHeight = 5
	// title, blank, footer, status bar, table header and border
	browserChrome = 7
)

// Browser is a scrollable transaction table with a totals footer.
type Browser struct {
	title    string
	currency string
	report   model.Report
	table    table.Model
	width    int
}

// NewBrowser builds a browser over txs, oldest first.
func NewBrowser(title, currency string, txs []model.Transaction) Browser {
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{tx.Date, tx.Kind.String(), tx.Category, cli.FormatMoney(currency, tx.Amount)})
	}

	tb := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Kind", Width: 7},
			{Title: "Category", Width: 20},
			{Title: "Amount", Width: 14},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+2, 15)),
	)
	tb.SetStyles(tableStyles(theme.Active))

	return Browser{
		title:    title,
		currency: currency,
		report:   pipeline.Summarize(txs),
		table:    tb,
	}
}

func tableStyles(t theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(false)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	return s
}

// Init implements tea.Model.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		b.width = msg.Width
		h := msg.Height - browserChrome
		if h < browserMinHeight {
			h = browserMinHeight
		}
		if rows := len(b.table.Rows()) + 2; h > rows {
			h = rows
		}
		b.table.SetHeight(h)
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b Browser) View() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Red)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("  " + b.title))
	sb.WriteString("\n\n")
	sb.WriteString(b.table.View())
	sb.WriteString("\n")

	net := incomeStyle
	if b.report.Savings.IsNegative() {
		net = expenseStyle
	}
	fmt.Fprintf(&sb, "  %s %s   %s %s   %s %s\n",
		mutedStyle.Render("in"), incomeStyle.Render(cli.FormatMoney(b.currency, b.report.TotalIncome)),
		mutedStyle.Render("out"), expenseStyle.Render(cli.FormatMoney(b.currency, b.report.TotalExpenses)),
		mutedStyle.Render("net"), net.Render(cli.FormatSigned(b.currency, b.report.Savings)),
	)

	width := b.width
	if width == 0 {
		width = 60
	}
	info := fmt.Sprintf("%d/%d", b.table.Cursor()+1, len(b.table.Rows()))
	if len(b.table.Rows()) == 0 {
		info = "no transactions"
	}
	sb.WriteString(components.RenderStatusBar(width, "[j/k] scroll  [q]uit", info))

	return sb.String()
}

// RunBrowser shows txs full screen until the user quits.
func RunBrowser(title, currency string, txs []model.Transaction, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewBrowser(title, currency, txs), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("transaction browser: %w", err)
	}
	return nil
}
