package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/digest"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/session"
	"github.com/theirongolddev/tally/internal/store"
)

var jan2024 = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	d, err := digest.Lookup(digest.Default)
	if err != nil {
		t.Fatalf("digest.Lookup: %v", err)
	}
	opts = append([]Option{WithClock(func() time.Time { return jan2024 })}, opts...)
	return New(st, d, opts...), st
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustRegisterLogin(t *testing.T, tr *Tracker, user, pass string) {
	t.Helper()
	ctx := context.Background()
	if ok, err := tr.Register(ctx, user, pass); err != nil || !ok {
		t.Fatalf("Register(%q) = %v, %v, want true", user, ok, err)
	}
	if ok, err := tr.Login(ctx, user, pass); err != nil || !ok {
		t.Fatalf("Login(%q) = %v, %v, want true", user, ok, err)
	}
}

func TestScenario(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	ok, err := tr.Register(ctx, "alice", "pw1")
	if err != nil || !ok {
		t.Fatalf("Register = %v, %v, want true", ok, err)
	}
	ok, err = tr.Register(ctx, "alice", "other")
	if err != nil || ok {
		t.Fatalf("duplicate Register = %v, %v, want false", ok, err)
	}
	// The duplicate attempt must leave the first password hash in place.
	if _, err := st.FindUser(ctx, "alice", "c592df4a86933b92addc9842402ddf198c638ea9be58916ee6e3734e1e3152f8"); err != nil {
		t.Fatalf("FindUser with first hash: %v", err)
	}

	ok, err = tr.Login(ctx, "alice", "pw1")
	if err != nil || !ok {
		t.Fatalf("Login = %v, %v, want true", ok, err)
	}

	if _, err := tr.AddTransaction(ctx, model.KindIncome, "salary", dec("1000"), "2024-01-05"); err != nil {
		t.Fatalf("AddTransaction salary: %v", err)
	}
	if _, err := tr.AddTransaction(ctx, model.KindExpense, "food", dec("200"), "2024-01-10"); err != nil {
		t.Fatalf("AddTransaction food: %v", err)
	}

	r, err := tr.Report(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !r.TotalIncome.Equal(dec("1000")) || !r.TotalExpenses.Equal(dec("200")) || !r.Savings.Equal(dec("800")) {
		t.Fatalf("Report = %s/%s/%s, want 1000/200/800", r.TotalIncome, r.TotalExpenses, r.Savings)
	}
	if r.Start != "2024-01-01" || r.End != "2024-01-31" {
		t.Fatalf("Report range = %s..%s, want 2024-01-01..2024-01-31", r.Start, r.End)
	}

	if err := tr.SetBudget(ctx, "food", dec("150")); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	status, found, err := tr.CheckBudget(ctx, "food")
	if err != nil || !found {
		t.Fatalf("CheckBudget = %v, %v, want found", found, err)
	}
	if !status.Budget.Equal(dec("150")) || !status.Spent.Equal(dec("200")) {
		t.Fatalf("CheckBudget = (%s, %s), want (150, 200)", status.Budget, status.Spent)
	}
	if !status.Exceeded() {
		t.Fatal("food budget not reported as exceeded")
	}
	if status.Month != "2024-01" {
		t.Fatalf("Month = %q, want 2024-01", status.Month)
	}
}

func TestLoginFailureKeepsSession(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	mustRegisterLogin(t, tr, "alice", "pw1")

	for _, c := range []struct{ user, pass string }{
		{"alice", "wrong"},
		{"nobody", "pw1"},
	} {
		ok, err := tr.Login(ctx, c.user, c.pass)
		if err != nil || ok {
			t.Fatalf("Login(%q, %q) = %v, %v, want false", c.user, c.pass, ok, err)
		}
		u, ok := tr.Session().Current()
		if !ok || u.Username != "alice" {
			t.Fatalf("session after failed login = %+v, %v, want alice", u, ok)
		}
	}

	if err := tr.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if tr.Session().Authenticated() {
		t.Fatal("session still authenticated after Logout")
	}
	if err := tr.Logout(ctx); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestUnauthenticated(t *testing.T) {
	tr, st := newTestTracker(t)
	ctx := context.Background()

	checks := map[string]func() error{
		"add": func() error {
			_, err := tr.AddTransaction(ctx, model.KindExpense, "food", dec("1"), "2024-01-01")
			return err
		},
		"transactions": func() error {
			_, err := tr.Transactions(ctx, "2024-01-01", "2024-12-31")
			return err
		},
		"report": func() error {
			_, err := tr.Report(ctx, "2024-01-01", "2024-12-31")
			return err
		},
		"set budget": func() error {
			return tr.SetBudget(ctx, "food", dec("10"))
		},
		"check budget": func() error {
			_, _, err := tr.CheckBudget(ctx, "food")
			return err
		},
		"list budgets": func() error {
			_, err := tr.Budgets(ctx)
			return err
		},
	}
	for name, fn := range checks {
		if err := fn(); !errors.Is(err, session.ErrUnauthenticated) {
			t.Errorf("%s err = %v, want ErrUnauthenticated", name, err)
		}
	}

	// Nothing was written for any user.
	mustRegisterLogin(t, tr, "alice", "pw1")
	u, _ := tr.Session().Current()
	txs, err := st.TransactionsBetween(ctx, u.ID, "0000-01-01", "9999-12-31")
	if err != nil || len(txs) != 0 {
		t.Fatalf("stored transactions = %d, %v, want 0", len(txs), err)
	}
	if _, found, err := tr.CheckBudget(ctx, "food"); err != nil || found {
		t.Fatalf("CheckBudget = %v, %v, want not found", found, err)
	}
}

func TestUserIsolation(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	mustRegisterLogin(t, tr, "alice", "pw1")
	if _, err := tr.AddTransaction(ctx, model.KindExpense, "food", dec("30"), "2024-01-02"); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := tr.SetBudget(ctx, "food", dec("100")); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}

	mustRegisterLogin(t, tr, "bob", "pw2")
	txs, err := tr.Transactions(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("bob sees %d transactions, want 0", len(txs))
	}
	if _, found, err := tr.CheckBudget(ctx, "food"); err != nil || found {
		t.Fatalf("bob CheckBudget = %v, %v, want not found", found, err)
	}
}

func TestCheckBudgetUsesCurrentMonth(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()
	mustRegisterLogin(t, tr, "alice", "pw1")

	if err := tr.SetBudget(ctx, "food", dec("50")); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	status, found, err := tr.CheckBudget(ctx, "food")
	if err != nil || !found || !status.Spent.IsZero() {
		t.Fatalf("CheckBudget with no spend = %+v, %v, %v, want spent 0", status, found, err)
	}

	for _, add := range []struct {
		kind     model.Kind
		category string
		amount   string
		date     string
	}{
		{model.KindExpense, "food", "12.5", "2024-01-01"},
		{model.KindExpense, "food", "7.5", "2024-01-31"},
		{model.KindExpense, "food", "99", "2023-12-31"},
		{model.KindExpense, "food", "99", "2024-02-01"},
		{model.KindIncome, "food", "99", "2024-01-15"},
		{model.KindExpense, "fun", "99", "2024-01-15"},
	} {
		if _, err := tr.AddTransaction(ctx, add.kind, add.category, dec(add.amount), add.date); err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
	}

	if err := tr.SetBudget(ctx, "food", dec("25")); err != nil {
		t.Fatalf("SetBudget replace: %v", err)
	}
	status, _, err = tr.CheckBudget(ctx, "food")
	if err != nil {
		t.Fatalf("CheckBudget: %v", err)
	}
	if !status.Budget.Equal(dec("25")) || !status.Spent.Equal(dec("20")) {
		t.Fatalf("CheckBudget = (%s, %s), want (25, 20)", status.Budget, status.Spent)
	}
	if status.Exceeded() {
		t.Fatal("budget reported exceeded at 20 of 25")
	}

	all, err := tr.Budgets(ctx)
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(all) != 1 || all[0].Category != "food" || !all[0].Spent.Equal(dec("20")) {
		t.Fatalf("Budgets = %+v, want one food budget with 20 spent", all)
	}
}

func TestResume(t *testing.T) {
	dir := t.TempDir()
	tokens := session.NewTokenStore(filepath.Join(dir, "session"), time.Hour)

	tr, st := newTestTracker(t, WithTokens(tokens))
	ctx := context.Background()

	if ok, err := tr.Resume(ctx); err != nil || ok {
		t.Fatalf("Resume with no token = %v, %v, want false", ok, err)
	}

	mustRegisterLogin(t, tr, "alice", "pw1")

	next := New(st, mustDigest(t), WithTokens(tokens))
	ok, err := next.Resume(ctx)
	if err != nil || !ok {
		t.Fatalf("Resume = %v, %v, want true", ok, err)
	}
	if u, _ := next.Session().Current(); u.Username != "alice" {
		t.Fatalf("resumed user = %q, want alice", u.Username)
	}

	if err := next.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	again := New(st, mustDigest(t), WithTokens(tokens))
	if ok, err := again.Resume(ctx); err != nil || ok {
		t.Fatalf("Resume after Logout = %v, %v, want false", ok, err)
	}
}

func TestResumeUnknownUser(t *testing.T) {
	tokens := session.NewTokenStore(t.TempDir(), time.Hour)
	if err := tokens.Save(model.User{ID: 404, Username: "ghost"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tr, _ := newTestTracker(t, WithTokens(tokens))
	ok, err := tr.Resume(context.Background())
	if err != nil || ok {
		t.Fatalf("Resume for missing user = %v, %v, want false", ok, err)
	}
	if tr.Session().Authenticated() {
		t.Fatal("session authenticated for missing user")
	}
}

func mustDigest(t *testing.T) digest.Digester {
	t.Helper()
	d, err := digest.Lookup(digest.Default)
	if err != nil {
		t.Fatalf("digest.Lookup: %v", err)
	}
	return d
}
