// Package tracker ties credentials, the ledger, budgets and reports to a session.
// Every ledger, budget and report operation acts on the session user and fails
// with session.ErrUnauthenticated when nobody is logged in.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/digest"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/session"
	"github.com/theirongolddev/tally/internal/store"
)

// Tracker is the application core used by both the commands and the shell.
type Tracker struct {
	store   *store.Store
	digest  digest.Digester
	session *session.Context
	tokens  *session.TokenStore
	now     func() time.Time
	log     *log.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used to pick the current budget month.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger, tagged with the tracker component.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l.WithComponent(log.ComponentTracker) }
}

// WithTokens persists logins to ts so later processes can Resume them.
func WithTokens(ts *session.TokenStore) Option {
	return func(t *Tracker) { t.tokens = ts }
}

// New returns a Tracker with an anonymous session.
func New(st *store.Store, d digest.Digester, opts ...Option) *Tracker {
	t := &Tracker{
		store:   st,
		digest:  d,
		session: &session.Context{},
		now:     time.Now,
		log:     log.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Session exposes the current session state.
func (t *Tracker) Session() *session.Context {
	return t.session
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Register creates a user. It returns false without error when the username is taken.
func (t *Tracker) Register(ctx context.Context, username, password string) (bool, error) {
	_, err := t.store.CreateUser(ctx, username, digest.Hex(t.digest, password))
	if errors.Is(err, store.ErrDuplicateUsername) {
		t.log.Op(ctx, log.OpRegister, nil, log.FieldUsername, username, "created", false)
		return false, nil
	}
	t.log.Op(ctx, log.OpRegister, err, log.FieldUsername, username)
	if err != nil {
		return false, fmt.Errorf("registering %q: %w", username, err)
	}
	return true, nil
}

// Login authenticates the session. A failed attempt leaves the session as it was.
func (t *Tracker) Login(ctx context.Context, username, password string) (bool, error) {
	u, err := t.store.FindUser(ctx, username, digest.Hex(t.digest, password))
	if errors.Is(err, store.ErrNotFound) {
		t.log.Op(ctx, log.OpLogin, nil, log.FieldUsername, username, "authenticated", false)
		return false, nil
	}
	if err != nil {
		t.log.Op(ctx, log.OpLogin, err, log.FieldUsername, username)
		return false, fmt.Errorf("logging in: %w", err)
	}

	if t.tokens != nil {
		if err := t.tokens.Save(u); err != nil {
			return false, err
		}
	}
	t.session.Authenticate(u)
	t.log.Op(ctx, log.OpLogin, nil, log.FieldUsername, username, log.FieldUserID, u.ID)
	return true, nil
}

// Logout clears the session and any saved token.
func (t *Tracker) Logout(ctx context.Context) error {
	t.session.Clear()
	var err error
	if t.tokens != nil {
		err = t.tokens.Clear()
	}
	t.log.Op(ctx, log.OpLogout, err)
	return err
}

// Resume restores a session saved by an earlier Login. It reports false when
// there is no usable token or its user no longer exists.
func (t *Tracker) Resume(ctx context.Context) (bool, error) {
	if t.tokens == nil {
		return false, nil
	}
	claims, err := t.tokens.Load()
	if errors.Is(err, session.ErrNoToken) {
		return false, nil
	}
	if errors.Is(err, session.ErrInvalidToken) {
		t.log.Op(ctx, log.OpResume, err)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	id, err := claims.UserID()
	if err != nil {
		t.log.Op(ctx, log.OpResume, err)
		return false, nil
	}
	u, err := t.store.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && u.Username != claims.Username) {
		t.log.Op(ctx, log.OpResume, session.ErrInvalidToken, log.FieldUserID, id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resuming session: %w", err)
	}

	t.session.Authenticate(u)
	t.log.Op(ctx, log.OpResume, nil, log.FieldUserID, u.ID)
	return true, nil
}

// AddTransaction records a transaction for the session user. Values are
// stored as given; parsing and validation belong to the caller.
func (t *Tracker) AddTransaction(ctx context.Context, kind model.Kind, category string, amount decimal.Decimal, date string) (model.Transaction, error) {
	uid, err := t.session.UserID()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("adding transaction: %w", err)
	}

	tx, err := t.store.InsertTransaction(ctx, model.Transaction{
		UserID:   uid,
		Kind:     kind,
		Category: category,
		Amount:   amount,
		Date:     date,
	})
	t.log.Op(ctx, log.OpAddTransaction, err,
		log.FieldUserID, uid, log.FieldKind, kind, log.FieldCategory, category, log.FieldAmount, amount.String(), log.FieldDate, date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("adding transaction: %w", err)
	}
	return tx, nil
}

// Transactions returns the session user's transactions with start <= date <= end.
func (t *Tracker) Transactions(ctx context.Context, start, end string) ([]model.Transaction, error) {
	uid, err := t.session.UserID()
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	txs, err := t.store.TransactionsBetween(ctx, uid, start, end)
	t.log.Op(ctx, log.OpTransactions, err,
		log.FieldUserID, uid, log.FieldStart, start, log.FieldEnd, end, log.FieldCount, len(txs))
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return txs, nil
}

// Report summarizes the session user's transactions in [start, end].
func (t *Tracker) Report(ctx context.Context, start, end string) (model.Report, error) {
	txs, err := t.Transactions(ctx, start, end)
	if err != nil {
		return model.Report{}, err
	}
	r := pipeline.Summarize(txs)
	r.Start, r.End = start, end
	t.log.Op(ctx, log.OpReport, nil, log.FieldStart, start, log.FieldEnd, end, log.FieldCount, r.Transactions)
	return r, nil
}

// SetBudget creates or replaces the session user's budget for category.
func (t *Tracker) SetBudget(ctx context.Context, category string, amount decimal.Decimal) error {
	uid, err := t.session.UserID()
	if err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}

	err = t.store.UpsertBudget(ctx, uid, category, amount)
	t.log.Op(ctx, log.OpSetBudget, err, log.FieldUserID, uid, log.FieldCategory, category, log.FieldAmount, amount.String())
	if err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}
	return nil
}

// CheckBudget compares the category budget with this month's expenses.
// The bool is false when no budget is set.
func (t *Tracker) CheckBudget(ctx context.Context, category string) (model.BudgetStatus, bool, error) {
	uid, err := t.session.UserID()
	if err != nil {
		return model.BudgetStatus{}, false, fmt.Errorf("checking budget: %w", err)
	}

	b, err := t.store.Budget(ctx, uid, category)
	if errors.Is(err, store.ErrNotFound) {
		t.log.Op(ctx, log.OpCheckBudget, nil, log.FieldUserID, uid, log.FieldCategory, category, "found", false)
		return model.BudgetStatus{}, false, nil
	}
	if err != nil {
		t.log.Op(ctx, log.OpCheckBudget, err, log.FieldUserID, uid, log.FieldCategory, category)
		return model.BudgetStatus{}, false, fmt.Errorf("checking budget: %w", err)
	}

	status, err := t.status(ctx, b)
	t.log.Op(ctx, log.OpCheckBudget, err, log.FieldUserID, uid, log.FieldCategory, category, log.FieldMonth, status.Month)
	if err != nil {
		return model.BudgetStatus{}, false, fmt.Errorf("checking budget: %w", err)
	}
	return status, true, nil
}

// Budgets returns the status of every budget the session user has set.
func (t *Tracker) Budgets(ctx context.Context) ([]model.BudgetStatus, error) {
	uid, err := t.session.UserID()
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	budgets, err := t.store.Budgets(ctx, uid)
	if err != nil {
		t.log.Op(ctx, log.OpListBudgets, err, log.FieldUserID, uid)
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	result := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status, err := t.status(ctx, b)
		if err != nil {
			t.log.Op(ctx, log.OpListBudgets, err, log.FieldUserID, uid, log.FieldCategory, b.Category)
			return nil, fmt.Errorf("listing budgets: %w", err)
		}
		result = append(result, status)
	}
	t.log.Op(ctx, log.OpListBudgets, nil, log.FieldUserID, uid, log.FieldCount, len(result))
	return result, nil
}

func (t *Tracker) status(ctx context.Context, b model.Budget) (model.BudgetStatus, error) {
	month := t.now().Format(model.MonthLayout)
	expenses, err := t.store.ExpensesInMonth(ctx, b.UserID, b.Category, month)
	if err != nil {
		return model.BudgetStatus{Month: month}, err
	}
	return model.BudgetStatus{
		Category: b.Category,
		Month:    month,
		Budget:   b.Amount,
		Spent:    pipeline.Sum(expenses, model.KindExpense),
	}, nil
}
