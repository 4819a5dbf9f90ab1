package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
)

const transactionColumns = "id, user_id, kind, category, amount, date"

// InsertTransaction appends t to the ledger and returns it with its new id.
// Values are stored as given.
func (s *Store) InsertTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, kind, category, amount, date)
		 VALUES (?, ?, ?, ?, ?)`,
		t.UserID, string(t.Kind), t.Category, t.Amount.String(), t.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("reading transaction id: %w", err)
	}
	t.ID = id
	return t, nil
}

// TransactionsBetween returns the user's transactions dated within
// [start, end] inclusive, ordered by date then insertion.
func (s *Store) TransactionsBetween(ctx context.Context, userID int64, start, end string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = ? AND date BETWEEN ? AND ?
		 ORDER BY date, id`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	return scanTransactions(rows)
}

// ExpensesInMonth returns the user's expenses in category whose date starts
// with month (YYYY-MM).
func (s *Store) ExpensesInMonth(ctx context.Context, userID int64, category, month string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = ? AND category = ? AND kind = ? AND date LIKE ?
		 ORDER BY date, id`,
		userID, category, string(model.KindExpense), month+"%")
	if err != nil {
		return nil, fmt.Errorf("querying monthly expenses: %w", err)
	}
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer func() { _ = rows.Close() }()

	txs := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var kind string
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &t.Category, &t.Amount, &t.Date); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.Kind = model.Kind(kind)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
