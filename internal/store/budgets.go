package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// UpsertBudget sets the user's budget for category, replacing any previous
// amount in a single statement.
func (s *Store) UpsertBudget(ctx context.Context, userID int64, category string, amount decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, amount) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, category) DO UPDATE SET amount = excluded.amount`,
		userID, category, amount.String())
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}
	return nil
}

// Budget returns the user's budget for category, or ErrNotFound.
func (s *Store) Budget(ctx context.Context, userID int64, category string) (model.Budget, error) {
	var b model.Budget
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, category, amount FROM budgets
		 WHERE user_id = ? AND category = ?`,
		userID, category).Scan(&b.ID, &b.UserID, &b.Category, &b.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Budget{}, ErrNotFound
		}
		return model.Budget{}, fmt.Errorf("reading budget: %w", err)
	}
	return b, nil
}

// Budgets returns all of the user's budgets ordered by category.
func (s *Store) Budgets(ctx context.Context, userID int64) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category, amount FROM budgets
		 WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	budgets := []model.Budget{}
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}
