package store

import (
	"context"
	"fmt"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
	"github.com/jmoiron/sqlx"
)

type expenseRow struct {
	ID             int64  `db:"id"`
	SessionID      string `db:"session_id"`
	Name           string `db:"name"`
	Amount         int    `db:"amount"`
	Category       string `db:"category"`
	IsEssential    bool   `db:"is_essential"`
	InflationRate  float64 `db:"inflation_rate"`
	StartedMonth   int    `db:"started_month"`
	IsCancelled    bool   `db:"is_cancelled"`
	CancelledMonth int    `db:"cancelled_month"`
}

func insertExpense(ctx context.Context, tx *sqlx.Tx, sessionID string, e *model.RecurringExpense) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO recurring_expenses (session_id, name, amount, category, is_essential, inflation_rate, started_month, is_cancelled, cancelled_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, e.Name, e.Amount, string(e.Category), e.IsEssential, e.InflationRate, e.StartedMonth, e.IsCancelled, e.CancelledMonth)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("expense insert id: %w", err)
	}
	e.ID = id
	e.SessionID = sessionID
	return nil
}

func (s *Store) loadExpenses(ctx context.Context, sessionID string) ([]*model.RecurringExpense, error) {
	var rows []expenseRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM recurring_expenses WHERE session_id = ? ORDER BY id`, sessionID); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	out := make([]*model.RecurringExpense, len(rows))
	for i, r := range rows {
		out[i] = &model.RecurringExpense{
			ID:             r.ID,
			SessionID:      r.SessionID,
			Name:           r.Name,
			Amount:         r.Amount,
			Category:       config.ExpenseCategory(r.Category),
			IsEssential:    r.IsEssential,
			InflationRate:  r.InflationRate,
			StartedMonth:   r.StartedMonth,
			IsCancelled:    r.IsCancelled,
			CancelledMonth: r.CancelledMonth,
		}
	}
	return out, nil
}
