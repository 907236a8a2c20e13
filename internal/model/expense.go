package model

import "github.com/arthneeti/engine/internal/config"

// RecurringExpense is a child of a session: a monthly bill that drains
// wealth until cancelled. Expenses are append-only — cancellation sets
// IsCancelled rather than deleting the row, per spec.md §3 lifecycle.
type RecurringExpense struct {
	ID            int64
	SessionID     string
	Name          string
	Amount        int
	Category      config.ExpenseCategory
	IsEssential   bool
	InflationRate float64
	StartedMonth  int
	IsCancelled   bool
	CancelledMonth int
}
