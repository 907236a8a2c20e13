package model

import "github.com/arthneeti/engine/internal/config"

// StockHistory is the pre-generated (sector, month) -> price trajectory
// computed at session creation, per spec.md §4.3 cold start.
type StockHistory struct {
	SessionID string
	Sector    config.Sector
	Month     int
	Price     float64
}

// FuturesContract is an immutable record of a futures sale. The short has
// already been cashed out at sale time (spec.md §4.3); this row exists for
// history only — there is no expiry settlement in this core (Open Question c).
type FuturesContract struct {
	ID               int64
	SessionID        string
	Sector           config.Sector
	Units            float64
	StrikePrice      float64
	SpotPriceAtSale  float64
	DurationMonths   int
	CreatedMonth     int
}

// IncomeSourceType enumerates where a session's monthly income comes from.
type IncomeSourceType string

const (
	IncomeSalary    IncomeSourceType = "SALARY"
	IncomeFreelance IncomeSourceType = "FREELANCE"
)

// IncomeSource is a child of a session describing one income stream.
// When a session has no IncomeSource rows, the month advancer falls back
// to Config.MonthlySalary (spec.md §4.6 step 2).
type IncomeSource struct {
	ID         int64
	SessionID  string
	SourceType IncomeSourceType
	AmountBase int
	Frequency  string
}
