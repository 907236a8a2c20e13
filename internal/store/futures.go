package store

import (
	"context"
	"fmt"
	"time"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

type futuresRow struct {
	ID               int64   `db:"id"`
	SessionID        string  `db:"session_id"`
	Sector           string  `db:"sector"`
	Units            float64 `db:"units"`
	StrikePrice      float64 `db:"strike_price"`
	SpotPriceAtSale  float64 `db:"spot_price_at_sale"`
	DurationMonths   int     `db:"duration_months"`
	CreatedMonth     int     `db:"created_month"`
}

func (s *Store) loadFutures(ctx context.Context, sessionID string) ([]*model.FuturesContract, error) {
	var rows []futuresRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM futures_contracts WHERE session_id = ? ORDER BY id`, sessionID); err != nil {
		return nil, fmt.Errorf("load futures: %w", err)
	}
	out := make([]*model.FuturesContract, len(rows))
	for i, r := range rows {
		out[i] = &model.FuturesContract{
			ID:              r.ID,
			SessionID:       r.SessionID,
			Sector:          config.Sector(r.Sector),
			Units:           r.Units,
			StrikePrice:     r.StrikePrice,
			SpotPriceAtSale: r.SpotPriceAtSale,
			DurationMonths:  r.DurationMonths,
			CreatedMonth:    r.CreatedMonth,
		}
	}
	return out, nil
}

func (s *Store) loadIncomeSources(ctx context.Context, sessionID string) ([]*model.IncomeSource, error) {
	type row struct {
		ID         int64  `db:"id"`
		SessionID  string `db:"session_id"`
		SourceType string `db:"source_type"`
		AmountBase int    `db:"amount_base"`
		Frequency  string `db:"frequency"`
	}
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM income_sources WHERE session_id = ? ORDER BY id`, sessionID); err != nil {
		return nil, fmt.Errorf("load income sources: %w", err)
	}
	out := make([]*model.IncomeSource, len(rows))
	for i, r := range rows {
		out[i] = &model.IncomeSource{
			ID:         r.ID,
			SessionID:  r.SessionID,
			SourceType: model.IncomeSourceType(r.SourceType),
			AmountBase: r.AmountBase,
			Frequency:  r.Frequency,
		}
	}
	return out, nil
}

// ListHistory returns a user's completed-game history, most recent first.
func (s *Store) ListHistory(ctx context.Context, userID string) ([]*model.GameHistory, error) {
	type row struct {
		ID                     int64  `db:"id"`
		UserID                 string `db:"user_id"`
		FinalWealth            int    `db:"final_wealth"`
		FinalHappiness         int    `db:"final_happiness"`
		FinalCreditScore       int    `db:"final_credit_score"`
		FinancialLiteracyScore int    `db:"financial_literacy_score"`
		Persona                string `db:"persona"`
		EndReason              string `db:"end_reason"`
		MonthsPlayed           int       `db:"months_played"`
		CreatedAt              time.Time `db:"created_at"`
	}
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, final_wealth, final_happiness, final_credit_score, financial_literacy_score, persona, end_reason, months_played, created_at
		FROM game_history WHERE user_id = ? ORDER BY id DESC`, userID); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := make([]*model.GameHistory, len(rows))
	for i, r := range rows {
		out[i] = &model.GameHistory{
			ID:                     r.ID,
			UserID:                 r.UserID,
			FinalWealth:            r.FinalWealth,
			FinalHappiness:         r.FinalHappiness,
			FinalCreditScore:       r.FinalCreditScore,
			FinancialLiteracyScore: r.FinancialLiteracyScore,
			Persona:                r.Persona,
			EndReason:              model.GameOverReason(r.EndReason),
			MonthsPlayed:           r.MonthsPlayed,
			CreatedAt:              r.CreatedAt,
		}
	}
	return out, nil
}
