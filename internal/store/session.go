package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
	"github.com/jmoiron/sqlx"
)

// Aggregate bundles a session with the child rows an engine verb is likely
// to touch in one pass. The engine loads an Aggregate, mutates it in place,
// and hands it back to Save so the whole unit commits together.
type Aggregate struct {
	Session       *model.Session
	Expenses      []*model.RecurringExpense
	Futures       []*model.FuturesContract
	IncomeSources []*model.IncomeSource

	// NewChoices are PlayerChoice rows this operation wants appended.
	NewChoices []*model.PlayerChoice

	// NewFutures are futures sales this operation wants appended; they are
	// also expected to already be present in Futures for in-memory reads.
	NewFutures []*model.FuturesContract

	// FinalizedHistory, when non-nil, is written as a new game_history row
	// and folds into the user's player_profiles row, in the same commit.
	FinalizedHistory *model.GameHistory
}

type sessionRow struct {
	ID                    string    `db:"id"`
	UserID                string    `db:"user_id"`
	CurrentMonth          int       `db:"current_month"`
	Wealth                int       `db:"wealth"`
	Happiness             int       `db:"happiness"`
	CreditScore           int       `db:"credit_score"`
	FinancialLiteracy     int       `db:"financial_literacy"`
	Lifelines             int       `db:"lifelines"`
	CurrentLevel          int       `db:"current_level"`
	IsActive              bool      `db:"is_active"`
	MarketPricesJSON      string    `db:"market_prices_json"`
	MarketTrendsJSON      string    `db:"market_trends_json"`
	PortfolioJSON         string    `db:"portfolio_json"`
	MutualFundsJSON       string    `db:"mutual_funds_json"`
	ActiveIPOsJSON        string    `db:"active_ipos_json"`
	PurchaseHistoryJSON   string    `db:"purchase_history_json"`
	RecurringExpenseTotal int       `db:"recurring_expense_total"`
	GameplayLog           string    `db:"gameplay_log"`
	FinalReport           string    `db:"final_report"`
	CareerStage           string    `db:"career_stage"`
	CreatedAt             time.Time `db:"created_at"`
}

func toRow(s *model.Session) (*sessionRow, error) {
	marshal := func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	prices, err := marshal(s.MarketPrices)
	if err != nil {
		return nil, err
	}
	trends, err := marshal(s.MarketTrends)
	if err != nil {
		return nil, err
	}
	portfolio, err := marshal(s.Portfolio)
	if err != nil {
		return nil, err
	}
	funds, err := marshal(s.MutualFunds)
	if err != nil {
		return nil, err
	}
	ipos, err := marshal(s.ActiveIPOs)
	if err != nil {
		return nil, err
	}
	purchases, err := marshal(s.PurchaseHistory)
	if err != nil {
		return nil, err
	}
	return &sessionRow{
		ID:                    s.ID,
		UserID:                s.UserID,
		CurrentMonth:          s.CurrentMonth,
		Wealth:                s.Wealth,
		Happiness:             s.Happiness,
		CreditScore:           s.CreditScore,
		FinancialLiteracy:     s.FinancialLiteracy,
		Lifelines:             s.Lifelines,
		CurrentLevel:          s.CurrentLevel,
		IsActive:              s.IsActive,
		MarketPricesJSON:      prices,
		MarketTrendsJSON:      trends,
		PortfolioJSON:         portfolio,
		MutualFundsJSON:       funds,
		ActiveIPOsJSON:        ipos,
		PurchaseHistoryJSON:   purchases,
		RecurringExpenseTotal: s.RecurringExpenseTotal,
		GameplayLog:           s.GameplayLog,
		FinalReport:           s.FinalReport,
		CareerStage:           s.CareerStage,
		CreatedAt:             s.CreatedAt,
	}, nil
}

func fromRow(r *sessionRow) (*model.Session, error) {
	s := &model.Session{
		ID:                    r.ID,
		UserID:                r.UserID,
		CurrentMonth:          r.CurrentMonth,
		Wealth:                r.Wealth,
		Happiness:             r.Happiness,
		CreditScore:           r.CreditScore,
		FinancialLiteracy:     r.FinancialLiteracy,
		Lifelines:             r.Lifelines,
		CurrentLevel:          r.CurrentLevel,
		IsActive:              r.IsActive,
		RecurringExpenseTotal: r.RecurringExpenseTotal,
		GameplayLog:           r.GameplayLog,
		FinalReport:           r.FinalReport,
		CareerStage:           r.CareerStage,
		CreatedAt:             r.CreatedAt,
	}
	if err := json.Unmarshal([]byte(r.MarketPricesJSON), &s.MarketPrices); err != nil {
		return nil, fmt.Errorf("unmarshal market_prices: %w", err)
	}
	if err := json.Unmarshal([]byte(r.MarketTrendsJSON), &s.MarketTrends); err != nil {
		return nil, fmt.Errorf("unmarshal market_trends: %w", err)
	}
	if err := json.Unmarshal([]byte(r.PortfolioJSON), &s.Portfolio); err != nil {
		return nil, fmt.Errorf("unmarshal portfolio: %w", err)
	}
	if err := json.Unmarshal([]byte(r.MutualFundsJSON), &s.MutualFunds); err != nil {
		return nil, fmt.Errorf("unmarshal mutual_funds: %w", err)
	}
	if err := json.Unmarshal([]byte(r.ActiveIPOsJSON), &s.ActiveIPOs); err != nil {
		return nil, fmt.Errorf("unmarshal active_ipos: %w", err)
	}
	if err := json.Unmarshal([]byte(r.PurchaseHistoryJSON), &s.PurchaseHistory); err != nil {
		return nil, fmt.Errorf("unmarshal purchase_history: %w", err)
	}
	return s, nil
}

// CreateSession persists a brand new session along with its starting
// expenses and the pre-generated stock-price trajectory, in one commit.
func (s *Store) CreateSession(ctx context.Context, sess *model.Session, expenses []*model.RecurringExpense, history []*model.StockHistory) error {
	row, err := toRow(sess)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, current_month, wealth, happiness, credit_score,
			financial_literacy, lifelines, current_level, is_active,
			market_prices_json, market_trends_json, portfolio_json,
			mutual_funds_json, active_ipos_json, purchase_history_json,
			recurring_expense_total, gameplay_log, final_report, career_stage, created_at
		) VALUES (
			:id, :user_id, :current_month, :wealth, :happiness, :credit_score,
			:financial_literacy, :lifelines, :current_level, :is_active,
			:market_prices_json, :market_trends_json, :portfolio_json,
			:mutual_funds_json, :active_ipos_json, :purchase_history_json,
			:recurring_expense_total, :gameplay_log, :final_report, :career_stage, :created_at
		)`, row)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for _, e := range expenses {
		if err := insertExpense(ctx, tx, sess.ID, e); err != nil {
			return err
		}
	}
	for _, h := range history {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stock_history (session_id, sector, month, price) VALUES (?, ?, ?, ?)`,
			sess.ID, string(h.Sector), h.Month, h.Price); err != nil {
			return fmt.Errorf("insert stock history: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads a session and its expenses, futures and income sources into
// an Aggregate ready for an engine verb to mutate.
func (s *Store) Load(ctx context.Context, sessionID string) (*Aggregate, error) {
	var row sessionRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM sessions WHERE id = ?`, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewErrorf(model.ErrNotFound, "session not found", "id=%s", sessionID)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess, err := fromRow(&row)
	if err != nil {
		return nil, err
	}

	expenses, err := s.loadExpenses(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	futures, err := s.loadFutures(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	income, err := s.loadIncomeSources(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &Aggregate{
		Session:       sess,
		Expenses:      expenses,
		Futures:       futures,
		IncomeSources: income,
	}, nil
}

// Save persists every mutation recorded on the Aggregate in a single
// transaction: the session row, any changed or newly added expenses, any
// newly sold futures contracts, newly appended player choices, and — when
// set — a finalized game history row folded into the user's profile.
func (s *Store) Save(ctx context.Context, agg *Aggregate) error {
	row, err := toRow(agg.Session)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		UPDATE sessions SET
			current_month = :current_month,
			wealth = :wealth,
			happiness = :happiness,
			credit_score = :credit_score,
			financial_literacy = :financial_literacy,
			lifelines = :lifelines,
			current_level = :current_level,
			is_active = :is_active,
			market_prices_json = :market_prices_json,
			market_trends_json = :market_trends_json,
			portfolio_json = :portfolio_json,
			mutual_funds_json = :mutual_funds_json,
			active_ipos_json = :active_ipos_json,
			purchase_history_json = :purchase_history_json,
			recurring_expense_total = :recurring_expense_total,
			gameplay_log = :gameplay_log,
			final_report = :final_report,
			career_stage = :career_stage
		WHERE id = :id`, row)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	for _, e := range agg.Expenses {
		if e.ID == 0 {
			if err := insertExpense(ctx, tx, agg.Session.ID, e); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE recurring_expenses SET
				amount = ?, is_cancelled = ?, cancelled_month = ?
			WHERE id = ?`, e.Amount, e.IsCancelled, e.CancelledMonth, e.ID); err != nil {
			return fmt.Errorf("update expense %d: %w", e.ID, err)
		}
	}

	for _, f := range agg.NewFutures {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO futures_contracts (session_id, sector, units, strike_price, spot_price_at_sale, duration_months, created_month)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			agg.Session.ID, string(f.Sector), f.Units, f.StrikePrice, f.SpotPriceAtSale, f.DurationMonths, f.CreatedMonth); err != nil {
			return fmt.Errorf("insert futures contract: %w", err)
		}
	}

	for _, c := range agg.NewChoices {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO player_choices (session_id, card_id, choice_id, created_at) VALUES (?, ?, ?, ?)`,
			agg.Session.ID, c.CardID, c.ChoiceID, c.Timestamp); err != nil {
			return fmt.Errorf("insert player choice: %w", err)
		}
	}

	if agg.FinalizedHistory != nil {
		h := agg.FinalizedHistory
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO game_history (user_id, final_wealth, final_happiness, final_credit_score, financial_literacy_score, persona, end_reason, months_played, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.UserID, h.FinalWealth, h.FinalHappiness, h.FinalCreditScore, h.FinancialLiteracyScore, h.Persona, string(h.EndReason), h.MonthsPlayed, h.CreatedAt); err != nil {
			return fmt.Errorf("insert game history: %w", err)
		}
		if err := upsertProfile(ctx, tx, h); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func upsertProfile(ctx context.Context, tx *sqlx.Tx, h *model.GameHistory) error {
	// highest_wealth tracks wealth + portfolio value (net worth), and
	// highest_stock_profit tracks portfolio value alone, matching
	// _save_history's max(wealth + portfolio_value) / max(portfolio_value).
	netWorth := h.FinalWealth + h.PortfolioValue
	_, err := tx.ExecContext(ctx, `
		INSERT INTO player_profiles (user_id, total_games, highest_wealth, highest_literacy, highest_credit_score, highest_happiness, highest_stock_profit)
		VALUES (?, 1, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_games = total_games + 1,
			highest_wealth = MAX(highest_wealth, excluded.highest_wealth),
			highest_literacy = MAX(highest_literacy, excluded.highest_literacy),
			highest_credit_score = MAX(highest_credit_score, excluded.highest_credit_score),
			highest_happiness = MAX(highest_happiness, excluded.highest_happiness),
			highest_stock_profit = MAX(highest_stock_profit, excluded.highest_stock_profit)`,
		h.UserID, netWorth, h.FinancialLiteracyScore, h.FinalCreditScore, h.FinalHappiness, h.PortfolioValue)
	return err
}

// LoadProfile reads a user's cross-session aggregate, or a zero-value
// profile if the user has never finished a game.
func (s *Store) LoadProfile(ctx context.Context, userID string) (*model.PlayerProfile, error) {
	var r struct {
		UserID             string `db:"user_id"`
		TotalGames         int    `db:"total_games"`
		HighestWealth      int    `db:"highest_wealth"`
		HighestLiteracy    int    `db:"highest_literacy"`
		HighestCreditScore int    `db:"highest_credit_score"`
		HighestHappiness   int    `db:"highest_happiness"`
		HighestStockProfit int    `db:"highest_stock_profit"`
	}
	err := s.db.GetContext(ctx, &r, `
		SELECT user_id, total_games, highest_wealth, highest_literacy, highest_credit_score, highest_happiness, highest_stock_profit
		FROM player_profiles WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.PlayerProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &model.PlayerProfile{
		UserID: r.UserID, TotalGames: r.TotalGames, HighestWealth: r.HighestWealth,
		HighestLiteracy: r.HighestLiteracy, HighestCreditScore: r.HighestCreditScore,
		HighestHappiness: r.HighestHappiness, HighestStockProfit: r.HighestStockProfit,
	}, nil
}

// StockPricesForMonth returns the pre-generated sector -> price map for a
// given month, used to roll the market forward during month advancement.
func (s *Store) StockPricesForMonth(ctx context.Context, sessionID string, month int) (map[config.Sector]float64, error) {
	type row struct {
		Sector string  `db:"sector"`
		Price  float64 `db:"price"`
	}
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT sector, price FROM stock_history WHERE session_id = ? AND month = ?`, sessionID, month); err != nil {
		return nil, fmt.Errorf("load stock history: %w", err)
	}
	out := make(map[config.Sector]float64, len(rows))
	for _, r := range rows {
		out[config.Sector(r.Sector)] = r.Price
	}
	return out, nil
}

// CountPlayerChoices reports how many cards this session has resolved
// (picked or skipped), the basis for month-boundary detection.
func (s *Store) CountPlayerChoices(ctx context.Context, sessionID string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM player_choices WHERE session_id = ?`, sessionID); err != nil {
		return 0, fmt.Errorf("count choices: %w", err)
	}
	return n, nil
}

// SeenCardIDs returns the set of cards already shown to this session, so
// the scenario selector can avoid repeats.
func (s *Store) SeenCardIDs(ctx context.Context, sessionID string) (map[string]bool, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, `SELECT DISTINCT card_id FROM player_choices WHERE session_id = ?`, sessionID); err != nil {
		return nil, fmt.Errorf("load seen cards: %w", err)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}
