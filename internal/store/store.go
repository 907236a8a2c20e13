// Package store provides SQLite-backed persistence for sessions and their
// child records, following the teacher's persistence/db.go pattern: sqlx
// over modernc.org/sqlite with WAL mode, and one commit per logical unit
// of work.
//
// Per spec.md §5, operations on a single session are serialised: WithLock
// gives every session-mutating engine verb a per-session mutex for the span
// of load-mutate-save, so reads of current_month, impact application, expense mutation,
// and the save happen atomically even under request-level parallelism
// across sessions.
package store

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for game-session persistence.
type Store struct {
	db *sqlx.DB

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: conn, locks: make(map[string]*sync.Mutex)}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithLock runs fn while holding the per-session mutex, creating one on
// first use. This is the engine's serialisation point for a single session;
// it does not serialise across different sessions.
func (s *Store) WithLock(sessionID string, fn func() error) error {
	s.locksMu.Lock()
	mu, ok := s.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[sessionID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		current_month INTEGER NOT NULL,
		wealth INTEGER NOT NULL,
		happiness INTEGER NOT NULL,
		credit_score INTEGER NOT NULL,
		financial_literacy INTEGER NOT NULL,
		lifelines INTEGER NOT NULL,
		current_level INTEGER NOT NULL,
		is_active INTEGER NOT NULL,
		market_prices_json TEXT NOT NULL,
		market_trends_json TEXT NOT NULL,
		portfolio_json TEXT NOT NULL,
		mutual_funds_json TEXT NOT NULL,
		active_ipos_json TEXT NOT NULL,
		purchase_history_json TEXT NOT NULL,
		recurring_expense_total INTEGER NOT NULL,
		gameplay_log TEXT NOT NULL DEFAULT '',
		final_report TEXT NOT NULL DEFAULT '',
		career_stage TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recurring_expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount INTEGER NOT NULL,
		category TEXT NOT NULL,
		is_essential INTEGER NOT NULL,
		inflation_rate REAL NOT NULL,
		started_month INTEGER NOT NULL,
		is_cancelled INTEGER NOT NULL DEFAULT 0,
		cancelled_month INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_session ON recurring_expenses(session_id);

	CREATE TABLE IF NOT EXISTS stock_history (
		session_id TEXT NOT NULL,
		sector TEXT NOT NULL,
		month INTEGER NOT NULL,
		price REAL NOT NULL,
		PRIMARY KEY (session_id, sector, month)
	);

	CREATE TABLE IF NOT EXISTS futures_contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		sector TEXT NOT NULL,
		units REAL NOT NULL,
		strike_price REAL NOT NULL,
		spot_price_at_sale REAL NOT NULL,
		duration_months INTEGER NOT NULL,
		created_month INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_futures_session ON futures_contracts(session_id);

	CREATE TABLE IF NOT EXISTS income_sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		source_type TEXT NOT NULL,
		amount_base INTEGER NOT NULL,
		frequency TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_income_session ON income_sources(session_id);

	CREATE TABLE IF NOT EXISTS player_choices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		card_id TEXT NOT NULL,
		choice_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_choices_session ON player_choices(session_id);

	CREATE TABLE IF NOT EXISTS game_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		final_wealth INTEGER NOT NULL,
		final_happiness INTEGER NOT NULL,
		final_credit_score INTEGER NOT NULL,
		financial_literacy_score INTEGER NOT NULL,
		persona TEXT NOT NULL,
		end_reason TEXT NOT NULL,
		months_played INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_user ON game_history(user_id);

	CREATE TABLE IF NOT EXISTS player_profiles (
		user_id TEXT PRIMARY KEY,
		total_games INTEGER NOT NULL DEFAULT 0,
		highest_wealth INTEGER NOT NULL DEFAULT 0,
		highest_literacy INTEGER NOT NULL DEFAULT 0,
		highest_credit_score INTEGER NOT NULL DEFAULT 0,
		highest_happiness INTEGER NOT NULL DEFAULT 0,
		highest_stock_profit INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
