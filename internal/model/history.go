package model

import "time"

// PlayerChoice is an append-only log entry: a card the player saw and what
// they picked, or nil for a skip. ChoiceID == "" denotes a skip.
type PlayerChoice struct {
	ID        int64
	SessionID string
	CardID    string
	ChoiceID  string
	Timestamp time.Time
}

// IsSkip reports whether this log entry recorded a skip.
func (p PlayerChoice) IsSkip() bool {
	return p.ChoiceID == ""
}

// GameOverReason is the terminal condition that ended a session.
type GameOverReason string

const (
	ReasonBankruptcy GameOverReason = "BANKRUPTCY"
	ReasonBurnout    GameOverReason = "BURNOUT"
	ReasonCompleted  GameOverReason = "COMPLETED"
)

// GameHistory is one row per completed game, owned by a user.
type GameHistory struct {
	ID                     int64
	UserID                 string
	FinalWealth            int
	FinalHappiness         int
	FinalCreditScore       int
	FinancialLiteracyScore int
	Persona                string
	EndReason              GameOverReason
	MonthsPlayed           int
	CreatedAt              time.Time

	// PortfolioValue is the stock/fund value at game end, not persisted on
	// the game_history row but needed by upsertProfile to maintain
	// highest_wealth (wealth + portfolio) and highest_stock_profit.
	PortfolioValue int
}

// PlayerProfile is a user-scoped aggregate across all of a user's games.
type PlayerProfile struct {
	UserID             string
	TotalGames         int
	HighestWealth      int
	HighestLiteracy    int
	HighestCreditScore int
	HighestHappiness   int
	HighestStockProfit int
}

// Persona summarizes a finished game's ending archetype.
type Persona struct {
	Persona     string
	Description string
	FinalScore  int
	NetWorth    int
}
