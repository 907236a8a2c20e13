// Package model holds the typed records for the Arth-Neeti game engine.
// Dynamic attribute bags in the source system (market_prices, mutual_funds,
// active_ipos) are modeled here as typed records with a small, enumerated
// key space, per spec.md §9 design note.
package model

import (
	"time"

	"github.com/arthneeti/engine/internal/config"
)

// Session is the root aggregate for one player's run through the game.
type Session struct {
	ID                string
	UserID            string
	CurrentMonth      int
	Wealth            int
	Happiness         int
	CreditScore       int
	FinancialLiteracy int
	Lifelines         int
	CurrentLevel      int
	IsActive          bool

	MarketPrices     MarketPrices
	MarketTrends     map[config.Sector]int
	Portfolio        map[config.Sector]float64
	MutualFunds      map[string]FundHolding
	ActiveIPOs       []IPOApplication
	PurchaseHistory  []PurchaseRecord
	RecurringExpenseTotal int

	GameplayLog  string
	FinalReport  string

	CareerStage string // e.g. "BUSINESS_OWNER" — drives the Jetta trigger

	CreatedAt time.Time
}

// MarketPrices holds the current price of every sector and mutual fund,
// replacing the source's untyped {sector/fund-key -> price} map.
type MarketPrices struct {
	Sectors map[config.Sector]float64
	Funds   map[string]float64 // fund key -> NAV
}

// NewMarketPrices returns an empty, initialized MarketPrices.
func NewMarketPrices() MarketPrices {
	return MarketPrices{
		Sectors: make(map[config.Sector]float64),
		Funds:   make(map[string]float64),
	}
}

// FundHolding is a player's position in one mutual fund.
type FundHolding struct {
	Units    float64
	Invested float64
}

// IPOStatus is the lifecycle state of an IPO application.
type IPOStatus string

const (
	IPOStatusApplied   IPOStatus = "APPLIED"
	IPOStatusProcessed IPOStatus = "PROCESSED"
)

// IPOApplication is a player's application to one scheduled IPO.
type IPOApplication struct {
	Name   string
	Amount int
	Status IPOStatus
	Month  int
}

// PurchaseRecord logs one stock purchase for profit accounting.
type PurchaseRecord struct {
	Sector config.Sector
	Units  float64
	Price  float64
	Month  int
}

// NewSession builds a fresh session with the given config's starting values.
func NewSession(id, userID string, cfg *config.Config) *Session {
	s := &Session{
		ID:                id,
		UserID:            userID,
		CurrentMonth:      cfg.StartMonth,
		Wealth:            cfg.StartingWealth,
		Happiness:         cfg.HappinessStart,
		CreditScore:       cfg.CreditScoreStart,
		FinancialLiteracy: 0,
		Lifelines:         cfg.LifelinesStart,
		IsActive:          true,
		MarketPrices:      NewMarketPrices(),
		MarketTrends:      make(map[config.Sector]int),
		Portfolio:         make(map[config.Sector]float64),
		MutualFunds:       make(map[string]FundHolding),
	}
	for _, sector := range config.Sectors {
		s.MarketTrends[sector] = 0
		s.Portfolio[sector] = 0
	}
	s.CurrentLevel = cfg.LevelForMonthAndLiteracy(s.CurrentMonth, s.FinancialLiteracy)
	return s
}

// PortfolioValue returns the mark-to-market value of all stock holdings.
func (s *Session) PortfolioValue() int {
	total := 0.0
	for sector, units := range s.Portfolio {
		total += units * s.MarketPrices.Sectors[sector]
	}
	return int(total)
}

// NetWorth is cash plus portfolio value (excludes mutual funds and futures,
// matching the original's debt-ratio and Jetta-trigger calculations).
func (s *Session) NetWorth() int {
	return s.Wealth + s.PortfolioValue()
}

// PortfolioEmpty reports whether the player holds zero units in every sector.
func (s *Session) PortfolioEmpty() bool {
	for _, units := range s.Portfolio {
		if units > 0 {
			return false
		}
	}
	return true
}
