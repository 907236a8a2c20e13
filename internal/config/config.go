// Package config provides the game engine's tuning constants: starting
// values, caps, level thresholds, level-gated categories, the mutual
// fund catalogue, the IPO schedule, and the sector set.
//
// These are deliberately plain Go values, not environment-driven knobs —
// game balance is part of the game, not a per-deploy setting. Only the
// external-collaborator wiring (API keys, DB path) reads the environment;
// see cmd/arthneeti/main.go.
package config

// Category is a scenario card category.
type Category string

const (
	CategoryNeeds      Category = "NEEDS"
	CategoryWants      Category = "WANTS"
	CategoryEmergency  Category = "EMERGENCY"
	CategorySocial     Category = "SOCIAL"
	CategoryDebt       Category = "DEBT"
	CategoryShopping   Category = "SHOPPING"
	CategoryInvestment Category = "INVESTMENT"
	CategoryNews       Category = "NEWS"
	CategoryQuiz       Category = "QUIZ"
	CategoryTrap       Category = "TRAP"
)

// ExpenseCategory classifies a recurring expense.
type ExpenseCategory string

const (
	ExpenseHousing   ExpenseCategory = "HOUSING"
	ExpenseFood      ExpenseCategory = "FOOD"
	ExpenseUtilities ExpenseCategory = "UTILITIES"
	ExpenseTransport ExpenseCategory = "TRANSPORT"
	ExpenseLifestyle ExpenseCategory = "LIFESTYLE"
	ExpenseDebt      ExpenseCategory = "DEBT"
)

// Sector is one of the three tradeable stock sectors.
type Sector string

const (
	SectorGold       Sector = "gold"
	SectorTech       Sector = "tech"
	SectorRealEstate Sector = "real_estate"
)

// Sectors lists every tradeable sector in a stable order.
var Sectors = []Sector{SectorGold, SectorTech, SectorRealEstate}

// LevelThreshold gates a capability tier by month and literacy.
type LevelThreshold struct {
	Level       int
	MinMonth    int
	MinLiteracy int
	Description string
}

// LevelCardFilter bounds which scenario cards a level may draw.
// Categories == nil means "no category restriction".
type LevelCardFilter struct {
	MaxDifficulty int
	Categories    []Category
}

// MutualFund describes one entry in the fund catalogue.
type MutualFund struct {
	Key        string
	Name       string
	Risk       string
	Volatility float64 // monthly std deviation used by the log-normal NAV step
}

// IPOListing describes one scheduled IPO.
type IPOListing struct {
	OpenMonth        int
	Name             string
	PriceBand        int
	ListingGainProb  float64
}

// GBMParams are the per-sector geometric Brownian motion parameters used
// for cold-start price trajectories when no forecast provider is available.
type GBMParams struct {
	Mu    float64 // monthly drift
	Sigma float64 // monthly volatility
	Start float64 // month-1 price
}

// Config is the immutable set of game tuning constants.
type Config struct {
	StartingWealth   int
	HappinessStart   int
	CreditScoreStart int
	StartMonth       int
	CardsPerMonth    int
	DurationMonths   int
	MinHappiness     int
	MaxHappiness     int
	MinCredit        int
	MaxCredit        int
	MonthlySalary    int
	LifelinesStart   int

	LevelThresholds []LevelThreshold
	LevelFilters    map[int]LevelCardFilter
	LevelUnlocks    LevelUnlocks

	MutualFunds   map[string]MutualFund
	FundOrder     []string // stable iteration order
	IPOSchedule   map[int]IPOListing
	GBM           map[Sector]GBMParams

	DefaultExpenses []DefaultExpense
}

// LevelUnlocks names the level at which each capability becomes available.
type LevelUnlocks struct {
	Loans           int
	Investing       int
	Diversification int
	Mastery         int
}

// DefaultExpense seeds a session's initial recurring bills.
type DefaultExpense struct {
	Name          string
	Amount        int
	Category      ExpenseCategory
	IsEssential   bool
	InflationRate float64
}

// Default returns the standard Arth-Neeti tuning table.
func Default() *Config {
	return &Config{
		StartingWealth:   25000,
		HappinessStart:   100,
		CreditScoreStart: 700,
		StartMonth:       1,
		CardsPerMonth:    3,
		DurationMonths:   60,
		MinHappiness:     0,
		MaxHappiness:     100,
		MinCredit:        300,
		MaxCredit:        900,
		MonthlySalary:    25000,
		LifelinesStart:   3,

		LevelThresholds: []LevelThreshold{
			{Level: 1, MinMonth: 1, MinLiteracy: 0, Description: "The Basics"},
			{Level: 2, MinMonth: 6, MinLiteracy: 20, Description: "Credit & Debt"},
			{Level: 3, MinMonth: 12, MinLiteracy: 45, Description: "Investing"},
			{Level: 4, MinMonth: 24, MinLiteracy: 70, Description: "Diversification"},
			{Level: 5, MinMonth: 36, MinLiteracy: 90, Description: "Mastery"},
		},
		LevelFilters: map[int]LevelCardFilter{
			1: {MaxDifficulty: 2, Categories: []Category{CategoryNeeds, CategoryWants, CategoryEmergency, CategorySocial}},
			2: {MaxDifficulty: 3, Categories: []Category{CategoryNeeds, CategoryWants, CategoryEmergency, CategorySocial, CategoryDebt, CategoryShopping}},
			3: {MaxDifficulty: 4, Categories: []Category{CategoryNeeds, CategoryWants, CategoryEmergency, CategorySocial, CategoryInvestment, CategoryNews}},
			4: {MaxDifficulty: 5, Categories: []Category{CategoryNeeds, CategoryWants, CategoryEmergency, CategorySocial, CategoryInvestment, CategoryNews, CategoryQuiz, CategoryTrap}},
			5: {MaxDifficulty: 5, Categories: nil},
		},
		LevelUnlocks: LevelUnlocks{
			Loans:           2,
			Investing:       3,
			Diversification: 4,
			Mastery:         5,
		},

		MutualFunds: map[string]MutualFund{
			"NIFTY50":  {Key: "NIFTY50", Name: "Nifty 50 Index Fund", Risk: "LOW", Volatility: 0.03},
			"MIDCAP":   {Key: "MIDCAP", Name: "MidCap Opportunities", Risk: "MEDIUM", Volatility: 0.06},
			"SMALLCAP": {Key: "SMALLCAP", Name: "SmallCap Discovery", Risk: "HIGH", Volatility: 0.10},
		},
		FundOrder: []string{"NIFTY50", "MIDCAP", "SMALLCAP"},

		IPOSchedule: map[int]IPOListing{
			6:  {OpenMonth: 6, Name: "Zomato", PriceBand: 76, ListingGainProb: 0.7},
			12: {OpenMonth: 12, Name: "LIC", PriceBand: 900, ListingGainProb: 0.4},
			18: {OpenMonth: 18, Name: "Paytm", PriceBand: 2150, ListingGainProb: 0.1},
			24: {OpenMonth: 24, Name: "Tata Tech", PriceBand: 500, ListingGainProb: 0.9},
		},

		GBM: map[Sector]GBMParams{
			SectorTech:       {Mu: 0.02, Sigma: 0.15, Start: 500},
			SectorGold:       {Mu: 0.005, Sigma: 0.05, Start: 1800},
			SectorRealEstate: {Mu: 0.01, Sigma: 0.02, Start: 300},
		},

		DefaultExpenses: []DefaultExpense{
			{Name: "Rent (2BHK)", Amount: 10000, Category: ExpenseHousing, IsEssential: true, InflationRate: 0.05},
			{Name: "Groceries", Amount: 2500, Category: ExpenseFood, IsEssential: true, InflationRate: 0.07},
			{Name: "Utilities (Electricity/Water)", Amount: 1000, Category: ExpenseUtilities, IsEssential: true, InflationRate: 0.03},
			{Name: "Transport (Metro/Bus)", Amount: 1000, Category: ExpenseTransport, IsEssential: true, InflationRate: 0.05},
		},
	}
}

// LevelForMonthAndLiteracy computes the derived capability tier, matching
// the original's "last threshold whose month OR literacy gate is met" rule.
func (c *Config) LevelForMonthAndLiteracy(month, literacy int) int {
	level := 1
	for _, t := range c.LevelThresholds {
		if month >= t.MinMonth || literacy >= t.MinLiteracy {
			level = t.Level
		}
	}
	return level
}

// FilterForLevel returns the card filter for a level, falling back to
// level 1's filter for any level not in the table.
func (c *Config) FilterForLevel(level int) LevelCardFilter {
	if f, ok := c.LevelFilters[level]; ok {
		return f
	}
	return c.LevelFilters[1]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
