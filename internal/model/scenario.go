package model

import "github.com/arthneeti/engine/internal/config"

// MarketEvent is an intra-month price shock attached to a scenario card.
type MarketEvent struct {
	Title          string
	Description    string
	SectorImpacts  map[config.Sector]float64 // sector -> multiplier, e.g. tech: 1.2
	IsActive       bool
}

// Choice is one option on a ScenarioCard.
type Choice struct {
	ID                   string
	CardID               string
	Text                 string
	WealthImpact         int
	HappinessImpact      int
	CreditImpact         int
	LiteracyImpact       int
	Feedback             string
	IsRecommended        bool
	AddsRecurringExpense int    // amount, 0 = none
	ExpenseName          string
	CancelsExpenseName   string
}

// ScenarioCard is reference data presented to the player each turn.
type ScenarioCard struct {
	ID          string
	Title       string
	Description string
	Category    config.Category
	Difficulty  int
	MinMonth    int
	IsActive    bool
	IsGenerated bool
	MarketEvent *MarketEvent
	Choices     []Choice
}

// ChoiceByID finds a choice on the card, or nil.
func (c *ScenarioCard) ChoiceByID(id string) *Choice {
	for i := range c.Choices {
		if c.Choices[i].ID == id {
			return &c.Choices[i]
		}
	}
	return nil
}
